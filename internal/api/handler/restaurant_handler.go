package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cafecritique/review-api/internal/core/ports"
)

type RestaurantHandler struct {
	restaurantService ports.RestaurantService
	maxImageBytes     int64
}

func NewRestaurantHandler(restaurantService ports.RestaurantService, maxImageBytes int64) *RestaurantHandler {
	return &RestaurantHandler{restaurantService: restaurantService, maxImageBytes: maxImageBytes}
}

// List returns every active restaurant.
//
// @Summary      List restaurants
// @Tags         restaurant
// @Produce      json
// @Success      200  {object}  Envelope{data=[]domain.Restaurant}
// @Failure      404  {object}  Envelope
// @Router       /restaurant [get]
func (h *RestaurantHandler) List(c echo.Context) error {
	restaurants, err := h.restaurantService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, restaurants, "")
}

// GetByID returns an active restaurant.
//
// @Summary      Get restaurant by ID
// @Tags         restaurant
// @Produce      json
// @Param        id   path      string  true  "Restaurant ID"
// @Success      200  {object}  Envelope{data=domain.Restaurant}
// @Failure      400  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /restaurant/_id={id} [get]
func (h *RestaurantHandler) GetByID(c echo.Context) error {
	restaurant, err := h.restaurantService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, restaurant, "")
}

// GetByName returns the active restaurants with the given name.
//
// @Summary      Find restaurants by name
// @Tags         restaurant
// @Produce      json
// @Param        name  path      string  true  "Restaurant name"
// @Success      200   {object}  Envelope{data=[]domain.Restaurant}
// @Failure      404   {object}  Envelope
// @Router       /restaurant/name={name} [get]
func (h *RestaurantHandler) GetByName(c echo.Context) error {
	restaurants, err := h.restaurantService.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return ok(c, restaurants, "")
}

// GetByOwner returns the active restaurants of a restaurateur.
//
// @Summary      Find restaurants by owner
// @Tags         restaurant
// @Produce      json
// @Param        restaurateur  path      string  true  "Restaurateur username"
// @Success      200           {object}  Envelope{data=[]domain.Restaurant}
// @Failure      400           {object}  Envelope
// @Failure      404           {object}  Envelope
// @Router       /restaurant/restaurateur={restaurateur} [get]
func (h *RestaurantHandler) GetByOwner(c echo.Context) error {
	restaurants, err := h.restaurantService.GetByOwner(c.Request().Context(), c.Param("restaurateur"))
	if err != nil {
		return err
	}
	return ok(c, restaurants, "")
}

// Create lists a new restaurant with its cover image.
//
// @Summary      Create restaurant
// @Tags         restaurant
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name          formData  string  true  "Name"
// @Param        description   formData  string  true  "Description"
// @Param        location      formData  string  true  "Location"
// @Param        restaurateur  formData  string  true  "Owner username"
// @Param        myImage       formData  file    true  "Cover image (jpeg, jpg, png, gif; max 1MB)"
// @Success      200           {object}  Envelope{data=domain.Restaurant}
// @Failure      400           {object}  Envelope
// @Failure      500           {object}  Envelope
// @Router       /restaurant [post]
func (h *RestaurantHandler) Create(c echo.Context) error {
	var req ports.RestaurantInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}
	if err := actAs(c, "restaurateur", &req.Restaurateur); err != nil {
		return err
	}
	cover, err := readImage(c, h.maxImageBytes)
	if err != nil {
		return err
	}

	restaurant, err := h.restaurantService.Create(c.Request().Context(), req, cover)
	if err != nil {
		return err
	}
	return ok(c, restaurant, "restaurant created")
}

// Update replaces the mutable fields of a restaurant.
//
// @Summary      Update restaurant
// @Tags         restaurant
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Restaurant ID"
// @Param        body  body      ports.RestaurantInput  true  "Restaurant fields"
// @Success      200   {object}  Envelope{data=domain.Restaurant}
// @Failure      400   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /restaurant/_id={id} [put]
func (h *RestaurantHandler) Update(c echo.Context) error {
	var req ports.RestaurantInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}
	if err := actAs(c, "restaurateur", &req.Restaurateur); err != nil {
		return err
	}

	restaurant, err := h.restaurantService.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return err
	}
	return ok(c, restaurant, "Restaurant was successfully updated")
}
