package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cafecritique/review-api/internal/api/metrics"
	"github.com/cafecritique/review-api/internal/core/ports"
)

type RatingHandler struct {
	ratingService ports.RatingService
}

func NewRatingHandler(ratingService ports.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// List returns the ratings of an active restaurant.
//
// @Summary      List ratings
// @Tags         rating
// @Produce      json
// @Param        restaurant_id  path      string  true  "Restaurant ID"
// @Success      200            {object}  Envelope{data=[]domain.Rating}
// @Failure      400            {object}  Envelope
// @Failure      404            {object}  Envelope
// @Router       /restaurant/{restaurant_id}/rating [get]
func (h *RatingHandler) List(c echo.Context) error {
	ratings, err := h.ratingService.List(c.Request().Context(), c.Param("restaurant_id"))
	if err != nil {
		return err
	}
	return ok(c, ratings, "")
}

// Upsert adds a blogger's rating or overwrites the existing one.
//
// @Summary      Rate restaurant
// @Tags         rating
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        restaurant_id  path      string             true  "Restaurant ID"
// @Param        body           body      ports.RatingInput  true  "Rating"
// @Success      200            {object}  Envelope{data=domain.Rating}
// @Failure      400            {object}  Envelope
// @Failure      404            {object}  Envelope
// @Router       /restaurant/{restaurant_id}/rating [post]
func (h *RatingHandler) Upsert(c echo.Context) error {
	var req ports.RatingInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}
	if err := actAs(c, "blogger", &req.Blogger); err != nil {
		return err
	}

	rating, created, err := h.ratingService.Upsert(c.Request().Context(), c.Param("restaurant_id"), req)
	if err != nil {
		return err
	}

	metrics.Upserted("rating", created)
	if created {
		return ok(c, rating, "Rating added successfully")
	}
	return ok(c, rating, "Rating updated successfully")
}

// Delete removes a blogger's rating of a restaurant.
//
// @Summary      Delete rating
// @Tags         rating
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        restaurant_id  path      string  true   "Restaurant ID"
// @Param        blogger        query     string  false  "Blogger username (or JSON body)"
// @Success      200            {object}  Envelope
// @Failure      400            {object}  Envelope
// @Failure      404            {object}  Envelope
// @Router       /restaurant/{restaurant_id}/rating [delete]
func (h *RatingHandler) Delete(c echo.Context) error {
	var req ports.RatingKeyInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}
	if err := actAs(c, "blogger", &req.Blogger); err != nil {
		return err
	}

	if err := h.ratingService.Delete(c.Request().Context(), c.Param("restaurant_id"), req); err != nil {
		return err
	}
	return ok(c, nil, "Rating deleted successfully")
}
