package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cafecritique/review-api/internal/core/ports"
)

type BlogHandler struct {
	blogService   ports.BlogService
	maxImageBytes int64
}

func NewBlogHandler(blogService ports.BlogService, maxImageBytes int64) *BlogHandler {
	return &BlogHandler{blogService: blogService, maxImageBytes: maxImageBytes}
}

// List returns the blogs of active restaurants.
//
// @Summary      List blogs
// @Tags         blog
// @Produce      json
// @Success      200  {object}  Envelope{data=[]domain.Blog}
// @Failure      404  {object}  Envelope
// @Router       /blog [get]
func (h *BlogHandler) List(c echo.Context) error {
	blogs, err := h.blogService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, blogs, "")
}

// GetByID returns a blog.
//
// @Summary      Get blog
// @Tags         blog
// @Produce      json
// @Param        blog_id  path      string  true  "Blog ID"
// @Success      200      {object}  Envelope{data=domain.Blog}
// @Failure      400      {object}  Envelope
// @Failure      404      {object}  Envelope
// @Router       /blog/{blog_id} [get]
func (h *BlogHandler) GetByID(c echo.Context) error {
	blog, err := h.blogService.GetByID(c.Request().Context(), c.Param("blog_id"))
	if err != nil {
		return err
	}
	return ok(c, blog, "Blog successfully fetched")
}

// GetByRestaurant returns the blogs written about an active restaurant.
//
// @Summary      List blogs of a restaurant
// @Tags         blog
// @Produce      json
// @Param        restaurant_id  path      string  true  "Restaurant ID"
// @Success      200            {object}  Envelope{data=[]domain.Blog}
// @Failure      400            {object}  Envelope
// @Failure      404            {object}  Envelope
// @Router       /blog/restaurant_id={restaurant_id} [get]
func (h *BlogHandler) GetByRestaurant(c echo.Context) error {
	blogs, err := h.blogService.GetByRestaurant(c.Request().Context(), c.Param("restaurant_id"))
	if err != nil {
		return err
	}
	return ok(c, blogs, "")
}

// Create publishes a blog. The cover image is optional.
//
// @Summary      Create blog
// @Tags         blog
// @Accept       json,multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        body     body      ports.BlogInput  true   "Blog"
// @Param        myImage  formData  file             false  "Cover image (jpeg, jpg, png, gif; max 1MB)"
// @Success      200      {object}  Envelope{data=domain.Blog}
// @Failure      400      {object}  Envelope
// @Failure      500      {object}  Envelope
// @Router       /blog [post]
func (h *BlogHandler) Create(c echo.Context) error {
	var req ports.BlogInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}
	if err := actAs(c, "blogger", &req.Blogger); err != nil {
		return err
	}
	cover, err := readImage(c, h.maxImageBytes)
	if err != nil {
		return err
	}

	blog, err := h.blogService.Create(c.Request().Context(), req, cover)
	if err != nil {
		return err
	}
	return ok(c, blog, "Blog created")
}

// Delete removes a blog. Its comments and reactions are purged in the background.
//
// @Summary      Delete blog
// @Tags         blog
// @Produce      json
// @Security     BearerAuth
// @Param        blog_id  path      string  true  "Blog ID"
// @Success      200      {object}  Envelope
// @Failure      400      {object}  Envelope
// @Failure      404      {object}  Envelope
// @Router       /blog/{blog_id} [delete]
func (h *BlogHandler) Delete(c echo.Context) error {
	if err := h.blogService.Delete(c.Request().Context(), c.Param("blog_id")); err != nil {
		return err
	}
	return ok(c, nil, "Blog deleted successfully")
}
