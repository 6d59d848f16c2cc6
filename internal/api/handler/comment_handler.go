package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cafecritique/review-api/internal/core/ports"
)

type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// List returns the comments of a blog.
//
// @Summary      List comments
// @Tags         comment
// @Produce      json
// @Param        blog_id  path      string  true  "Blog ID"
// @Success      200      {object}  Envelope{data=[]domain.Comment}
// @Failure      400      {object}  Envelope
// @Failure      404      {object}  Envelope
// @Router       /blog/{blog_id}/comment [get]
func (h *CommentHandler) List(c echo.Context) error {
	comments, err := h.commentService.List(c.Request().Context(), c.Param("blog_id"))
	if err != nil {
		return err
	}
	return ok(c, comments, "Comments successfully fetched")
}

// Get returns one comment of a blog.
//
// @Summary      Get comment
// @Tags         comment
// @Produce      json
// @Param        blog_id     path      string  true  "Blog ID"
// @Param        comment_id  path      string  true  "Comment ID"
// @Success      200         {object}  Envelope{data=domain.Comment}
// @Failure      400         {object}  Envelope
// @Failure      404         {object}  Envelope
// @Router       /blog/{blog_id}/comment/{comment_id} [get]
func (h *CommentHandler) Get(c echo.Context) error {
	comment, err := h.commentService.Get(c.Request().Context(), c.Param("blog_id"), c.Param("comment_id"))
	if err != nil {
		return err
	}
	return ok(c, comment, "Comment fetched successfully")
}

// Create adds a comment to a blog.
//
// @Summary      Create comment
// @Tags         comment
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        blog_id  path      string              true  "Blog ID"
// @Param        body     body      ports.CommentInput  true  "Comment"
// @Success      200      {object}  Envelope{data=domain.Comment}
// @Failure      400      {object}  Envelope
// @Failure      404      {object}  Envelope
// @Router       /blog/{blog_id}/comment [post]
func (h *CommentHandler) Create(c echo.Context) error {
	var req ports.CommentInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}
	if err := actAs(c, "username", &req.Username); err != nil {
		return err
	}

	comment, err := h.commentService.Create(c.Request().Context(), c.Param("blog_id"), req)
	if err != nil {
		return err
	}
	return ok(c, comment, "Comment created")
}

// Delete removes a comment from a blog.
//
// @Summary      Delete comment
// @Tags         comment
// @Produce      json
// @Security     BearerAuth
// @Param        blog_id     path      string  true  "Blog ID"
// @Param        comment_id  path      string  true  "Comment ID"
// @Success      200         {object}  Envelope
// @Failure      400         {object}  Envelope
// @Failure      404         {object}  Envelope
// @Router       /blog/{blog_id}/comment/{comment_id} [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
	if err := h.commentService.Delete(c.Request().Context(), c.Param("blog_id"), c.Param("comment_id")); err != nil {
		return err
	}
	return ok(c, nil, "Comment deleted successfully")
}
