package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cafecritique/review-api/internal/api/metrics"
	"github.com/cafecritique/review-api/internal/core/ports"
)

type ReactionHandler struct {
	reactionService ports.ReactionService
}

func NewReactionHandler(reactionService ports.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// List returns the reactions to a blog.
//
// @Summary      List reactions
// @Tags         reaction
// @Produce      json
// @Param        blog_id  path      string  true  "Blog ID"
// @Success      200      {object}  Envelope{data=[]domain.Reaction}
// @Failure      400      {object}  Envelope
// @Failure      404      {object}  Envelope
// @Router       /blog/{blog_id}/reaction [get]
func (h *ReactionHandler) List(c echo.Context) error {
	reactions, err := h.reactionService.List(c.Request().Context(), c.Param("blog_id"))
	if err != nil {
		return err
	}
	return ok(c, reactions, "Reactions successfully fetched")
}

// Get returns one reaction to a blog.
//
// @Summary      Get reaction
// @Tags         reaction
// @Produce      json
// @Param        blog_id      path      string  true  "Blog ID"
// @Param        reaction_id  path      string  true  "Reaction ID"
// @Success      200          {object}  Envelope{data=domain.Reaction}
// @Failure      400          {object}  Envelope
// @Failure      404          {object}  Envelope
// @Router       /blog/{blog_id}/reaction/{reaction_id} [get]
func (h *ReactionHandler) Get(c echo.Context) error {
	reaction, err := h.reactionService.Get(c.Request().Context(), c.Param("blog_id"), c.Param("reaction_id"))
	if err != nil {
		return err
	}
	return ok(c, reaction, "Reaction fetched successfully")
}

// Upsert adds a reaction or overwrites the caller's existing one.
//
// @Summary      React to blog
// @Tags         reaction
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        blog_id  path      string               true  "Blog ID"
// @Param        body     body      ports.ReactionInput  true  "Reaction"
// @Success      200      {object}  Envelope{data=domain.Reaction}
// @Failure      400      {object}  Envelope
// @Failure      404      {object}  Envelope
// @Router       /blog/{blog_id}/reaction [post]
func (h *ReactionHandler) Upsert(c echo.Context) error {
	var req ports.ReactionInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}
	if err := actAs(c, "username", &req.Username); err != nil {
		return err
	}

	reaction, created, err := h.reactionService.Upsert(c.Request().Context(), c.Param("blog_id"), req)
	if err != nil {
		return err
	}

	metrics.Upserted("reaction", created)
	if created {
		return ok(c, reaction, "Reaction successfully added")
	}
	return ok(c, reaction, "Reaction successfully updated")
}
