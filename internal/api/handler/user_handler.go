package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/cafecritique/review-api/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns every account.
//
// @Summary      List accounts
// @Tags         user
// @Produce      json
// @Success      200  {object}  Envelope{data=[]domain.User}
// @Failure      404  {object}  Envelope
// @Router       /user [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return ok(c, users, "")
}

// GetByID returns one account.
//
// @Summary      Get account by ID
// @Tags         user
// @Produce      json
// @Param        id   path      string  true  "Account ID"
// @Success      200  {object}  Envelope{data=domain.User}
// @Failure      400  {object}  Envelope
// @Failure      404  {object}  Envelope
// @Router       /user/_id={id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, user, "")
}

// GetByUsername returns one account.
//
// @Summary      Get account by username
// @Tags         user
// @Produce      json
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  Envelope{data=domain.User}
// @Failure      404       {object}  Envelope
// @Router       /user/username={username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.userService.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return ok(c, user, "")
}
