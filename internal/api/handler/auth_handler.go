package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cafecritique/review-api/internal/api/metrics"
	"github.com/cafecritique/review-api/internal/core/domain"
	"github.com/cafecritique/review-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewAuthHandler(authService ports.AuthService, userService ports.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Register creates a new account.
//
// @Summary      Register an account
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "Account details"
// @Success      200   {object}  Envelope{data=domain.User}
// @Failure      400   {object}  Envelope
// @Failure      500   {object}  Envelope
// @Router       /authentication/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}

	user, err := h.authService.Register(c.Request().Context(), req)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(user.Role)).Inc()
	return ok(c, user, "Account registered")
}

// Login authenticates an account and returns a session token.
//
// @Summary      Login
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        body  body      ports.LoginInput  true  "Credentials"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Router       /authentication/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req ports.LoginInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}

	token, principal, err := h.authService.Login(c.Request().Context(), req)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, Envelope{Msg: "Login successful", Token: token, User: principal})
}

// IsUsernameAvailable reports whether a username can still be registered.
//
// @Summary      Check username availability
// @Tags         authentication
// @Accept       json
// @Produce      json
// @Param        body  body      ports.UsernameInput  true  "Username"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Router       /authentication/isUsernameAvailable [post]
func (h *AuthHandler) IsUsernameAvailable(c echo.Context) error {
	var req ports.UsernameInput
	if err := c.Bind(&req); err != nil {
		return malformedBody()
	}

	available, err := h.authService.IsUsernameAvailable(c.Request().Context(), req)
	if err != nil {
		return err
	}
	if !available {
		return Fail(c, http.StatusBadRequest, domain.FieldError{Msg: "Username is already taken", Param: "username", Value: req.Username})
	}
	return ok(c, map[string]bool{"available": true}, "Username is available")
}

// Profile returns the account behind the bearer token.
//
// @Summary      Current account
// @Tags         authentication
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  Envelope{data=domain.User}
// @Failure      401   {object}  Envelope
// @Failure      404   {object}  Envelope
// @Router       /authentication/profile [get]
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetByID(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return ok(c, user, "")
}
