package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cafecritique/review-api/internal/api/middleware"
)

// ctxUserID extracts the account identifier injected by the Auth middleware.
// Its presence proves the middleware ran.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// actAs binds an author field of the request body to the signed-in account.
// Without the Auth middleware the body is trusted as sent. With it, an empty
// field is filled from the token and a different username is forbidden.
func actAs(c echo.Context, param string, field *string) error {
	if _, authed := c.Get(middleware.CtxUserID).(string); !authed {
		return nil
	}
	username, _ := c.Get(middleware.CtxUsername).(string)
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	claimed := strings.ToLower(strings.TrimSpace(*field))
	switch claimed {
	case "":
		*field = username
	case username:
	default:
		return echo.NewHTTPError(http.StatusForbidden,
			fmt.Sprintf("%q does not match the signed-in account", param))
	}
	return nil
}
