package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Context keys set by Auth.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "invalid token")

// Auth accepts "Bearer <token>" where the token is HS256-signed with secret,
// carries an expiry and names an account in userId. The account id, username
// and role claims are copied into the echo context.
func Auth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearer(c.Request())
			if err != nil {
				return err
			}

			claims := jwt.MapClaims{}
			if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) { return key, nil }); err != nil {
				return errUnauthorized
			}
			id, ok := claims["userId"].(string)
			if !ok || id == "" {
				return errUnauthorized
			}

			c.Set(CtxUserID, id)
			c.Set(CtxUsername, claims["username"])
			c.Set(CtxRole, claims["role"])
			return next(c)
		}
	}
}

func bearer(r *http.Request) (string, error) {
	h := r.Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") || token == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return token, nil
}
