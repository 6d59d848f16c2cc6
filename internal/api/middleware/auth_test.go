package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	testSecret = "secret"
	bloggerID  = "65f1c0ffee0000000000abcd"
)

func sign(t *testing.T, method jwt.SigningMethod, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func bloggerClaims(exp time.Time) jwt.MapClaims {
	return jwt.MapClaims{"userId": bloggerID, "username": "janedoe01", "role": "blogger", "exp": exp.Unix()}
}

// serveAuth runs Auth in front of a handler that records the injected claims.
func serveAuth(header string) (*httptest.ResponseRecorder, echo.Context, bool) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/blogs/1", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	err := Auth(testSecret)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusNoContent)
	})(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c, reached
}

func TestAuth_InjectsClaims(t *testing.T) {
	for _, scheme := range []string{"Bearer ", "bearer "} {
		token := sign(t, jwt.SigningMethodHS256, testSecret, bloggerClaims(time.Now().Add(time.Hour)))
		rec, c, reached := serveAuth(scheme + token)

		if !reached || rec.Code != http.StatusNoContent {
			t.Fatalf("%q: expected 204 from next handler, got %d (reached=%v)", scheme, rec.Code, reached)
		}
		if c.Get(CtxUserID) != bloggerID || c.Get(CtxUsername) != "janedoe01" || c.Get(CtxRole) != "blogger" {
			t.Fatalf("%q: claims not injected: %v %v %v", scheme, c.Get(CtxUserID), c.Get(CtxUsername), c.Get(CtxRole))
		}
	}
}

func TestAuth_Rejects(t *testing.T) {
	hour := time.Now().Add(time.Hour)

	tests := map[string]string{
		"missing header":  "",
		"wrong scheme":    "Token abc",
		"no token":        "Bearer",
		"garbage token":   "Bearer not-a-token",
		"expired":         "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret, bloggerClaims(time.Now().Add(-time.Minute))),
		"no expiry":       "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"userId": bloggerID}),
		"wrong secret":    "Bearer " + sign(t, jwt.SigningMethodHS256, "other", bloggerClaims(hour)),
		"other hmac alg":  "Bearer " + sign(t, jwt.SigningMethodHS512, testSecret, bloggerClaims(hour)),
		"no account id":   "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"username": "janedoe01", "exp": hour.Unix()}),
		"numeric user id": "Bearer " + sign(t, jwt.SigningMethodHS256, testSecret, jwt.MapClaims{"userId": 7, "exp": hour.Unix()}),
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			rec, _, reached := serveAuth(header)
			if reached {
				t.Fatalf("next handler reached")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}
