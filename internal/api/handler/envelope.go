package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cafecritique/review-api/internal/core/domain"
)

// Envelope is the response body of every endpoint.
type Envelope struct {
	Error  bool                `json:"error"`
	Data   any                 `json:"data,omitempty"`
	Errors []domain.FieldError `json:"errors,omitempty"`
	Msg    string              `json:"msg,omitempty"`
	Token  string              `json:"token,omitempty"`
	User   *domain.Principal   `json:"user,omitempty"`
}

// ok writes a 200 envelope carrying data and an optional confirmation message.
func ok(c echo.Context, data any, msg string) error {
	return c.JSON(http.StatusOK, Envelope{Data: data, Msg: msg})
}

// Fail writes an error envelope.
func Fail(c echo.Context, status int, errs ...domain.FieldError) error {
	return c.JSON(status, Envelope{Error: true, Errors: errs})
}

// malformedBody reports a body that could not be decoded at all.
func malformedBody() error {
	return domain.Invalid("", "Request body is malformed", nil)
}
