package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cafecritique/review-api/internal/api/handler"
	"github.com/cafecritique/review-api/internal/core/domain"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes.
//   - Logs internal and unexpected errors without leaking details to the client.
//   - Renders the envelope {"error": true, "errors": [{"msg": ...}]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, errs := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = handler.Fail(c, code, errs...)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, []domain.FieldError) {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		ce *domain.ConflictError
		ie *domain.InternalError
		he *echo.HTTPError
	)

	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Errors
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusBadRequest, single(err.Error())
	case errors.As(err, &ce):
		return http.StatusBadRequest, single(ce.Msg)
	case errors.As(err, &nf):
		return http.StatusNotFound, single(nf.Msg)
	case errors.As(err, &ie):
		logError(log, c, ie.Cause, ie.Msg)
		return http.StatusInternalServerError, single(ie.Msg)
	case errors.As(err, &he):
		// Echo's own errors: router 404/405, body limit, auth middleware.
		if he.Code >= http.StatusInternalServerError {
			logError(log, c, err, "echo error")
		}
		return he.Code, single(fmt.Sprintf("%v", he.Message))
	}

	// Unexpected error: log the real cause, return a generic message.
	logError(log, c, err, "unhandled error")
	return http.StatusInternalServerError, single("internal server error")
}

func single(msg string) []domain.FieldError {
	return []domain.FieldError{{Msg: msg}}
}

func logError(log zerolog.Logger, c echo.Context, err error, msg string) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
}
