package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sirpyerre/webshop-api/internal/api/request"
	"github.com/sirpyerre/webshop-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps dispatcher, request and domain errors to their HTTP status codes.
//   - Adds the Basic challenge to every 401.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if code == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, `Basic realm="webshop"`)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (body limit, missing static file, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Msg
	}

	// Transport rejections raised before a handler runs.
	switch {
	case errors.Is(err, ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, err.Error()
	case errors.Is(err, ErrRouteNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, request.ErrNotAcceptable):
		return http.StatusNotAcceptable, err.Error()
	case errors.Is(err, request.ErrUnauthenticated):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, request.ErrUnsupportedMediaType):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, request.ErrMalformedBody):
		return http.StatusBadRequest, request.ErrMalformedBody.Error()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, request.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrEmailInUse),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrSelfUpdate),
		errors.Is(err, domain.ErrSelfDelete),
		errors.Is(err, domain.ErrEmptyOrder):
		return http.StatusBadRequest, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Request().URL.Path).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
