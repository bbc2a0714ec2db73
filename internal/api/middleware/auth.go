package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/webshop-api/internal/api/handler"
	"github.com/sirpyerre/webshop-api/internal/api/metrics"
	"github.com/sirpyerre/webshop-api/internal/api/request"
	"github.com/sirpyerre/webshop-api/internal/core/domain"
	"github.com/sirpyerre/webshop-api/internal/core/ports"
)

// BasicAuth resolves the Authorization header to a user and stores it on the
// context. Missing, malformed and wrong credentials all end in
// request.ErrUnauthenticated so callers cannot tell them apart.
func BasicAuth(auth ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, password, ok := request.BasicCredentials(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AuthAttemptsTotal.WithLabelValues("missing").Inc()
				return request.ErrUnauthenticated
			}

			user, err := auth.Authenticate(c.Request().Context(), email, password)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredentials) {
					metrics.AuthAttemptsTotal.WithLabelValues("invalid").Inc()
					return request.ErrUnauthenticated
				}
				metrics.AuthAttemptsTotal.WithLabelValues("error").Inc()
				return err
			}

			metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
			handler.SetCurrentUser(c, user)
			return next(c)
		}
	}
}
