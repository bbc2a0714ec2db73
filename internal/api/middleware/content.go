package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/webshop-api/internal/api/request"
)

// RequireJSONBody rejects requests whose Content-Type is not exactly
// application/json before the body is read.
func RequireJSONBody() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !request.IsJSON(c.Request().Header) {
				return request.ErrUnsupportedMediaType
			}
			return next(c)
		}
	}
}
