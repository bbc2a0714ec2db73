package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/webshop-api/internal/api/request"
	"github.com/sirpyerre/webshop-api/internal/core/domain"
)

const currentUserKey = "current_user"

// SetCurrentUser stores the authenticated user on the echo context.
func SetCurrentUser(c echo.Context, u *domain.User) {
	c.Set(currentUserKey, u)
}

// CurrentUser returns the user stored by SetCurrentUser.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	u, ok := c.Get(currentUserKey).(*domain.User)
	return u, ok && u != nil
}

// ctxUser is the fast-fail variant for handlers that run behind BasicAuth.
// A missing user means the middleware chain is misconfigured.
func ctxUser(c echo.Context) (*domain.User, error) {
	u, ok := CurrentUser(c)
	if !ok {
		return nil, request.ErrUnauthenticated
	}
	return u, nil
}

func decodeBody(c echo.Context, v any) error {
	return request.DecodeJSON(c.Request().Body, v)
}
