package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/webshop-api/internal/api/handler"
	"github.com/sirpyerre/webshop-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after BasicAuth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := handler.CurrentUser(c)
			if !ok {
				return domain.ErrForbidden
			}
			if _, ok := allowed[user.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
