package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todosapp/todo-service/internal/api/metrics"
	"github.com/todosapp/todo-service/internal/core/domain"
)

// RequireRoles enforces role-based access control on top of Auth. It
// reuses the user Auth resolved and performs no lookup of its own.
func RequireRoles(allowedRoles ...string) echo.MiddlewareFunc {
	return requireRoles("Insufficient permissions.", allowedRoles...)
}

// RequireAdmin admits only users with the admin role.
func RequireAdmin() echo.MiddlewareFunc {
	return requireRoles("Admin access required!", domain.RoleAdmin)
}

func requireRoles(deniedMsg string, allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := CurrentUser(c)
			if !ok {
				return Unauthorized(c, msgNotAuthenticated)
			}
			if _, ok := allowed[user.Role]; !ok {
				metrics.GuardRejectionsTotal.WithLabelValues("forbidden").Inc()
				return echo.NewHTTPError(http.StatusForbidden, deniedMsg)
			}
			return next(c)
		}
	}
}
