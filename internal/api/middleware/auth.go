package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/todosapp/todo-service/internal/api/metrics"
	"github.com/todosapp/todo-service/internal/core/domain"
	"github.com/todosapp/todo-service/internal/core/ports"
)

const userContextKey = "user"

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidToken     = "Invalid or expired token."
)

// Auth resolves the bearer token into a user and stores it on the context.
// A missing header, a bad token and a token whose user no longer exists all
// stop the request with 401 and a Bearer challenge.
func Auth(authn ports.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.GuardRejectionsTotal.WithLabelValues("missing_token").Inc()
				return Unauthorized(c, msgNotAuthenticated)
			}

			user, err := authn.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					metrics.GuardRejectionsTotal.WithLabelValues("invalid_token").Inc()
					return Unauthorized(c, msgInvalidToken)
				}
				return err
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// Unauthorized sets the Bearer challenge and returns a 401 error.
func Unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}

// CurrentUser returns the user resolved by Auth.
func CurrentUser(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userContextKey).(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
