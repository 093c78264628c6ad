package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/todosapp/todo-service/internal/api/middleware"
	"github.com/todosapp/todo-service/internal/core/domain"
)

// currentUser returns the user resolved by the Auth middleware. A missing
// user means the route was mounted without the guard; treat it as
// unauthenticated rather than trusting the request.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, middleware.Unauthorized(c, "Not authenticated")
	}
	return user, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a positive integer")
	}
	return id, nil
}
