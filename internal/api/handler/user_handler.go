package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todosapp/todo-service/internal/api/metrics"
	"github.com/todosapp/todo-service/internal/core/domain"
	"github.com/todosapp/todo-service/internal/core/ports"
)

// UserHandler serves the authenticated user's own account.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ActiveUser returns the caller's profile.
//
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /user/active_user [get]
func (h *UserHandler) ActiveUser(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword replaces the caller's password after verifying the old one.
//
// @Summary      Change password
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Old and new password"
// @Success      200   {string}  string  "Password changed successfully"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /user/change_password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.userService.ChangePassword(c.Request().Context(), user, req.OldPassword, req.NewPassword); err != nil {
		result := "error"
		var pv *domain.PolicyViolation
		switch {
		case errors.Is(err, domain.ErrIncorrectPassword):
			result = "incorrect_password"
		case errors.As(err, &pv), errors.Is(err, domain.ErrPasswordTooLong):
			result = "policy_violation"
		}
		metrics.PasswordChangesTotal.WithLabelValues(result).Inc()
		return err
	}

	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, "Password changed successfully")
}
