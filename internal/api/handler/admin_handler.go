package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todosapp/todo-service/internal/api/metrics"
	"github.com/todosapp/todo-service/internal/core/ports"
)

// AdminHandler serves the unfiltered todo views. Routes must be mounted
// behind Auth and RequireAdmin.
type AdminHandler struct {
	service ports.TodoService
}

func NewAdminHandler(service ports.TodoService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListTodos handles GET /admin/todos.
//
// @Summary      List every user's todos
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   todoResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/todos [get]
func (h *AdminHandler) ListTodos(c echo.Context) error {
	todos, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponses(todos))
}

// DeleteTodo handles DELETE /admin/todos/:id.
//
// @Summary      Delete any todo
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  int  true  "Todo id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/todos/{id} [delete]
func (h *AdminHandler) DeleteTodo(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteAny(c.Request().Context(), id); err != nil {
		return err
	}
	metrics.TodoMutationsTotal.WithLabelValues("admin_delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
