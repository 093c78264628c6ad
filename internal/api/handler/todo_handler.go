package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/todosapp/todo-service/internal/api/metrics"
	"github.com/todosapp/todo-service/internal/core/ports"
)

const headerIdempotencyKey = "Idempotency-Key"

// TodoHandler serves the caller's own todos. Every operation is filtered
// by the authenticated user's id.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// List handles GET /todos.
//
// @Summary      List own todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   todoResponse
// @Failure      401  {object}  errorResponse
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	todos, err := h.service.ListOwn(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponses(todos))
}

// Get handles GET /todos/:id.
//
// @Summary      Get an own todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo id"
// @Success      200  {object}  todoResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	todo, err := h.service.GetOwn(c.Request().Context(), user.ID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Create handles POST /todos/add_todo.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string       false  "Replays the earlier result instead of creating a duplicate"
// @Param        body             body      todoRequest  true   "Todo"
// @Success      201              {object}  todoResponse
// @Success      200              {object}  todoResponse  "Idempotent replay"
// @Failure      401              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /todos/add_todo [post]
func (h *TodoHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	input, err := bindTodo(c)
	if err != nil {
		return err
	}

	key := c.Request().Header.Get(headerIdempotencyKey)
	result, err := h.service.Create(c.Request().Context(), user.ID, input, key)
	if err != nil {
		return err
	}

	if result.Replayed {
		metrics.TodoMutationsTotal.WithLabelValues("replay").Inc()
		return c.JSON(http.StatusOK, toTodoResponse(result.Todo))
	}
	metrics.TodoMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, toTodoResponse(result.Todo))
}

// Update handles PUT /todos/:id.
//
// @Summary      Update an own todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Todo id"
// @Param        body  body      todoRequest  true  "Todo"
// @Success      200   {object}  todoResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	input, err := bindTodo(c)
	if err != nil {
		return err
	}

	todo, err := h.service.UpdateOwn(c.Request().Context(), user.ID, id, input)
	if err != nil {
		return err
	}
	metrics.TodoMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Delete handles DELETE /todos/:id.
//
// @Summary      Delete an own todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id   path  int  true  "Todo id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.service.DeleteOwn(c.Request().Context(), user.ID, id); err != nil {
		return err
	}
	metrics.TodoMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}

func bindTodo(c echo.Context) (ports.TodoInput, error) {
	var req todoRequest
	if err := c.Bind(&req); err != nil {
		return ports.TodoInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.TodoInput{}, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return ports.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Complete:    req.Complete,
	}, nil
}
