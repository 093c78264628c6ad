package ports

import (
	"context"

	"github.com/todosapp/todo-service/internal/core/domain"
)

// TodoInput carries the mutable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	Priority    int
	Complete    bool
}

// CreateTodoResult is returned by Create. Replayed is true when the
// Idempotency-Key matched a todo created earlier by the same user.
type CreateTodoResult struct {
	Todo     *domain.Todo
	Replayed bool
}

// TodoService defines the todo use cases. Owner-scoped operations never
// reveal whether a todo the caller does not own exists.
type TodoService interface {
	ListOwn(ctx context.Context, ownerID int64) ([]*domain.Todo, error)
	GetOwn(ctx context.Context, ownerID, id int64) (*domain.Todo, error)
	Create(ctx context.Context, ownerID int64, input TodoInput, idempotencyKey string) (*CreateTodoResult, error)
	UpdateOwn(ctx context.Context, ownerID, id int64, input TodoInput) (*domain.Todo, error)
	DeleteOwn(ctx context.Context, ownerID, id int64) error

	ListAll(ctx context.Context) ([]*domain.Todo, error)
	DeleteAny(ctx context.Context, id int64) error
}
