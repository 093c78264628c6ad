package ports

import (
	"context"

	"github.com/todosapp/todo-service/internal/core/domain"
)

// TodoRepository defines persistence operations for todos.
// A zero ownerID disables the ownership filter (admin access); any other
// value restricts the operation to rows owned by that user.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id, ownerID int64) (*domain.Todo, error)
	List(ctx context.Context, ownerID int64) ([]*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	Delete(ctx context.Context, id, ownerID int64) error
}
