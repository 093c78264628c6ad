package ports

import (
	"context"

	"github.com/todosapp/todo-service/internal/core/domain"
)

// UserRepository is the user directory. Lookups that match nothing return
// domain.ErrUserNotFound.
type UserRepository interface {
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	FindByIDAndUsername(ctx context.Context, id int64, username string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create assigns the user's ID. A uniqueness violation on username or
	// email is reported as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}
