package ports

import (
	"context"

	"github.com/todosapp/todo-service/internal/core/domain"
)

type UserService interface {
	ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error
}
