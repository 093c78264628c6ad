package ports

import (
	"context"

	"github.com/todosapp/todo-service/internal/core/domain"
)

// RegisterInput carries a registration request after transport decoding.
type RegisterInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
	Role      string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}

// Authenticator resolves a bearer token into the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}
