package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/todosapp/todo-service/internal/core/domain"
	"github.com/todosapp/todo-service/internal/core/ports"
	"github.com/todosapp/todo-service/internal/core/security"
)

type UserService struct {
	repo   ports.UserRepository
	hasher security.Hasher
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, hasher security.Hasher, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, hasher: hasher, logger: logger}
}

// ChangePassword replaces the user's password once the old one verifies.
// Only the new password is held to the complexity policy.
func (s *UserService) ChangePassword(ctx context.Context, user *domain.User, oldPassword, newPassword string) error {
	if !s.hasher.Verify(oldPassword, user.PasswordHash) {
		return domain.ErrIncorrectPassword
	}
	if err := security.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now().UTC()
	s.logger.Info().Int64("user_id", user.ID).Msg("password changed")
	return nil
}
