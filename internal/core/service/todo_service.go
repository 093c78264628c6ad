package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/todosapp/todo-service/internal/core/domain"
	"github.com/todosapp/todo-service/internal/core/ports"
)

// IdempotencyStore remembers which todo a client-supplied key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (int64, bool, error)
	Remember(ctx context.Context, scope, key string, id int64) error
}

type TodoService struct {
	repo   ports.TodoRepository
	idem   IdempotencyStore
	logger zerolog.Logger
}

// NewTodoService returns a TodoService. idem may be nil, in which case
// Idempotency-Key headers are ignored.
func NewTodoService(repo ports.TodoRepository, idem IdempotencyStore, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, idem: idem, logger: logger}
}

func (s *TodoService) ListOwn(ctx context.Context, ownerID int64) ([]*domain.Todo, error) {
	return s.repo.List(ctx, ownerID)
}

func (s *TodoService) GetOwn(ctx context.Context, ownerID, id int64) (*domain.Todo, error) {
	return s.repo.FindByID(ctx, id, ownerID)
}

// Create stores a new todo for ownerID. When idempotencyKey was already
// used by the same owner and its todo still exists, that todo is returned
// instead of inserting a second one.
func (s *TodoService) Create(ctx context.Context, ownerID int64, in ports.TodoInput, idempotencyKey string) (*ports.CreateTodoResult, error) {
	scope := strconv.FormatInt(ownerID, 10)

	if idempotencyKey != "" && s.idem != nil {
		if existing := s.replay(ctx, ownerID, scope, idempotencyKey); existing != nil {
			return &ports.CreateTodoResult{Todo: existing, Replayed: true}, nil
		}
	}

	now := time.Now().UTC()
	todo, err := s.repo.Create(ctx, &domain.Todo{
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Complete:    in.Complete,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to create todo")
		return nil, err
	}

	if idempotencyKey != "" && s.idem != nil {
		if err := s.idem.Remember(ctx, scope, idempotencyKey, todo.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", idempotencyKey).Msg("failed to record idempotency key")
		}
	}

	s.logger.Info().Int64("todo_id", todo.ID).Int64("owner_id", ownerID).Msg("todo created")
	return &ports.CreateTodoResult{Todo: todo}, nil
}

func (s *TodoService) replay(ctx context.Context, ownerID int64, scope, key string) *domain.Todo {
	id, ok, err := s.idem.Lookup(ctx, scope, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !ok {
		return nil
	}

	existing, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		if !errors.Is(err, domain.ErrTodoNotFound) {
			s.logger.Warn().Err(err).Int64("todo_id", id).Msg("idempotent replay lookup failed")
		}
		return nil
	}
	s.logger.Info().Str("idempotency_key", key).Int64("todo_id", id).Msg("idempotent replay")
	return existing
}

func (s *TodoService) UpdateOwn(ctx context.Context, ownerID, id int64, in ports.TodoInput) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	todo.Title = in.Title
	todo.Description = in.Description
	todo.Priority = in.Priority
	todo.Complete = in.Complete
	todo.UpdatedAt = time.Now().UTC()

	return s.repo.Update(ctx, todo)
}

func (s *TodoService) DeleteOwn(ctx context.Context, ownerID, id int64) error {
	return s.repo.Delete(ctx, id, ownerID)
}

func (s *TodoService) ListAll(ctx context.Context) ([]*domain.Todo, error) {
	return s.repo.List(ctx, 0)
}

func (s *TodoService) DeleteAny(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id, 0); err != nil {
		return err
	}
	s.logger.Info().Int64("todo_id", id).Msg("todo deleted by admin")
	return nil
}
