// Command seed creates an admin account (or reuses an existing one) and
// gives it a handful of sample todos.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/todosapp/todo-service/internal/core/domain"
	"github.com/todosapp/todo-service/internal/core/ports"
	"github.com/todosapp/todo-service/internal/core/security"
	"github.com/todosapp/todo-service/internal/core/service"
	mongodb "github.com/todosapp/todo-service/internal/infrastructure/db/mongo"
	"github.com/todosapp/todo-service/internal/pkg/config"
	"github.com/todosapp/todo-service/pkg/logger"
)

var sampleTodos = []ports.TodoInput{
	{Title: "Buy groceries", Description: "Purchase milk, eggs, and bread from the store", Priority: 2},
	{Title: "Complete FastAPI tutorial", Description: "Finish the basics and build the first API", Priority: 3, Complete: true},
	{Title: "Workout", Description: "Go for a 45-min gym session", Priority: 3},
	{Title: "Pay electricity bill", Description: "Pay electricity bill before the due date this week", Priority: 1},
	{Title: "Read a tech blog", Description: "Read about the latest Gen AI developments", Priority: 3},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadSeed(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "todo-seed"})
		boot.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "todo-seed"})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	users := mongodb.NewUserRepository(db)
	admin, err := ensureAdmin(ctx, users, security.NewBcryptHasher(cfg.BcryptCost), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare admin user")
	}

	todos := service.NewTodoService(mongodb.NewTodoRepository(db), nil, log)
	if err := seedTodos(ctx, todos, admin.ID, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed todos")
	}
	log.Info().Int64("owner_id", admin.ID).Int("count", len(sampleTodos)).Msg("data added successfully")
}

func ensureAdmin(ctx context.Context, users ports.UserRepository, hasher security.Hasher, cfg *config.SeedConfig) (*domain.User, error) {
	existing, err := users.FindByUsername(ctx, cfg.AdminUsername)
	if err == nil {
		if !existing.IsAdmin() {
			return nil, errors.New("user " + cfg.AdminUsername + " exists without the admin role")
		}
		return existing, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if err := security.ValidatePassword(cfg.AdminPassword); err != nil {
		return nil, err
	}
	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return users.Create(ctx, &domain.User{
		Username:     cfg.AdminUsername,
		Email:        cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func seedTodos(ctx context.Context, todos ports.TodoService, ownerID int64, log zerolog.Logger) error {
	for _, in := range sampleTodos {
		res, err := todos.Create(ctx, ownerID, in, "")
		if err != nil {
			return err
		}
		log.Debug().Int64("id", res.Todo.ID).Str("title", res.Todo.Title).Msg("todo created")
	}
	return nil
}
