// @title                       Todo Service API
// @version                     1.0
// @description                 Multi-user todo tracking with bearer-token authentication and an admin role.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/todosapp/todo-service/internal/api"
	"github.com/todosapp/todo-service/internal/api/handler"
	"github.com/todosapp/todo-service/internal/core/security"
	"github.com/todosapp/todo-service/internal/core/service"
	mongodb "github.com/todosapp/todo-service/internal/infrastructure/db/mongo"
	redisdb "github.com/todosapp/todo-service/internal/infrastructure/db/redis"
	"github.com/todosapp/todo-service/internal/pkg/config"
	"github.com/todosapp/todo-service/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "todo-api"})
		boot.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "todo-api",
	})

	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret:    cfg.Auth.JWTSecret,
		Algorithm: cfg.Auth.JWTAlgorithm,
		TTL:       cfg.Auth.TokenTTL(),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("invalid token configuration")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}

	// Redis only backs idempotent todo creation; run without it rather than fail.
	var (
		rdb   *goredis.Client
		idem  service.IdempotencyStore
		ready = map[string]handler.Checker{"mongodb": handler.MongoChecker(client)}
	)
	rdb, err = redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, idempotency keys disabled")
	} else {
		defer rdb.Close()
		idem = redisdb.NewIdempotencyStore(rdb, 0)
		ready["redis"] = handler.RedisChecker(rdb)
	}

	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	users := mongodb.NewUserRepository(db)
	authService := service.NewAuthService(users, hasher, tokens, service.AuthConfig{
		TokenTTL:            cfg.Auth.TokenTTL(),
		AllowRoleSelfAssign: cfg.Auth.AllowRoleSelfAssign,
	}, log.With().Str("component", "auth").Logger())

	e := api.NewRouter(api.Deps{
		Log:           log,
		Auth:          authService,
		Authenticator: authService,
		Users:         service.NewUserService(users, hasher, log.With().Str("component", "user").Logger()),
		Todos: service.NewTodoService(mongodb.NewTodoRepository(db), idem,
			log.With().Str("component", "todo").Logger()),
		Sessions: client,
		Health:   ready,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
