package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/todosapp/todo-service/docs"
	"github.com/todosapp/todo-service/internal/api/handler"
	"github.com/todosapp/todo-service/internal/api/middleware"
	"github.com/todosapp/todo-service/internal/core/ports"
)

// Deps is everything the HTTP layer needs. Sessions, Health and Metrics
// are optional.
type Deps struct {
	Log           zerolog.Logger
	Auth          ports.AuthService
	Authenticator ports.Authenticator
	Users         ports.UserService
	Todos         ports.TodoService

	// Sessions, when set, scopes each request to its own Mongo session.
	Sessions middleware.SessionStarter
	Health   map[string]handler.Checker
	// Metrics defaults to the global Prometheus registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler()

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.ContextLogger(d.Log))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "todos",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	if d.Sessions != nil {
		e.Use(middleware.Session(d.Sessions))
	}

	// --- Probes, metrics and docs (no auth required) ---
	health := handler.NewHealthHandler(d.Health)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/swagger", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	authGuard := middleware.Auth(d.Authenticator)

	// --- Auth ---
	authHandler := handler.NewAuthHandler(d.Auth)
	auth := e.Group("/auth")
	auth.POST("/add_user", authHandler.Register)
	auth.POST("/token", authHandler.Login)

	// --- User ---
	userHandler := handler.NewUserHandler(d.Users)
	user := e.Group("/user", authGuard)
	user.GET("/active_user", userHandler.ActiveUser)
	user.PUT("/change_password", userHandler.ChangePassword)

	// --- Todos ---
	todoHandler := handler.NewTodoHandler(d.Todos)
	todos := e.Group("/todos", authGuard)
	todos.GET("", todoHandler.List)
	todos.POST("/add_todo", todoHandler.Create)
	todos.GET("/:id", todoHandler.Get)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Admin ---
	adminHandler := handler.NewAdminHandler(d.Todos)
	admin := e.Group("/admin", authGuard, middleware.RequireAdmin())
	admin.GET("/todos", adminHandler.ListTodos)
	admin.DELETE("/todos/:id", adminHandler.DeleteTodo)

	return e
}
