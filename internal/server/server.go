// Package server exposes a service.Service as the JSON task API.
package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"taskflow/internal/api"
	"taskflow/internal/service"
)

// ShutdownTimeout bounds how long a graceful shutdown waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Server serves the task API.
type Server struct {
	app       *fiber.App
	svc       service.Service
	logger    *slog.Logger
	accessLog io.Writer
	latency   time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger for lifecycle and error events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithAccessLog enables per-request access logging to w.
func WithAccessLog(w io.Writer) Option {
	return func(s *Server) { s.accessLog = w }
}

// WithLatency delays every write request by d before it is handled.
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// New creates a server backed by svc.
func New(svc service.Service, opts ...Option) *Server {
	s := &Server{
		svc:    svc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "TaskFlow",
		DisableStartupMessage: true,
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))
	if s.accessLog != nil {
		s.app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
			Output: s.accessLog,
		}))
	}
	s.app.Use(cors.New())
	if s.latency > 0 {
		s.app.Use(writeLatency(s.latency))
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.app.Get(api.HealthPath, s.health)

	tasks := s.app.Group(api.BasePath)
	tasks.Get("/", s.listTasks)
	// stats must be registered before the id routes
	tasks.Get("/stats", s.stats)
	tasks.Get("/:id<int>", s.getTask)
	tasks.Post("/", s.createTask)
	tasks.Put("/:id<int>", s.updateTask)
	tasks.Delete("/:id<int>", s.deleteTask)
}

// App returns the fiber app (for testing).
func (s *Server) App() *fiber.App {
	return s.app
}

// Handler adapts the app to net/http.
func (s *Server) Handler() http.HandlerFunc {
	return adaptor.FiberApp(s.app)
}

// Listen serves on addr until Shutdown is called.
func (s *Server) Listen(addr string) error {
	s.logger.Info("task api listening", "addr", addr, "latency", s.latency)
	return s.app.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("task api shutting down")
	return s.app.ShutdownWithContext(ctx)
}

// writeLatency simulates processing time on mutating requests.
func writeLatency(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete:
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-timer.C:
			case <-c.UserContext().Done():
				return c.UserContext().Err()
			}
		}
		return c.Next()
	}
}
