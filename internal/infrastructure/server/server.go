package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/bettercode/todo-tasks/internal/adapters/cache"
	"github.com/bettercode/todo-tasks/internal/adapters/eventbus"
	httpHandlers "github.com/bettercode/todo-tasks/internal/adapters/http"
	"github.com/bettercode/todo-tasks/internal/adapters/repository"
	"github.com/bettercode/todo-tasks/internal/application/services"
	"github.com/bettercode/todo-tasks/internal/domain/entities"
	"github.com/bettercode/todo-tasks/internal/domain/events"
	"github.com/bettercode/todo-tasks/internal/infrastructure/config"
	"github.com/bettercode/todo-tasks/internal/infrastructure/database"
	"github.com/bettercode/todo-tasks/internal/infrastructure/logger"
	"github.com/bettercode/todo-tasks/internal/ports"
)

// Server represents the HTTP server
type Server struct {
	echo     *echo.Echo
	config   *config.Config
	logger   *logger.Logger
	db       *database.DB
	natsConn *nats.Conn
	listener *eventbus.NATSListener
	cache    *cache.RedisCache
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance and wires the application together:
// repositories, the event bus with its subscribers, the optional NATS
// transport and Redis cache, the services and the HTTP handlers.
func New(cfg *config.Config, db *database.DB, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		db:     db,
	}

	// Initialize repositories
	taskRepo := repository.NewTaskRepository(db.DB)
	projectRepo := repository.NewProjectRepository(db.DB)
	taskQueryRepo := repository.NewTaskQueryRepository(db.DB)
	projectQueryRepo := repository.NewProjectQueryRepository(db.DB)

	// Optional external event transport
	var outbound ports.EventPublisher
	if cfg.NATS.Enabled() {
		conn, err := nats.Connect(cfg.NATS.URL, nats.Name(cfg.App.Name))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to nats: %w", err)
		}
		server.natsConn = conn
		outbound = eventbus.NewNATSPublisher(conn, appLogger)
	}

	bus := eventbus.NewBus(outbound, appLogger)

	// Optional read-model cache
	var cacheRepo ports.CacheRepository
	if cfg.Redis.Enabled() {
		redisCache, err := cache.NewRedisCache(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		server.cache = redisCache
		cacheRepo = redisCache
	}

	// Initialize services
	projectService := services.NewProjectService(projectRepo, bus, appLogger)
	projectsQuery := services.NewProjectsQueryService(projectQueryRepo, cacheRepo)
	projectCompletion := services.NewProjectCompletionService(projectRepo, bus, entities.SystemClock(), appLogger)
	projectsFacade := services.NewProjectsFacade(projectService, projectsQuery, projectCompletion)

	taskService := services.NewTaskService(taskRepo, projectRepo, projectService, bus, appLogger)
	taskCompletion := services.NewTaskCompletionService(taskRepo, bus, appLogger)
	assignment := services.NewProjectAssignmentService(taskRepo, projectRepo, bus, appLogger)
	tasksQuery := services.NewTasksQueryService(taskQueryRepo, taskRepo)
	tasksFacade := services.NewTasksFacade(taskService, projectsFacade, taskCompletion, assignment, tasksQuery)

	// Event subscribers
	deletedHandler := services.NewProjectDeletedHandler(taskRepo, tasksQuery, projectService, assignment, appLogger)
	bus.Subscribe(events.KindProjectDeleted, func(ctx context.Context, event events.DomainEvent) error {
		deleted, ok := event.(events.ProjectDeleted)
		if !ok {
			return nil
		}
		return deletedHandler.Handle(ctx, deleted)
	})

	audit := services.NewAuditLogger(appLogger)
	bus.Subscribe(events.KindAuditLogCommand, audit.Handle)

	if cacheRepo != nil {
		invalidator := services.NewProjectCacheInvalidator(cacheRepo, appLogger)
		bus.Subscribe(events.KindProjectCompleted, invalidator.Handle)
		bus.Subscribe(events.KindProjectReopened, invalidator.Handle)
		bus.Subscribe(events.KindProjectDeleted, invalidator.Handle)
	}

	if server.natsConn != nil {
		server.listener = eventbus.NewNATSListener(server.natsConn, deletedHandler, appLogger)
	}

	// Initialize handlers
	taskHandler := httpHandlers.NewTaskHandler(tasksFacade, entities.SystemClock(), appLogger)
	projectHandler := httpHandlers.NewProjectHandler(projectsFacade, tasksFacade, appLogger)

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(taskHandler, projectHandler)

	// Setup metrics
	if cfg.Metrics.Enabled {
		server.setupMetrics()
	}

	return server, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware() {
	// Recovery middleware
	s.echo.Use(middleware.Recover())

	// Logger middleware
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogUserAgent: true,
		LogValuesFunc: func(c echo.Context, values middleware.RequestLoggerValues) error {
			fields := []interface{}{
				"method", values.Method,
				"uri", values.URI,
				"status", values.Status,
				"latency_ms", float64(values.Latency.Nanoseconds()) / 1000000,
				"remote_ip", values.RemoteIP,
				"user_agent", values.UserAgent,
			}

			if values.Error != nil {
				fields = append(fields, "error", values.Error.Error())
				s.logger.Errorw("HTTP request failed", fields...)
			} else {
				s.logger.Infow("HTTP request", fields...)
			}

			return nil
		},
	}))

	// CORS middleware
	s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: strings.Split(s.config.Security.CORSAllowedOrigins, ","),
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowMethods: []string{echo.GET, echo.HEAD, echo.PUT, echo.PATCH, echo.POST, echo.DELETE},
	}))

	// Rate limiting middleware
	s.echo.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{Rate: rate.Limit(s.config.Security.RateLimitRequests), Burst: s.config.Security.RateLimitRequests, ExpiresIn: s.config.Security.RateLimitWindow},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			id := ctx.RealIP()
			return id, nil
		},
		ErrorHandler: func(context echo.Context, err error) error {
			return context.JSON(http.StatusForbidden, map[string]string{"message": "rate limit exceeded"})
		},
		DenyHandler: func(context echo.Context, identifier string, err error) error {
			return context.JSON(http.StatusTooManyRequests, map[string]string{"message": "rate limit exceeded"})
		},
	}))

	// Security headers
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
	}))

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Timeout middleware
	s.echo.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: 30 * time.Second,
	}))
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(taskHandler *httpHandlers.TaskHandler, projectHandler *httpHandlers.ProjectHandler) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Task routes
	taskGroup := v1.Group("/tasks")
	taskGroup.GET("", taskHandler.ListTasks)
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.GET("/inbox", taskHandler.ListInboxTasks)
	taskGroup.GET("/:id", taskHandler.GetTask)
	taskGroup.DELETE("/:id", taskHandler.DeleteTask)
	taskGroup.POST("/:id/complete", taskHandler.CompleteTask)
	taskGroup.POST("/:id/reopen", taskHandler.ReopenTask)
	taskGroup.PUT("/:id/project/:projectId", taskHandler.AssignTask)

	// Project routes
	projectGroup := v1.Group("/projects")
	projectGroup.GET("", projectHandler.ListProjects)
	projectGroup.POST("", projectHandler.CreateProject)
	projectGroup.GET("/inbox", projectHandler.GetInbox)
	projectGroup.GET("/:id", projectHandler.GetProject)
	projectGroup.DELETE("/:id", projectHandler.DeleteProject)
	projectGroup.GET("/:id/tasks", projectHandler.GetProjectTasks)
	projectGroup.POST("/:id/complete", projectHandler.CompleteProject)
	projectGroup.POST("/:id/reopen", projectHandler.ReopenProject)
}

// setupMetrics configures Prometheus metrics
func (s *Server) setupMetrics() {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	registry.MustRegister(requestsTotal, requestDuration)

	// Custom metrics middleware
	s.echo.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start)
			status := c.Response().Status

			requestsTotal.WithLabelValues(
				c.Request().Method,
				c.Path(),
				fmt.Sprintf("%d", status),
			).Inc()

			requestDuration.WithLabelValues(
				c.Request().Method,
				c.Path(),
			).Observe(duration.Seconds())

			return err
		}
	})

	// Metrics endpoint
	metricsHandler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	s.echo.GET("/metrics", echo.WrapHandler(metricsHandler))
}

// Health check handlers
func (s *Server) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) detailedHealthCheck(c echo.Context) error {
	status := "ok"
	checks := make(map[string]interface{})

	// Database health check
	if err := s.db.HealthCheck(); err != nil {
		status = "error"
		checks["database"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["database"] = map[string]interface{}{
			"status": "ok",
			"stats":  s.db.GetConnectionInfo(),
		}
	}

	if s.natsConn != nil {
		natsStatus := "ok"
		if !s.natsConn.IsConnected() {
			status = "error"
			natsStatus = "disconnected"
		}
		checks["nats"] = map[string]interface{}{"status": natsStatus}
	}

	if s.cache != nil {
		cacheStatus := "ok"
		if err := s.cache.Ping(c.Request().Context()); err != nil {
			status = "error"
			cacheStatus = "error"
		}
		checks["redis"] = map[string]interface{}{"status": cacheStatus}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	// Check if server is ready to accept requests
	if err := s.db.Ping(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "database_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the inbound event listener and the HTTP server
func (s *Server) Start(address string) error {
	if s.listener != nil {
		if err := s.listener.Start(context.Background()); err != nil {
			return fmt.Errorf("failed to start event listener: %w", err)
		}
	}

	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server and its connections
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")

	if s.listener != nil {
		if err := s.listener.Stop(); err != nil {
			s.logger.Warn("Stopping event listener failed", "error", err)
		}
	}
	if s.natsConn != nil {
		s.natsConn.Close()
	}
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Warn("Closing cache failed", "error", err)
		}
	}

	return s.echo.Shutdown(ctx)
}

// customErrorHandler handles HTTP errors
func customErrorHandler(logger *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		var (
			code = http.StatusInternalServerError
			msg  interface{}
		)

		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			msg = he.Message
			if he.Internal != nil {
				err = fmt.Errorf("%v, %v", err, he.Internal)
			}
		} else if e, ok := err.(validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
		}

		if text, ok := msg.(string); ok {
			msg = map[string]string{"message": text}
		}

		// Send response
		if !c.Response().Committed {
			if c.Request().Method == echo.HEAD {
				err = c.NoContent(code)
			} else {
				err = c.JSON(code, msg)
			}
			if err != nil {
				logger.Error("Error sending response", "error", err)
			}
		}
	}
}
