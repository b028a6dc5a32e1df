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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	httpHandlers "github.com/studytracker/core/internal/adapters/http"
	"github.com/studytracker/core/internal/adapters/repository"
	"github.com/studytracker/core/internal/application/services"
	"github.com/studytracker/core/internal/infrastructure/config"
	"github.com/studytracker/core/internal/infrastructure/logger"
	"github.com/studytracker/core/internal/infrastructure/storage"
)

// Server represents the HTTP server
type Server struct {
	echo   *echo.Echo
	config *config.Config
	logger *logger.Logger
	store  *storage.Store
	timers *services.TimerService
}

// CustomValidator wraps the validator
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates structs
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// New creates a new server instance
func New(cfg *config.Config, store *storage.Store, appLogger *logger.Logger) (*Server, error) {
	e := echo.New()

	// Set custom validator
	e.Validator = &CustomValidator{validator: validator.New()}

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true

	// Custom error handler
	e.HTTPErrorHandler = customErrorHandler(appLogger)

	// Initialize repositories
	userRepo := repository.NewUserRepository(store.Storage)
	taskRepo := repository.NewTaskRepository(store.Storage)
	subjectRepo := repository.NewSubjectRepository(store.Storage)
	appRepo := repository.NewStudyAppRepository(store.Storage)
	onboardingRepo := repository.NewOnboardingRepository(store.Storage)

	// Initialize services
	authService := services.NewAuthService(userRepo, onboardingRepo, cfg.JWT, appLogger)
	taskService := services.NewTaskService(taskRepo, appLogger)
	subjectService := services.NewSubjectService(subjectRepo, taskRepo, appLogger)
	studyAppService := services.NewStudyAppService(appRepo, appLogger)
	timerService := services.NewTimerService(taskService, appLogger)

	// Initialize handlers
	authHandler := httpHandlers.NewAuthHandler(authService, appLogger)
	taskHandler := httpHandlers.NewTaskHandler(taskService, appLogger)
	subjectHandler := httpHandlers.NewSubjectHandler(subjectService, appLogger)
	studyAppHandler := httpHandlers.NewStudyAppHandler(studyAppService, appLogger)
	timerHandler := httpHandlers.NewTimerHandler(timerService, appLogger)
	statsHandler := httpHandlers.NewStatsHandler(taskService, subjectService, appLogger)

	server := &Server{
		echo:   e,
		config: cfg,
		logger: appLogger,
		store:  store,
		timers: timerService,
	}

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes(authHandler, taskHandler, subjectHandler, studyAppHandler, timerHandler, statsHandler, authService)

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
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
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
func (s *Server) setupRoutes(authHandler *httpHandlers.AuthHandler, taskHandler *httpHandlers.TaskHandler, subjectHandler *httpHandlers.SubjectHandler, studyAppHandler *httpHandlers.StudyAppHandler, timerHandler *httpHandlers.TimerHandler, statsHandler *httpHandlers.StatsHandler, authService *services.AuthService) {
	// Health check routes
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/health/detailed", s.detailedHealthCheck)
	s.echo.GET("/ready", s.readinessCheck)

	// API documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Auth routes
	authGroup := v1.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, s.authMiddleware(authService))
	authGroup.GET("/me", authHandler.Me, s.authMiddleware(authService))

	// Task routes (authenticated)
	taskGroup := v1.Group("/tasks", s.authMiddleware(authService))
	taskGroup.GET("", taskHandler.ListTasks)
	taskGroup.POST("", taskHandler.CreateTask)
	taskGroup.GET("/:id", taskHandler.GetTask)
	taskGroup.PUT("/:id", taskHandler.UpdateTask)
	taskGroup.POST("/:id/toggle", taskHandler.ToggleTask)
	taskGroup.DELETE("/:id", taskHandler.DeleteTask)

	// Subject routes (authenticated)
	subjectGroup := v1.Group("/subjects", s.authMiddleware(authService))
	subjectGroup.GET("", subjectHandler.ListSubjects)
	subjectGroup.POST("", subjectHandler.AddSubject)
	subjectGroup.DELETE("/:label", subjectHandler.RemoveSubject)

	// Study app routes (authenticated)
	appGroup := v1.Group("/apps", s.authMiddleware(authService))
	appGroup.GET("", studyAppHandler.ListApps)
	appGroup.POST("", studyAppHandler.AddApp)
	appGroup.DELETE("/:id", studyAppHandler.RemoveApp)

	// Timer routes (authenticated)
	timerGroup := v1.Group("/timer", s.authMiddleware(authService))
	timerGroup.GET("", timerHandler.TimerState)
	timerGroup.POST("/start", timerHandler.StartTimer)
	timerGroup.POST("/pause", timerHandler.PauseTimer)
	timerGroup.POST("/resume", timerHandler.ResumeTimer)
	timerGroup.POST("/stop", timerHandler.StopTimer)

	// Stats routes (authenticated)
	statsGroup := v1.Group("/stats", s.authMiddleware(authService))
	statsGroup.GET("", statsHandler.GetStats)
	statsGroup.GET("/subjects", statsHandler.GetSubjectStats)
	statsGroup.GET("/activity", statsHandler.GetActivity)
	statsGroup.GET("/insights", statsHandler.GetInsights)
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

// authMiddleware validates session tokens
func (s *Server) authMiddleware(authService *services.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			token := parts[1]

			claims, err := authService.ValidateToken(token)
			if err != nil {
				s.logger.Warn("Invalid token", "error", err, "ip", c.RealIP())
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			// Set user information in context
			c.Set("user", claims.UserID)
			c.Set("username", claims.Username)

			return next(c)
		}
	}
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

	if err := s.store.HealthCheck(c.Request().Context()); err != nil {
		status = "error"
		checks["storage"] = map[string]interface{}{
			"status": "error",
			"error":  err.Error(),
		}
	} else {
		checks["storage"] = map[string]interface{}{
			"status":  "ok",
			"backend": s.store.Backend(),
		}
	}

	response := map[string]interface{}{
		"status": status,
		"time":   time.Now().UTC().Format(time.RFC3339),
		"checks": checks,
		"version": map[string]string{
			"app": s.config.App.Version,
			"go":  "1.21",
		},
	}

	if status == "ok" {
		return c.JSON(http.StatusOK, response)
	}
	return c.JSON(http.StatusServiceUnavailable, response)
}

func (s *Server) readinessCheck(c echo.Context) error {
	if err := s.store.HealthCheck(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "not_ready",
			"reason": "storage_not_ready",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the HTTP server
func (s *Server) Start(address string) error {
	s.logger.Info("Starting server", "address", address)
	return s.echo.Start(address)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	s.timers.Close()
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
		} else if e, ok := err.(*validator.ValidationErrors); ok {
			code = http.StatusBadRequest
			msg = map[string]string{"message": "validation failed", "details": e.Error()}
		} else {
			msg = map[string]string{"message": http.StatusText(code)}
		}

		if code == http.StatusInternalServerError {
			logger.Error("Internal server error", "error", err, "path", c.Request().URL.Path)
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
