package httpserver

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hirewire/hirewire/internal/metrics"
)

func (s *Server) registerRoutes() {
	s.echo.Use(correlationMiddleware)
	s.echo.Use(s.setupRequestLoggerMiddleware())
	s.echo.Use(middleware.Recover())
	s.echo.Use(ErrorHandlingMiddleware())
	s.echo.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         63072000, // 2 years; only sent over HTTPS
		HSTSPreloadEnabled: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	s.echo.Use(metricsMiddleware())
	s.echo.Use(s.sessionGuard)

	s.registerHealthRoutes()
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.echo.Group("/api", newRateLimiter(s.config.APIRatePerSecond, s.config.APIRateBurst))

	api.GET("/session", s.handleSession)

	api.POST("/applications", s.handleApply)
	api.GET("/applications/mine", s.handleMyApplications)
	api.GET("/applications/job/:jobID", s.handleApplicationsForJob)
	api.GET("/applications/:id", s.handleGetApplication)
	api.GET("/applications/:id/resume", s.handleResumeURL)
	api.PATCH("/applications/:id/status", s.handleTransition)
	api.DELETE("/applications/:id/withdraw", s.handleWithdraw)

	api.PUT("/seekers/resume", s.handleSaveProfileResume)

	api.GET("/saved-jobs", s.handleSavedJobs)
	api.POST("/saved-jobs/:jobID", s.handleSaveJob)
	api.DELETE("/saved-jobs/:jobID", s.handleUnsaveJob)
	api.GET("/saved-jobs/:jobID/check", s.handleIsJobSaved)

	api.POST("/companies", s.handleCreateCompany)
	api.GET("/companies/mine", s.handleMyCompany)
	api.GET("/companies/:id", s.handleGetCompany)
	api.PUT("/companies/:id", s.handleUpdateCompany)

	api.POST("/jobs", s.handleCreateJob)
	api.GET("/jobs/:id", s.handleGetJob)
	api.PUT("/jobs/:id", s.handleUpdateJob)
	api.DELETE("/jobs/:id", s.handleDeleteJob)
}

func (s *Server) setupRequestLoggerMiddleware() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
			}
			slog.Info("Request", attrs...)
			return nil
		},
	})
}

func metricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			// c.Path() is the route template, keeping label cardinality bounded.
			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			method := c.Request().Method
			metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Response().Status)).Inc()
			metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
