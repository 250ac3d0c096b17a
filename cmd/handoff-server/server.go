package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/sbarcore/handoff/internal/config"
	"github.com/sbarcore/handoff/internal/domain/assessment"
	"github.com/sbarcore/handoff/internal/domain/device"
	"github.com/sbarcore/handoff/internal/domain/handoff"
	"github.com/sbarcore/handoff/internal/domain/medication"
	"github.com/sbarcore/handoff/internal/domain/patient"
	"github.com/sbarcore/handoff/internal/domain/sbar"
	"github.com/sbarcore/handoff/internal/domain/shift"
	"github.com/sbarcore/handoff/internal/platform/auth"
	"github.com/sbarcore/handoff/internal/platform/db"
	"github.com/sbarcore/handoff/internal/platform/metrics"
	"github.com/sbarcore/handoff/internal/platform/middleware"
	"github.com/sbarcore/handoff/internal/platform/registry"
)

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolOptions{
		MaxConns:          cfg.DBMaxConns,
		MinConns:          cfg.DBMinConns,
		MaxConnIdleTime:   5 * time.Minute,
		HealthCheckPeriod: time.Minute,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	collector := metrics.NewCollector()
	collector.WatchPool(pool)

	e := newServer(cfg, logger, pool, collector)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer wires middleware, services and routes. The pool is only touched
// when a request reaches a repository.
func newServer(cfg *config.Config, logger zerolog.Logger, pool *pgxpool.Pool, collector *metrics.Collector) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.HTTPErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.Metrics(collector))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.Sanitize(logger))
	e.Use(echomw.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/health/db", db.HealthHandler(pool))
	e.GET("/metrics", echo.WrapHandler(collector.Handler()))

	apiV1 := e.Group("/api/v1")
	if cfg.IsDev() {
		apiV1.Use(auth.DevAuthMiddleware(jwtConfig(cfg)))
	} else {
		apiV1.Use(auth.JWTMiddleware(jwtConfig(cfg)))
	}
	apiV1.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	apiV1.Use(middleware.Audit(logger))

	tx := db.NewTransactor(pool)

	patientSvc := patient.NewService(patient.NewRepoPG(pool), tx)
	shiftSvc := shift.NewService(shift.NewRepoPG(pool), tx)
	deviceSvc := device.NewService(device.NewRepoPG(pool), patientSvc, tx)
	medicationSvc := medication.NewService(medication.NewRepoPG(pool), patientSvc, tx)
	assessmentSvc := assessment.NewService(assessment.NewRepoPG(pool), patientSvc, tx)
	sbarSvc := sbar.NewService(sbar.NewRepoPG(pool), patientSvc, shiftSvc, tx)
	handoffSvc := handoff.NewService(patientSvc, deviceSvc, medicationSvc, assessmentSvc, sbarSvc)

	reg := newRegistry()

	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)
	shift.NewHandler(shiftSvc).RegisterRoutes(apiV1)
	device.NewHandler(deviceSvc).RegisterRoutes(apiV1)
	medication.NewHandler(medicationSvc).RegisterRoutes(apiV1)
	assessment.NewHandler(assessmentSvc).RegisterRoutes(apiV1)
	sbar.NewHandler(sbarSvc).RegisterRoutes(apiV1)
	handoff.NewHandler(handoffSvc).RegisterRoutes(apiV1)
	reg.RegisterRoutes(apiV1.Group("", auth.RequireRole(auth.ReadRoles...)))

	return e
}

func newRegistry() *registry.Registry {
	reg := registry.New()
	reg.Register(patient.Descriptor())
	reg.Register(shift.Descriptor())
	reg.Register(device.Descriptor())
	reg.Register(medication.Descriptor())
	reg.Register(assessment.Descriptor())
	reg.Register(sbar.Descriptor())
	return reg
}
