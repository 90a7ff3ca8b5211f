package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ancare/ancare/internal/config"
	"github.com/ancare/ancare/internal/domain/anc"
	"github.com/ancare/ancare/internal/domain/delivery"
	"github.com/ancare/ancare/internal/domain/kpi"
	"github.com/ancare/ancare/internal/domain/staff"
	"github.com/ancare/ancare/internal/platform/auth"
	"github.com/ancare/ancare/internal/platform/middleware"
	"github.com/ancare/ancare/internal/platform/seed"
	"github.com/ancare/ancare/internal/platform/store"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "anc-server",
		Short: "Antenatal clinic records API server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	// Shared in-memory store plumbing
	alloc := store.NewAllocator()
	bus := store.NewBus()
	bus.Subscribe(store.ListenerFunc(func(ev store.Event) {
		logger.Debug().
			Str("collection", ev.Collection).
			Str("action", string(ev.Action)).
			Str("entity_id", string(ev.ID)).
			Msg("store change")
	}))

	// Domain services
	patients := anc.NewService(anc.NewMemRepository(alloc, bus))
	roster := staff.NewService(
		staff.NewMemDoctorRepository(alloc, bus),
		staff.NewMemNurseRepository(alloc, bus),
	)
	deliveryRepo := delivery.NewMemRepository(alloc, bus)
	deliveries := delivery.NewService(deliveryRepo)
	linker := delivery.NewLinker(
		delivery.RegistryDirectory(patients),
		deliveryRepo,
		time.Duration(cfg.LinkerTTLMinutes)*time.Minute,
	)
	dashboard := kpi.NewService(patients, roster, deliveries)

	// Demo data
	if cfg.SeedDemoData {
		seedCfg := seed.DefaultConfig()
		seedCfg.Patients = cfg.SeedPatients
		seedCfg.Doctors = cfg.SeedDoctors
		seedCfg.Nurses = cfg.SeedNurses
		seedCfg.Deliveries = cfg.SeedDeliveries
		if _, err := seed.NewSeeder(patients, roster, linker).Run(seedCfg); err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Session gate
	sessions := auth.NewSessions(
		cfg.SessionSecret,
		time.Duration(cfg.SessionTTLMinutes)*time.Minute,
		cfg.AdminUser,
		cfg.AdminPassword,
	)

	// Unauthenticated surface: health check and login
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	auth.NewHandler(sessions).RegisterRoutes(e.Group(""))

	// Authenticated API
	apiV1 := e.Group("/api/v1", sessions.RequireSession())

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	anc.NewHandler(patients).RegisterRoutes(apiV1)
	staff.NewHandler(roster).RegisterRoutes(apiV1)
	delivery.NewHandler(deliveries, linker).RegisterRoutes(apiV1)
	kpi.NewHandler(dashboard).RegisterRoutes(apiV1)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
