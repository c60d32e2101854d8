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

	"github.com/onehealth/webadmin-api/internal/config"
	"github.com/onehealth/webadmin-api/internal/domain/appointment"
	"github.com/onehealth/webadmin-api/internal/domain/auth"
	"github.com/onehealth/webadmin-api/internal/domain/cashier"
	"github.com/onehealth/webadmin-api/internal/domain/dashboard"
	"github.com/onehealth/webadmin-api/internal/domain/debit"
	"github.com/onehealth/webadmin-api/internal/domain/examreport"
	"github.com/onehealth/webadmin-api/internal/domain/invoice"
	"github.com/onehealth/webadmin-api/internal/domain/notification"
	"github.com/onehealth/webadmin-api/internal/domain/otp"
	"github.com/onehealth/webadmin-api/internal/platform/middleware"
	"github.com/onehealth/webadmin-api/internal/platform/proxy"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "webadmin-server",
		Short: "Hospital admin console API server",
	}

	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the admin console API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.Audit(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "oh_token", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// API group
	api := e.Group("/api")
	api.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})

	// Upstream dispatcher shared by all proxied resource families
	dispatcher := proxy.NewDispatcher(cfg.BackendBaseURL)
	logger.Info().Str("backend", cfg.BackendBaseURL).Msg("proxying admin requests")

	// Proxied resource families
	auth.NewHandler(dispatcher, logger).RegisterRoutes(api)
	invoice.NewHandler(dispatcher, logger).RegisterRoutes(api)
	cashier.NewHandler(dispatcher, logger).RegisterRoutes(api)
	debit.NewHandler(dispatcher, logger).RegisterRoutes(api)
	dashboard.NewHandler(dispatcher, logger).RegisterRoutes(api)
	otp.NewHandler(dispatcher, logger).RegisterRoutes(api)
	examreport.NewHandler(dispatcher, logger).RegisterRoutes(api)
	appointment.NewHandler(dispatcher, logger).RegisterRoutes(api)

	// Locally owned notification feed
	store := notification.NewStore(cfg.NotificationFile)
	notification.NewHandler(store, logger).RegisterRoutes(api)

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
