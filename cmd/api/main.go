package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"casevault/internal/app"
	"casevault/internal/config"
	handlers "casevault/internal/http/handler"
	"casevault/internal/http/middleware"
	"casevault/internal/logging"
	"casevault/internal/otel"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		logger.Fatal().Str("event", "tracing_init_failed").Err(err).Msg("")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a, err := app.New(ctx, cfg, logger, reg)
	if err != nil {
		logger.Fatal().Str("event", "startup_failed").Err(err).Msg("")
	}
	defer a.Close()

	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Fatal().Str("event", "startup_failed").Err(err).Msg("")
	}

	srv := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
	})

	srv.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	srv.Use(middleware.RequestID())
	srv.Use(middleware.Logger(logger))
	srv.Use(promMiddleware.Handler())

	srv.Get("/metrics", adaptor.HTTPHandler(otelhttp.NewHandler(
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		"metrics",
	)))

	handlers.RegisterRoutes(srv, a.Store, a.Service)

	go func() {
		<-ctx.Done()
		if err := srv.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error().Str("event", "shutdown_failed").Err(err).Msg("")
		}
	}()

	addr := ":" + cfg.Port
	logger.Info().
		Str("event", "server_starting").
		Str("addr", addr).
		Str("app_host", cfg.AppHost).
		Str("store_backend", cfg.Store.Backend).
		Msg("")

	if err := srv.Listen(addr); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Str("event", "server_failed").Err(err).Msg("")
		return
	}
	logger.Info().Str("event", "server_stopped").Msg("")
}
