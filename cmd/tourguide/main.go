package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"tourguide.openclassrooms.org/internal/app"
	"tourguide.openclassrooms.org/internal/config"
	"tourguide.openclassrooms.org/internal/report"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "1.0.0"

func main() {
	var (
		port       = flag.Int("port", 4000, "API server port")
		env        = flag.String("env", "development", "Environment (development|staging|production)")
		configFile = flag.String("config-file", "", "Path to a local YAML configuration file")
		configURL  = flag.String("config-url", "", "URL to a remote YAML configuration file")
	)
	flag.Parse()

	if err := config.ValidateConfigFlags(configFile, configURL); err != nil {
		fmt.Println("Error:", err)
		flag.Usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	client := app.NewPooledClient()

	cfg := config.NewConfig(*port, *env)
	if err := loadConfig(cfg, client, *configFile, *configURL); err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		cfg.SentryDSN = dsn
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if err := report.SetupSentry(cfg.SentryDSN, cfg.Env, version); err != nil {
		logger.Warn("Sentry disabled", "error", err)
	}
	defer report.FlushSentry()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, logger, client, version)
	registerBuildInfo(cfg.Env)
	go warmCatalog(ctx, application)
	application.Service.Tracker.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      application.Routes(ctx),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", srv.Addr, "env", cfg.Env, "version", version)
		serverErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			report.ReportError(err, sentry.LevelFatal)
			logger.Error("server stopped", "error", err)
			application.Service.Stop()
			report.FlushSentry()
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutting down", "signal", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	application.Service.Stop()
	logger.Info("server stopped")
}

// loadConfig applies the file or remote configuration, if any, on top of the
// defaults already in cfg.
func loadConfig(cfg *config.Config, client *http.Client, configFile, configURL string) error {
	switch {
	case configFile != "":
		return config.LoadConfigFromFile(configFile, cfg)
	case configURL != "":
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		return config.LoadConfigFromURL(ctx, client, configURL,
			os.Getenv("CONFIG_AUTH_USER"), os.Getenv("CONFIG_AUTH_PASS"), cfg.MaxRetries, cfg)
	}
	return nil
}
