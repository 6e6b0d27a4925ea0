/*
main.go - Application entry point

PURPOSE:
  Starts the pay-per-second earnings display: loads configuration and
  settings, runs the one-second monitor and serves the reading over HTTP.
  Handles dependency injection and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags, load .env + PPS_* environment
  2. Build the logger
  3. Read the settings file (warnings are logged, not fatal)
  4. Create the monitor and its sinks (WebSocket hub, optional console)
  5. Register the midnight rate recomputation
  6. Start the HTTP server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (overrides PPS_PORT)
  -settings  Settings JSON path (overrides PPS_SETTINGS_PATH)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the scheduler and the monitor
  4. Exit

EXAMPLES:
  # Defaults: salary 0, display reads 💰0.0000
  ./server

  # Settings file, reading drawn on the terminal
  PPS_CONSOLE=true ./server -settings=./settings.json

  # Different zone for the work window
  PPS_LOCATION=Europe/Paris ./server -port=3000

SEE ALSO:
  - config/config.go: Environment variables
  - api/server.go: Router configuration
  - host/monitor.go: Tick loop
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/pay-per-second/api"
	"github.com/warp/pay-per-second/config"
	"github.com/warp/pay-per-second/factory"
	"github.com/warp/pay-per-second/generic"
	"github.com/warp/pay-per-second/host"
	"github.com/warp/pay-per-second/logger"
)

func main() {
	// Flags
	port := flag.Int("port", 0, "HTTP server port (overrides PPS_PORT)")
	settingsPath := flag.String("settings", "", "Settings JSON path (overrides PPS_SETTINGS_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Port = *port
	}
	if *settingsPath != "" {
		cfg.SettingsPath = *settingsPath
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	logger.SetGlobalLogger(log)

	loc, err := cfg.LoadLocation()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve location")
	}

	// Settings
	settings := factory.NewSettingsFactory()
	res, err := settings.ReadSettingsFile(cfg.SettingsPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.SettingsPath).Msg("Failed to load settings")
	}
	for _, warning := range res.Warnings {
		log.Warn().Str("warning", warning).Msg("Settings downgraded")
	}

	// Monitor and sinks
	monitor := host.NewMonitor(host.Options{
		Config:   res.Config,
		Clock:    generic.SystemClock{Location: loc},
		Interval: cfg.TickInterval,
		Logger:   log,
	})
	hub := api.NewHub(log)
	monitor.AddSink(hub)
	if cfg.Console {
		monitor.AddSink(host.NewConsoleSink(os.Stdout))
	}

	scheduler := host.NewScheduler(log, loc)
	if err := scheduler.AddJob(host.DailySchedule, host.RecomputeJob{Monitor: monitor}); err != nil {
		log.Fatal().Err(err).Msg("Failed to register rate recomputation")
	}

	handler := api.NewHandler(monitor, settings, hub, log)
	router := api.NewRouter(handler)

	// No WriteTimeout: /api/stream connections stay open.
	server := &http.Server{
		Addr:        fmt.Sprintf(":%d", cfg.Port),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	monitor.Start()
	scheduler.Start()

	// Start server in goroutine
	go func() {
		log.Info().
			Int("port", cfg.Port).
			Str("location", loc.String()).
			Msgf("Server starting on http://localhost:%d", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	scheduler.Stop()
	monitor.Stop()

	log.Info().Msg("Server stopped")
}
