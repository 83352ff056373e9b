package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/mergington/activities/internal/activities"
	"github.com/mergington/activities/internal/api"
	"github.com/mergington/activities/internal/cache"
	"github.com/mergington/activities/internal/config"
	"github.com/mergington/activities/internal/events"
	"github.com/mergington/activities/internal/log"
	"github.com/mergington/activities/internal/seed"
	"github.com/mergington/activities/internal/tracing"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the activity signup server",
	Long: `Run the HTTP server that exposes the activity registry.

The server seeds the registry with the bundled Mergington High School
activities (or the file named by seed.file) and serves REST endpoints
for listing activities and signing up, plus a signup event stream.

Example:
  activities serve                 # Listen on localhost:8000
  activities serve --addr :8080    # Listen on port 8080
  activities serve --addr :0       # Pick a free port`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cleanup, err := log.Init(log.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.File,
	})
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	defer cleanup()

	svc, broker, err := buildService(cfg)
	if err != nil {
		return err
	}
	defer broker.Close()

	provider, err := buildTracingProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}

	// Determine listen address
	// Priority: --addr flag > config server section
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr()
	}

	// A nil tracer keeps the tracing middleware out of the request path
	var tracer trace.Tracer
	if provider.Enabled() {
		tracer = provider.Tracer()
	}

	server, err := api.NewServer(api.ServerConfig{
		Addr:          addr,
		Service:       svc,
		Tracer:        tracer,
		EnableMetrics: cfg.Metrics.Enabled,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Start server in background
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("Activities server started on port %d\n", server.Port())
	fmt.Println("Press Ctrl+C to stop")

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		fmt.Printf("\nReceived %s, shutting down...\n", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.ErrorErr(log.CatHTTP, "Error stopping API server", err)
	}

	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.ErrorErr(log.CatTrace, "Error shutting down tracing", err)
	}

	fmt.Println("Server stopped")
	return nil
}

// buildService assembles the seeded registry, event broker, and snapshot cache.
func buildService(cfg config.Config) (activities.Service, *events.Broker, error) {
	acts, err := loadSeed(cfg.Seed)
	if err != nil {
		return nil, nil, err
	}

	registry := activities.NewInMemoryRegistry()
	for _, act := range acts {
		if err := registry.Put(act); err != nil {
			return nil, nil, fmt.Errorf("seeding registry: %w", err)
		}
	}

	broker := events.NewBroker()

	svcCfg := activities.ServiceConfig{
		Registry: registry,
		Events:   broker,
	}
	if cfg.Cache.Enabled {
		svcCfg.Snapshots = cache.NewInMemory[string, []*activities.Activity](cfg.Cache.TTL, cache.DefaultCleanupInterval)
		svcCfg.SnapshotTTL = cfg.Cache.TTL
	}

	svc, err := activities.NewService(svcCfg)
	if err != nil {
		broker.Close()
		return nil, nil, fmt.Errorf("creating service: %w", err)
	}

	log.Info(log.CatSeed, "Registry seeded", "activities", len(acts))
	return svc, broker, nil
}

// loadSeed reads the configured seed file, or the bundled reference data
// when none is configured.
func loadSeed(seedCfg config.SeedConfig) ([]*activities.Activity, error) {
	if seedCfg.File != "" {
		acts, err := seed.LoadFile(seedCfg.File)
		if err != nil {
			return nil, fmt.Errorf("loading seed file: %w", err)
		}
		return acts, nil
	}

	acts, err := seed.Load()
	if err != nil {
		return nil, fmt.Errorf("loading bundled seed data: %w", err)
	}
	return acts, nil
}

// buildTracingProvider maps the config section onto the tracing package,
// filling in the default traces path for the file exporter.
func buildTracingProvider(tc config.TracingConfig) (*tracing.Provider, error) {
	filePath := tc.FilePath
	if tc.Exporter == "file" && filePath == "" {
		filePath = config.DefaultTracesFilePath()
	}

	return tracing.NewProvider(tracing.Config{
		Enabled:      tc.Enabled,
		Exporter:     tc.Exporter,
		FilePath:     filePath,
		OTLPEndpoint: tc.OTLPEndpoint,
		SampleRate:   tc.SampleRate,
	})
}
