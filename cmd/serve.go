package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/linkdock/linkdock/config"
	"github.com/linkdock/linkdock/finder"
	"github.com/linkdock/linkdock/host/hosttest"
	"github.com/linkdock/linkdock/logger"
	"github.com/linkdock/linkdock/panel"
	"github.com/linkdock/linkdock/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the linkdock daemon",
	Long: `Start the daemon that backs the design tool plugin.

The daemon exposes one HTTP listener:
  - GET  /ws/panel   websocket for the chat panel iframe
  - GET  /ws/host    websocket for the plugin shim in the design tool
  - POST /send       one-shot intent submission (used by 'linkdock send')
  - GET  /healthz    liveness probe
  - GET  /metrics    Prometheus metrics

Examples:
  linkdock serve                  # Listen on the configured address
  linkdock serve --addr :9000     # Override the listen address
  linkdock serve --fake-host      # Attach an in-memory editor for demos`,
	RunE: runServe,
}

var (
	serveAddr     string
	serveFakeHost bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	serveCmd.Flags().BoolVar(&serveFakeHost, "fake-host", false, "Attach an in-memory editor so intents work without the plugin")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	f, err := buildFinder(cfg)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	manager := session.NewManager(f, cfg.Finder.MaxResults, time.Duration(cfg.Session.IdleTimeout)*time.Second)
	if err := manager.StartSweeper(cfg.Session.SweepExpr); err != nil {
		return fmt.Errorf("failed to start session sweeper: %w", err)
	}

	if serveFakeHost {
		id := uuid.NewString()
		manager.Ensure(id).AttachHost(hosttest.New(), nil)
		logger.Info("fake host attached", "session", id)
		fmt.Println("Fake host session:", id)
	}

	server := panel.NewServer(addr, manager, time.Duration(cfg.Session.CallTimeout)*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutdown signal received")
		cancel()
	}()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	logger.Info("linkdock service started", "addr", addr, "finder", cfg.Finder.Provider)
	fmt.Println("linkdock is running. Press Ctrl+C to stop.")

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			manager.StopSweeper()
			return fmt.Errorf("server error: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error stopping server", "err", err)
	}
	manager.StopSweeper()
	manager.CloseAll()

	logger.Info("linkdock service stopped")
	return nil
}

func buildFinder(cfg *config.Config) (finder.Finder, error) {
	f, err := finder.New(cfg.Finder.Provider, finder.Options{
		Model:   cfg.Finder.Model,
		APIKey:  cfg.Finder.APIKey,
		APIBase: cfg.Finder.APIBase,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s finder: %w", cfg.Finder.Provider, err)
	}
	return f, nil
}
