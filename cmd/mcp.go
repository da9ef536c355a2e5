package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/linkdock/linkdock/config"
	"github.com/linkdock/linkdock/logger"
	"github.com/linkdock/linkdock/mcpserver"
	"github.com/linkdock/linkdock/panel"
	"github.com/linkdock/linkdock/session"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the daemon with a Model Context Protocol surface on stdio",
	Long: `Run linkdock as an MCP server over stdio.

The regular daemon listener starts alongside, so the plugin attaches over
its usual websockets while an MCP client drives the same sessions through
tools (find_links, copy_selection, insert_placeholder, open_link).

Log output moves to stderr; stdout carries only the MCP wire.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Stdout is the MCP transport from here on.
	logger.Divert(os.Stderr)

	f, err := buildFinder(cfg)
	if err != nil {
		return err
	}

	manager := session.NewManager(f, cfg.Finder.MaxResults, time.Duration(cfg.Session.IdleTimeout)*time.Second)
	if err := manager.StartSweeper(cfg.Session.SweepExpr); err != nil {
		return fmt.Errorf("failed to start session sweeper: %w", err)
	}

	server := panel.NewServer(cfg.Server.Addr, manager, time.Duration(cfg.Session.CallTimeout)*time.Second)
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("server error", "err", err)
		}
	}()
	logger.Info("linkdock mcp started", "addr", cfg.Server.Addr, "finder", cfg.Finder.Provider)

	// Blocks until the MCP client closes stdin.
	mcpErr := mcpserver.NewServer(f, cfg.Finder.MaxResults, manager, version).ServeStdio()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error stopping server", "err", err)
	}
	manager.StopSweeper()
	manager.CloseAll()

	if mcpErr != nil {
		return fmt.Errorf("mcp server error: %w", mcpErr)
	}
	logger.Info("linkdock mcp stopped")
	return nil
}
