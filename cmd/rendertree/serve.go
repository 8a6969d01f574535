package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rendertree-dev/rendertree/internal/config"
	ierrors "github.com/rendertree-dev/rendertree/internal/errors"
	"github.com/rendertree-dev/rendertree/pkg/inspect"
)

func serveCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve <snapshot-file>",
		Short: "Serve the browser inspector for a snapshot",
		Long: `Start the inspector HTTP server for a snapshot file.

The page re-renders automatically when the file changes, so a process that
periodically re-exports its frames gets a live view.

Endpoints:
  /            tree outline
  /api/frames  raw frames as JSON
  /metrics     Prometheus metrics
  /ws          reload notifications

Examples:
  rendertree serve snap.rtf
  rendertree serve --port=9000 snap.rtf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(args[0], host, port)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from rendertree.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from rendertree.json)")

	return cmd
}

func runServe(path, host string, port int) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return ierrors.FromError(err, "E060")
	}
	if port > 0 {
		cfg.Serve.Port = port
	}
	if host != "" {
		cfg.Serve.Host = host
	}
	logger := setupLogger(cfg)

	if _, err := os.Stat(path); err != nil {
		return ierrors.FromError(err, "E041")
	}

	server := inspect.NewServer(inspect.FileProvider(path), inspect.Config{
		Logger:        logger,
		WatchPath:     path,
		WatchInterval: time.Duration(cfg.Serve.WatchIntervalMs) * time.Millisecond,
	})
	defer server.Close()

	addr := fmt.Sprintf("%s:%d", cfg.Serve.Host, cfg.Serve.Port)
	info("inspector listening on http://%s", addr)
	logger.Info("inspector starting", "addr", addr, "snapshot", path)

	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		return ierrors.FromError(err, "E040").
			WithSuggestion("Pass --port to pick a free port")
	}
	return nil
}
