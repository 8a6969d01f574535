package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/rendertree-dev/rendertree/internal/config"
	ierrors "github.com/rendertree-dev/rendertree/internal/errors"
	"github.com/rendertree-dev/rendertree/pkg/snapshot"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rendertree",
		Short: "Inspect and manage render-tree frame snapshots",
		Long: `rendertree works with binary frame snapshots exported from the
render-tree builder.

  • Dump a snapshot as a readable tree outline
  • Serve a live browser inspector with reload-on-change
  • Push, pull, and list snapshots in a local or S3 store`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		dumpCmd(),
		serveCmd(),
		snapshotCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		ierrors.PrintError(err)
		os.Exit(1)
	}
}

// setupLogger configures the default slog logger from config.
func setupLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// openStore builds the snapshot store selected by config.
func openStore(ctx context.Context, cfg *config.Config) (snapshot.Store, error) {
	switch cfg.Store.Backend {
	case "dir":
		store, err := snapshot.NewDirStore(cfg.Store.Dir)
		if err != nil {
			return nil, ierrors.FromError(err, "E002")
		}
		return store, nil
	case "s3":
		if cfg.Store.Bucket == "" {
			return nil, ierrors.New("E062")
		}
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Store.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Store.Region))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, ierrors.FromError(err, "E002")
		}
		return snapshot.NewS3Store(s3.NewFromConfig(awsCfg), cfg.Store.Bucket, cfg.Store.Prefix), nil
	default:
		return nil, ierrors.New("E060").WithDetail(fmt.Sprintf("unknown store backend %q", cfg.Store.Backend))
	}
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}
