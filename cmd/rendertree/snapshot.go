package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rendertree-dev/rendertree/internal/config"
	ierrors "github.com/rendertree-dev/rendertree/internal/errors"
	"github.com/rendertree-dev/rendertree/pkg/protocol"
	"github.com/rendertree-dev/rendertree/pkg/snapshot"
)

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage stored snapshots",
		Long: `Push, pull, and list snapshots in the configured store.

The store backend (local directory or S3) comes from rendertree.json.`,
	}

	cmd.AddCommand(
		snapshotPushCmd(),
		snapshotPullCmd(),
		snapshotListCmd(),
	)

	return cmd
}

func snapshotPushCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "push <snapshot-file>",
		Short: "Upload a snapshot to the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotPush(cmd, args[0], id)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Snapshot ID (default: a fresh UUID)")

	return cmd
}

func runSnapshotPush(cmd *cobra.Command, path, id string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return ierrors.FromError(err, "E060")
	}
	setupLogger(cfg)

	data, err := os.ReadFile(path)
	if err != nil {
		return ierrors.FromError(err, "E080")
	}
	// Validate before uploading; a store full of junk helps no one.
	if _, err := protocol.DecodeSnapshot(data); err != nil {
		return ierrors.FromError(err, "E022")
	}

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	if id == "" {
		id = snapshot.NewID()
	}
	if err := store.Put(ctx, id, data); err != nil {
		return ierrors.FromError(err, "E002")
	}

	success("pushed %s (%d bytes) as %s", path, len(data), id)
	return nil
}

func snapshotPullCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "pull <id>",
		Short: "Download a snapshot from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotPull(cmd, args[0], out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (default: <id>.rtf)")

	return cmd
}

func runSnapshotPull(cmd *cobra.Command, id, out string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return ierrors.FromError(err, "E060")
	}
	setupLogger(cfg)

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	data, err := store.Get(ctx, id)
	if errors.Is(err, snapshot.ErrNotFound) {
		return ierrors.New("E001").WithDetail(fmt.Sprintf("no snapshot %q in the store", id))
	}
	if err != nil {
		return ierrors.FromError(err, "E002")
	}

	if out == "" {
		out = id + ".rtf"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return ierrors.FromError(err, "E081")
	}

	success("pulled %s (%d bytes) to %s", id, len(data), out)
	return nil
}

func snapshotListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List snapshots in the store",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotList(cmd)
		},
	}

	return cmd
}

func runSnapshotList(cmd *cobra.Command) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return ierrors.FromError(err, "E060")
	}
	setupLogger(cfg)

	ctx := cmd.Context()
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	infos, err := store.List(ctx)
	if err != nil {
		return ierrors.FromError(err, "E002")
	}
	if len(infos) == 0 {
		info("no snapshots stored")
		return nil
	}

	for _, si := range infos {
		fmt.Printf("%-40s %10d  %s\n", si.ID, si.Size, si.ModTime.Format("2006-01-02 15:04:05"))
	}
	return nil
}
