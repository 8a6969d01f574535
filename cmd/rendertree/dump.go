package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ierrors "github.com/rendertree-dev/rendertree/internal/errors"
	"github.com/rendertree-dev/rendertree/pkg/inspect"
	"github.com/rendertree-dev/rendertree/pkg/protocol"
)

func dumpCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "dump <snapshot-file>",
		Short: "Print a snapshot as a tree outline",
		Long: `Decode a snapshot file and print the frame tree it encodes.

Examples:
  rendertree dump snap.rtf
  rendertree dump --json snap.rtf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print raw frames as JSON instead of an outline")

	return cmd
}

func runDump(path string, asJSON bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ierrors.FromError(err, "E080")
	}

	frames, err := protocol.DecodeSnapshot(data)
	if err != nil {
		return ierrors.FromError(err, "E022").
			WithSuggestion("Re-export the snapshot; the file may be truncated or from a newer version")
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(frames)
	}

	tree, err := inspect.BuildTree(frames)
	if err != nil {
		return ierrors.FromError(err, "E022")
	}
	fmt.Print(inspect.RenderText(tree))
	return nil
}
