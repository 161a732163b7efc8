package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"dreamcodec/internal/queue"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "add <file>...",
		Short: "Add media files to the conversion queue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := make([]string, 0, len(args))
			for _, arg := range args {
				abs, err := filepath.Abs(strings.TrimSpace(arg))
				if err != nil {
					return fmt.Errorf("resolve path %q: %w", arg, err)
				}
				paths = append(paths, abs)
			}

			return ctx.withStore(func(store *queue.Store) error {
				added, skipped, err := store.Enqueue(cmd.Context(), paths)
				if err != nil {
					return err
				}

				if ctx.jsonOutput() {
					return writeJSON(cmd, map[string]int{"added": added, "skipped": skipped})
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Added %d file(s) to the queue\n", added)
				if skipped > 0 {
					fmt.Fprintf(out, "Skipped %d file(s) (unsupported format or already queued)\n", skipped)
				}
				return nil
			})
		},
	}
}
