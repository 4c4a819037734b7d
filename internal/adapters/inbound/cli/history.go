package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	historyAdapter "github.com/archlint/archlint/internal/adapters/outbound/history"
	"github.com/archlint/archlint/internal/adapters/outbound/tui"
)

func newHistoryCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded check runs for the project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			entries, err := historyAdapter.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderHistory(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path")

	return cmd
}
