package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/archlint/archlint/internal/adapters/outbound/collector"
	"github.com/archlint/archlint/internal/adapters/outbound/config"
	"github.com/archlint/archlint/internal/adapters/outbound/tui"
	"github.com/archlint/archlint/internal/domain/rules"
)

func newRulesCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rule battery in execution order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := config.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			srcRoot := filepath.Join(absPath, filepath.FromSlash(cfg.SourceRoot))
			battery := rules.Build(srcRoot, cfg, collector.New())

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRuleList(battery))
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path whose config determines the battery")

	return cmd
}
