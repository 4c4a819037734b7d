package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archlint/archlint/internal/adapters/outbound/collector"
	"github.com/archlint/archlint/internal/adapters/outbound/config"
	"github.com/archlint/archlint/internal/adapters/outbound/gitinfo"
	historyAdapter "github.com/archlint/archlint/internal/adapters/outbound/history"
	"github.com/archlint/archlint/internal/adapters/outbound/tui"
	"github.com/archlint/archlint/internal/application"
)

func newCheckCmd() *cobra.Command {
	var (
		path       string
		jsonOutput bool
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the architecture rule battery",
		Long:  "Run every architecture rule against the project's source tree. Exits nonzero when any rule fails; a rule reporting violations is the tool working, not a tool error.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := application.NewRunService(
				collector.New(),
				config.New(),
				gitinfo.New(),
			)

			report, err := svc.Run(cmd.Context(), path)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			} else {
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderRunReport(report))
			}

			if !noHistory {
				// Best effort: an unwritable history file must not flip the verdict.
				_ = historyAdapter.New().Append(report.Root, report.Summary())
			}

			if !report.Ok() {
				return fmt.Errorf("%d of %d rules failed", report.Tally.Failed, report.Tally.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "Project path to check")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the report as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record this run in .archlint/history.json")

	return cmd
}
