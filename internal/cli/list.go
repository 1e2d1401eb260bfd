package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silence-breaker/vtbench/internal/bench"
)

// BenchInfo describes one registered bench for list output.
type BenchInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered testbenches",
		Long: `List every registered testbench with its description.

Examples:
  vtbench list
  vtbench list --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			infos := make([]BenchInfo, 0)
			for _, b := range bench.All() {
				infos = append(infos, BenchInfo{Name: b.Name, Description: b.Description})
			}

			if rootOpts.Format == "json" {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(CLIResponse{Status: "ok", Data: infos})
			}

			for _, info := range infos {
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %s\n", info.Name, info.Description)
			}
			return nil
		},
	}
}
