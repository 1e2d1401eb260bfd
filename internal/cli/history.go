package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/silence-breaker/vtbench/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Database string
	Bench    string
	RunID    string
	Limit    int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded run history",
		Long: `Show runs previously recorded with 'run --db', most recent first.
With --run, show the mismatches stored for that single run instead.

Examples:
  vtbench history --db ./runs.db
  vtbench history --db ./runs.db --bench ten_timer --limit 5
  vtbench history --db ./runs.db --run 3f1c...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database recorded with 'run --db' (required)")
	cmd.Flags().StringVar(&opts.Bench, "bench", "", "show only runs of this bench")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show the mismatches of this run")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to show")
	cmd.MarkFlagRequired("db")

	return cmd
}

func showHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := context.Background()
	if opts.RunID != "" {
		return showRunMismatches(ctx, opts, st, cmd)
	}
	return showRuns(ctx, opts, st, cmd)
}

func showRuns(ctx context.Context, opts *HistoryOptions, st *store.Store, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	runs, err := st.ListRuns(ctx, opts.Bench, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}
	for _, r := range runs {
		mark := "✓"
		if !r.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s  %-18s %s  %d vectors, %d mismatches\n",
			mark, r.ID, r.Bench, r.StartedAt.Local().Format(time.RFC3339), r.Vectors, r.Mismatches)
	}
	return nil
}

func showRunMismatches(ctx context.Context, opts *HistoryOptions, st *store.Store, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	mismatches, err := st.RunMismatches(ctx, opts.RunID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load mismatches", err)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: mismatches})
	}

	if len(mismatches) == 0 {
		fmt.Fprintf(w, "No mismatches recorded for run %s\n", opts.RunID)
		return nil
	}
	for _, m := range mismatches {
		fmt.Fprintln(w, m.String())
	}
	return nil
}
