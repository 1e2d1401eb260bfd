package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/silence-breaker/vtbench/internal/bench"
	"github.com/silence-breaker/vtbench/internal/harness"
	"github.com/silence-breaker/vtbench/internal/store"
	"github.com/silence-breaker/vtbench/internal/vcd"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	TraceDir string
	Database string
}

// BenchResult holds the outcome of a single bench execution.
type BenchResult struct {
	Name       string   `json:"name"`
	Pass       bool     `json:"pass"`
	Vectors    int      `json:"vectors"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// RunResult holds the overall run outcome.
type RunResult struct {
	Benches []BenchResult `json:"benches"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Total   int           `json:"total"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [bench ...]",
		Short: "Run testbenches",
		Long: `Run the named testbenches, or every registered bench when none are
named. Each bench replays its stimulus vectors against a fresh model and
compares observed outputs against the reference oracle. A mismatch never
aborts the run; every failing vector is reported.

Exit codes:
  0 - All vectors passed
  1 - One or more mismatches
  2 - Command error (unknown bench, unwritable trace dir, etc.)

Examples:
  vtbench run
  vtbench run adder4 ten_timer
  vtbench run --trace-dir ./waves --db ./runs.db
  vtbench run --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenches(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.TraceDir, "trace-dir", "", "write a VCD waveform per bench into this directory")
	cmd.Flags().StringVar(&opts.Database, "db", "", "record run history into this SQLite database")

	return cmd
}

func runBenches(opts *RunOptions, names []string, cmd *cobra.Command) error {
	benches, err := resolveBenches(names)
	if err != nil {
		return err
	}

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()
	}

	if opts.TraceDir != "" {
		if err := os.MkdirAll(opts.TraceDir, 0755); err != nil {
			return WrapExitError(ExitCommandError, "failed to create trace directory", err)
		}
	}

	ctx := context.Background()
	result := RunResult{Benches: make([]BenchResult, 0, len(benches)), Total: len(benches)}

	for _, b := range benches {
		br, err := runBench(ctx, opts, b, st, cmd)
		if err != nil {
			return err
		}
		result.Benches = append(result.Benches, br)
		if br.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputRunJSON(cmd, result)
	}
	return outputRunText(cmd, result)
}

// resolveBenches maps names to registered benches; no names selects all.
func resolveBenches(names []string) ([]bench.Bench, error) {
	if len(names) == 0 {
		return bench.All(), nil
	}
	out := make([]bench.Bench, 0, len(names))
	for _, n := range names {
		b, ok := bench.Lookup(n)
		if !ok {
			known := make([]string, 0)
			for _, kb := range bench.All() {
				known = append(known, kb.Name)
			}
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("unknown bench %q (registered: %v)", n, known))
		}
		out = append(out, b)
	}
	return out, nil
}

// runBench executes one bench, optionally tracing and recording history.
func runBench(ctx context.Context, opts *RunOptions, b bench.Bench, st *store.Store, cmd *cobra.Command) (BenchResult, error) {
	w := cmd.OutOrStdout()
	inst := b.New()
	driver := harness.NewDriver(inst.Model)

	if opts.TraceDir != "" {
		path := filepath.Join(opts.TraceDir, b.Name+".vcd")
		f, err := os.Create(path)
		if err != nil {
			return BenchResult{}, WrapExitError(ExitCommandError, "failed to create trace file", err)
		}
		signals := append(inst.Model.Inputs(), inst.Model.Outputs()...)
		rec, err := vcd.NewWriter(f, inst.Model.Name(), signals)
		if err != nil {
			f.Close()
			return BenchResult{}, WrapExitError(ExitCommandError, "failed to create trace writer", err)
		}
		driver.Attach(rec)
		// The recorder buffers; close it before the file so the tail of
		// the waveform is flushed.
		defer func() {
			if err := rec.Close(); err != nil {
				slog.Error("error closing trace writer", "error", err)
			}
			if err := f.Close(); err != nil {
				slog.Error("error closing trace file", "error", err)
			}
		}()
		slog.Debug("tracing enabled", "bench", b.Name, "path", path)
	}

	runner := &harness.Runner{
		Driver:      driver,
		Oracle:      inst.Oracle,
		ResetCycles: inst.ResetCycles,
		Logger:      slog.Default(),
	}

	started := time.Now()
	result, err := runner.Run(inst.Steps)
	if err != nil {
		return BenchResult{}, WrapExitError(ExitCommandError, fmt.Sprintf("bench %s failed to run", b.Name), err)
	}

	if st != nil {
		runID, err := st.RecordRun(ctx, b.Name, started, result)
		if err != nil {
			return BenchResult{}, WrapExitError(ExitCommandError, "failed to record run", err)
		}
		slog.Debug("run recorded", "bench", b.Name, "run_id", runID)
	}

	br := BenchResult{Name: b.Name, Pass: result.Pass, Vectors: result.Checked}
	for _, m := range result.Mismatches {
		br.Mismatches = append(br.Mismatches, m.String())
	}

	if opts.Format != "json" {
		if br.Pass {
			fmt.Fprintf(w, "✓ %s (%d vectors)\n", b.Name, br.Vectors)
		} else {
			fmt.Fprintf(w, "✗ %s (%d vectors)\n", b.Name, br.Vectors)
			for _, line := range br.Mismatches {
				fmt.Fprintf(w, "  %s\n", line)
			}
		}
	}
	return br, nil
}

// outputRunJSON outputs the run result as JSON.
func outputRunJSON(cmd *cobra.Command, result RunResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_RUN_FAILED",
			Message: fmt.Sprintf("%d bench(es) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d bench(es) failed", result.Failed))
	}
	return nil
}

// outputRunText outputs the run result as text.
func outputRunText(cmd *cobra.Command, result RunResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Run Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d bench(es) failed", result.Failed))
	}

	fmt.Fprintln(w, "✓ All benches passed")
	return nil
}
