package cli

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silence-breaker/vtbench/internal/bench"
	"github.com/silence-breaker/vtbench/internal/harness"
)

// ScenarioOptions holds flags for the scenario command.
type ScenarioOptions struct {
	*RootOptions
	Filter string
}

// ScenarioResult holds the outcome of a single scenario execution.
type ScenarioResult struct {
	Name       string   `json:"name"`
	File       string   `json:"file"`
	Model      string   `json:"model"`
	Pass       bool     `json:"pass"`
	Vectors    int      `json:"vectors"`
	Mismatches []string `json:"mismatches,omitempty"`
}

// NewScenarioCommand creates the scenario command.
func NewScenarioCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ScenarioOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "scenario <path>",
		Short: "Run scenario files against their models",
		Long: `Run one YAML scenario file, or every scenario under a directory,
against the model each scenario names. A scenario is a literal stimulus
table with per-vector expected outputs; no oracle is involved.

Examples:
  vtbench scenario timer_wrap.yaml
  vtbench scenario ./scenarios --filter 'timer_*'
  vtbench scenario ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "run only scenarios whose name matches this glob")

	return cmd
}

func runScenarios(opts *ScenarioOptions, path string, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	files, err := findScenarioFiles(path)
	if err != nil {
		return err
	}

	results := make([]ScenarioResult, 0, len(files))
	passed, failed := 0, 0

	for _, file := range files {
		s, err := harness.LoadScenario(file)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load %s", file), err)
		}

		if opts.Filter != "" {
			match, err := filepath.Match(opts.Filter, s.Name)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid filter pattern", err)
			}
			if !match {
				slog.Debug("scenario filtered out", "name", s.Name, "filter", opts.Filter)
				continue
			}
		}

		result, err := runScenario(s, file)
		if err != nil {
			return err
		}
		results = append(results, result)
		if result.Pass {
			passed++
		} else {
			failed++
		}

		if opts.Format != "json" {
			if result.Pass {
				fmt.Fprintf(w, "✓ %s (%d vectors)\n", result.Name, result.Vectors)
			} else {
				fmt.Fprintf(w, "✗ %s (%d vectors)\n", result.Name, result.Vectors)
				for _, line := range result.Mismatches {
					fmt.Fprintf(w, "  %s\n", line)
				}
			}
		}
	}

	if len(results) == 0 {
		return NewExitError(ExitCommandError, "no scenarios matched")
	}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: results}
		if failed > 0 {
			response.Status = "error"
			response.Error = &CLIError{
				Code:    "E_SCENARIO_FAILED",
				Message: fmt.Sprintf("%d scenario(s) failed", failed),
			}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Scenario Summary: %d passed, %d failed, %d total\n", passed, failed, len(results))
	}

	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", failed))
	}
	return nil
}

// runScenario binds one loaded scenario against a fresh model and runs it.
func runScenario(s *harness.Scenario, file string) (ScenarioResult, error) {
	m, ok := bench.NewModel(s.Model)
	if !ok {
		return ScenarioResult{}, NewExitError(ExitCommandError,
			fmt.Sprintf("%s: unknown model %q (known: %v)", file, s.Model, bench.ModelNames()))
	}
	if err := s.Bind(m); err != nil {
		return ScenarioResult{}, WrapExitError(ExitCommandError, fmt.Sprintf("%s: scenario does not fit model", file), err)
	}

	runner := &harness.Runner{
		Driver:      harness.NewDriver(m),
		ResetCycles: s.ResetCycles,
		Logger:      slog.Default(),
	}
	result, err := runner.Run(s.Steps())
	if err != nil {
		return ScenarioResult{}, WrapExitError(ExitCommandError, fmt.Sprintf("%s: scenario failed to run", file), err)
	}

	sr := ScenarioResult{
		Name:    s.Name,
		File:    file,
		Model:   s.Model,
		Pass:    result.Pass,
		Vectors: result.Checked,
	}
	for _, m := range result.Mismatches {
		sr.Mismatches = append(sr.Mismatches, m.String())
	}
	return sr, nil
}

// findScenarioFiles resolves a path to a sorted list of YAML files. A
// file path is returned as-is; a directory is walked recursively.
func findScenarioFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to access path", err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(p))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to walk directory", err)
	}
	if len(files) == 0 {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("no scenario files found under %s", path))
	}
	sort.Strings(files)
	return files, nil
}
