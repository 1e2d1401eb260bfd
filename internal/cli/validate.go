package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/silence-breaker/vtbench/internal/bench"
	"github.com/silence-breaker/vtbench/internal/harness"
)

// ValidationResult holds the validation outcome for one scenario file.
type ValidationResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate scenario files without running them",
		Long: `Parse each scenario file and bind it against its model's signal
interface, reporting every file that would be rejected at run time.
Nothing is simulated.

Exit codes:
  0 - All files valid
  1 - One or more files invalid
  2 - Command error (missing path)

Examples:
  vtbench validate timer_wrap.yaml
  vtbench validate ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validateScenarios(rootOpts, args[0], cmd)
		},
	}
}

func validateScenarios(opts *RootOptions, path string, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	files, err := findScenarioFiles(path)
	if err != nil {
		return err
	}

	results := make([]ValidationResult, 0, len(files))
	invalid := 0

	for _, file := range files {
		vr := ValidationResult{File: file, Valid: true}
		if err := validateScenarioFile(file); err != nil {
			vr.Valid = false
			vr.Error = err.Error()
			invalid++
		}
		results = append(results, vr)

		if opts.Format != "json" {
			if vr.Valid {
				fmt.Fprintf(w, "✓ %s\n", file)
			} else {
				fmt.Fprintf(w, "✗ %s\n  %s\n", file, vr.Error)
			}
		}
	}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: results}
		if invalid > 0 {
			response.Status = "error"
			response.Error = &CLIError{
				Code:    "E_VALIDATION_FAILED",
				Message: fmt.Sprintf("%d file(s) invalid", invalid),
			}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Validation Summary: %d valid, %d invalid, %d total\n",
			len(results)-invalid, invalid, len(results))
	}

	if invalid > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d file(s) invalid", invalid))
	}
	return nil
}

// validateScenarioFile checks one file: YAML shape, then model binding.
func validateScenarioFile(file string) error {
	s, err := harness.LoadScenario(file)
	if err != nil {
		return err
	}
	m, ok := bench.NewModel(s.Model)
	if !ok {
		return fmt.Errorf("unknown model %q (known: %v)", s.Model, bench.ModelNames())
	}
	return s.Bind(m)
}
