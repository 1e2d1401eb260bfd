package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/silence-breaker/vtbench/internal/vcd"
)

// WaveOptions holds flags for the wave command.
type WaveOptions struct {
	*RootOptions
	Signals   string
	MaxCycles int
	Clock     string
}

// NewWaveCommand creates the wave command.
func NewWaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "wave <file.vcd>",
		Short: "Convert a VCD trace to WaveDrom JSON",
		Long: `Convert a value-change dump written by 'run --trace-dir' (or by any
simulator) into a WaveDrom waveform description on stdout, ready to
paste into a WaveDrom editor.

Examples:
  vtbench wave waves/ten_timer.vcd
  vtbench wave waves/ten_timer.vcd --signals clock,io_count --max-cycles 16`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return convertWave(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Signals, "signals", "", "comma-separated signals to render (default: all)")
	cmd.Flags().IntVar(&opts.MaxCycles, "max-cycles", 0, "cap on rendered sample points (default 30)")
	cmd.Flags().StringVar(&opts.Clock, "clock", "clock", "clock signal name")

	return cmd
}

func convertWave(opts *WaveOptions, path string, cmd *cobra.Command) error {
	f, err := os.Open(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open trace file", err)
	}
	defer f.Close()

	dump, err := vcd.Parse(f)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse trace", err)
	}

	var signals []string
	if opts.Signals != "" {
		for _, s := range strings.Split(opts.Signals, ",") {
			if s = strings.TrimSpace(s); s != "" {
				signals = append(signals, s)
			}
		}
	}

	doc, err := vcd.ToWaveDrom(dump, vcd.Options{
		Signals:   signals,
		MaxCycles: opts.MaxCycles,
		Clock:     opts.Clock,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to convert trace", err)
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}
