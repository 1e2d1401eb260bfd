package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandAllBenches(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ adder4 (256 vectors)")
	assert.Contains(t, output, "✓ sync_reset_reg4")
	assert.Contains(t, output, "✓ ten_timer")
	assert.Contains(t, output, "Run Summary: 3 passed, 0 failed, 3 total")
	assert.Contains(t, output, "✓ All benches passed")
}

func TestRunCommandSingleBench(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"ten_timer"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "✓ ten_timer")
	assert.NotContains(t, output, "adder4")
	assert.Contains(t, output, "Run Summary: 1 passed, 0 failed, 1 total")
}

func TestRunCommandUnknownBench(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"nonexistent"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown bench "nonexistent"`)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRunCommandJSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"adder4"})

	err := cmd.Execute()
	require.NoError(t, err)

	var response CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)

	data, err := json.Marshal(response.Data)
	require.NoError(t, err)
	var result RunResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, 1, result.Passed)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Benches, 1)
	assert.Equal(t, "adder4", result.Benches[0].Name)
	assert.True(t, result.Benches[0].Pass)
	assert.Equal(t, 256, result.Benches[0].Vectors)
}

func TestRunCommandWritesTrace(t *testing.T) {
	dir := t.TempDir()
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"ten_timer", "--trace-dir", dir})

	err := cmd.Execute()
	require.NoError(t, err)

	trace, err := os.ReadFile(filepath.Join(dir, "ten_timer.vcd"))
	require.NoError(t, err)
	assert.Contains(t, string(trace), "$scope module TenTimer $end")
	assert.Contains(t, string(trace), "$var wire 4 ")
	assert.Contains(t, string(trace), "$dumpvars")
}

func TestRunCommandRecordsHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"adder4", "--db", dbPath})

	err := cmd.Execute()
	require.NoError(t, err)

	// The history command reads back what run recorded.
	histBuf := &bytes.Buffer{}
	hist := NewHistoryCommand(rootOpts)
	hist.SetOut(histBuf)
	hist.SetArgs([]string{"--db", dbPath})
	require.NoError(t, hist.Execute())

	output := histBuf.String()
	assert.Contains(t, output, "adder4")
	assert.Contains(t, output, "256 vectors, 0 mismatches")
}

func TestRunHelpText(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "Run the named testbenches")
	assert.Contains(t, output, "--trace-dir")
	assert.Contains(t, output, "--db")
}
