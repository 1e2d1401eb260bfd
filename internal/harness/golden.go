package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a stimulus sequence and compares the rendered
// report against a golden file in testdata/golden/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./... -update
//
// Report output is deterministic: mismatches keep stimulus order and
// vectors render their signals sorted.
func RunWithGolden(t *testing.T, name string, r *Runner, steps []Step) *Result {
	t.Helper()

	result, err := r.Run(steps)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(result.Report()))

	return result
}
