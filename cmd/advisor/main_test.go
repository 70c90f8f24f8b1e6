package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/shahar-caura/evadvisor/internal/scenario"
	"github.com/stretchr/testify/require"
)

const highwayMetrics = `petrol_price: 102.5
electricity_rate: 12
charging_cost: 1.5
grid_co2_factor: 716
ev_subsidy: 0
ev_price_reduction: 0
show_green_grid: false
savings: -80000
break_even: never
co2_savings: 4000
ev_recommended: false
`

// inTempProject runs the test from an empty project directory.
func inTempProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Cleanup(func() { scenario.SetDir(".advisor/scenarios") })
	return dir
}

// execute runs the CLI with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := newRootCmd(logger)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}
