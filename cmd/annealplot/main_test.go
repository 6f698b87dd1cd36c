package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/GoSim-25-26J-441/annealplot/pkg/logger"
)

// lowResConfig keeps rendered test figures small
func lowResConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "annealplot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart:\n  dpi: 30\n"), 0o644))
	return path
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	previous := logger.Default
	t.Cleanup(func() { logger.SetDefault(previous) })

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestEnsurePNGExtension(t *testing.T) {
	tests := []struct {
		in    string
		out   string
		added bool
	}{
		{"plot", "plot.png", true},
		{"plot.png", "plot.png", false},
		{"plot.PNG", "plot.PNG", false},
		{"plot.Png", "plot.Png", false},
		{"plot.jpg", "plot.jpg.png", true},
		{"dir.png/plot", "dir.png/plot.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out, added := ensurePNGExtension(tt.in)
			assert.Equal(t, tt.out, out)
			assert.Equal(t, tt.added, added)
		})
	}
}

func TestRunUsage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"one argument", []string{"temp_log.dat"}},
		{"three arguments", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, _ := runCLI(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Contains(t, stdout, "Usage: annealplot")
			assert.Contains(t, stdout, "Example:")
		})
	}
}

func TestRunHelp(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Usage: annealplot")
	assert.Contains(t, stderr, "-summary")
}

func TestRunUnknownFlag(t *testing.T) {
	code, _, stderr := runCLI(t, "-dpi", "10", "in.dat", "out.png")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "flag provided but not defined")
}

func TestRunMissingInput(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.dat")

	code, stdout, _ := runCLI(t, missing, filepath.Join(dir, "out.png"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Error: Could not find input file '"+missing+"'")
	assert.NoFileExists(t, filepath.Join(dir, "out.png"))
}

func TestRunEmptyDataset(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.png")

	code, stdout, _ := runCLI(t, filepath.Join("testdata", "empty.dat"), out)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Error: No valid data found in input file")
	assert.NoFileExists(t, out)
}

func TestRunSuccess(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "plot")

	code, stdout, _ := runCLI(t, "-config", lowResConfig(t), filepath.Join("testdata", "temp_log.dat"), out)
	require.Equal(t, 0, code, stdout)

	assert.Contains(t, stdout, "Note: Added .png extension to output filename\n")
	assert.Contains(t, stdout, "Successfully read 10 data points\n")
	assert.Contains(t, stdout, "Plot saved to "+out+".png\n")
	assert.Contains(t, stdout, "  Temperature range: 1141.90 to 1250.00\n")
	assert.Contains(t, stdout, "  Distance range: 25890.45 to 48213.55 km\n")
	assert.Contains(t, stdout, "  Initial distance: 48213.55 km\n")
	assert.Contains(t, stdout, "  Final distance: 25890.45 km\n")
	assert.Contains(t, stdout, "  Improvement: 46.30%\n")
	assert.Contains(t, stdout, "  Number of temperature steps: 10\n")

	f, err := os.Open(out + ".png")
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 180, cfg.Height)
}

func TestRunKeepsUppercaseExtension(t *testing.T) {
	out := filepath.Join(t.TempDir(), "plot.PNG")

	code, stdout, _ := runCLI(t, "-config", lowResConfig(t), filepath.Join("testdata", "temp_log.dat"), out)
	require.Equal(t, 0, code, stdout)
	assert.NotContains(t, stdout, "Note: Added .png extension")
	assert.FileExists(t, out)
}

func TestRunWritesSummary(t *testing.T) {
	dir := t.TempDir()
	summary := filepath.Join(dir, "summary.json")

	code, stdout, _ := runCLI(t,
		"-config", lowResConfig(t),
		"-summary", summary,
		filepath.Join("testdata", "temp_log.dat"),
		filepath.Join(dir, "plot.png"),
	)
	require.Equal(t, 0, code, stdout)
	assert.Contains(t, stdout, "Summary written to "+summary)

	data, err := os.ReadFile(summary)
	require.NoError(t, err)
	var doc structpb.Struct
	require.NoError(t, protojson.Unmarshal(data, &doc))
	assert.Equal(t, 10.0, doc.AsMap()["steps"])
}

func TestRunDebugLogging(t *testing.T) {
	dir := t.TempDir()

	code, _, stderr := runCLI(t,
		"-config", lowResConfig(t),
		"-log-level", "debug",
		filepath.Join("testdata", "temp_log.dat"),
		filepath.Join(dir, "plot.png"),
	)
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "trajectory parsed")
	assert.Contains(t, stderr, "skipped_lines=2")
}

func TestRunConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("chart: {dpi: 0}\n"), 0o644))
	input := filepath.Join("testdata", "temp_log.dat")
	out := filepath.Join(dir, "plot.png")

	code, stdout, _ := runCLI(t, "-config", bad, input, out)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Error: failed to parse config file")

	code, stdout, _ = runCLI(t, "-log-level", "chatty", input, out)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Error: invalid log level")
}

func TestRunUnwritableOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "plot.png")

	code, stdout, _ := runCLI(t, "-config", lowResConfig(t), filepath.Join("testdata", "temp_log.dat"), out)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Creating plot...")
	assert.Contains(t, stdout, "Error: failed to create")
}
