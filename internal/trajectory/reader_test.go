package trajectory

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWellFormed(t *testing.T) {
	input := `# Temperature vs Distance log
# Format: temperature distance(km)
90.000000 100.000000
60.000000 80.000000
30.000000 50.000000
`
	ds, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []float64{90, 60, 30}, ds.Temperatures)
	assert.Equal(t, []float64{100, 80, 50}, ds.Distances)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 0, ds.Skipped)
}

func TestParseOnlyCommentsAndBlanks(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"comments", "# one\n# two\n"},
		{"indented comment", "   # indented\n\t#tab\n"},
		{"blank lines", "\n\n   \n\t\n"},
		{"mixed", "# header\n\n  \n# trailer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.True(t, ds.Empty())
			assert.NotNil(t, ds.Temperatures)
			assert.NotNil(t, ds.Distances)
			assert.Empty(t, ds.Temperatures)
			assert.Empty(t, ds.Distances)
			assert.Equal(t, 0, ds.Skipped)
		})
	}
}

func TestParseSkipsMalformedLines(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		skipped int
	}{
		{"non-numeric first token", "abc 5.0", 1},
		{"non-numeric second token", "5.0 abc", 1},
		{"single token", "42.0", 1},
		{"both non-numeric", "foo bar", 1},
		{"trailing comma", "1.0, 2.0", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "1.0 10.0\n" + tt.line + "\n2.0 20.0\n"
			ds, err := Parse(strings.NewReader(input))
			require.NoError(t, err)

			assert.Equal(t, []float64{1, 2}, ds.Temperatures)
			assert.Equal(t, []float64{10, 20}, ds.Distances)
			assert.Equal(t, tt.skipped, ds.Skipped)
		})
	}
}

func TestParseTolerantFloats(t *testing.T) {
	input := "  1e3\t2.5E-1  extra columns 99\n+7 -0.5\n.5 5.\n"
	ds, err := Parse(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []float64{1000, 7, 0.5}, ds.Temperatures)
	assert.Equal(t, []float64{0.25, -0.5, 5}, ds.Distances)
}

func TestParseSpecialValues(t *testing.T) {
	ds, err := Parse(strings.NewReader("inf nan\n"))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.True(t, math.IsInf(ds.Temperatures[0], 1))
	assert.True(t, math.IsNaN(ds.Distances[0]))
}

func TestParseLengthsStayEqual(t *testing.T) {
	lines := []string{
		"# log", "3 30", "x 1", "2", "", "2 20", "1 y", "1 10 extra",
	}
	ds, err := Parse(strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)

	assert.Equal(t, len(ds.Temperatures), len(ds.Distances))
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, 3, ds.Skipped)
}

func TestParseLineTooLong(t *testing.T) {
	long := "1 " + strings.Repeat("9", maxLineBytes+1) + "\n"
	_, err := Parse(strings.NewReader(long))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan failed")
}

func TestSamples(t *testing.T) {
	ds, err := Parse(strings.NewReader("90 100\n60 80\n"))
	require.NoError(t, err)

	assert.Equal(t, []Sample{
		{Temperature: 90, Distance: 100},
		{Temperature: 60, Distance: 80},
	}, ds.Samples())
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "temp_log.dat")
	require.NoError(t, os.WriteFile(path, []byte("# T d\n10 5\n5 4\n"), 0o644))

	ds, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 5}, ds.Temperatures)
	assert.Equal(t, []float64{5, 4}, ds.Distances)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.dat"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputNotFound))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadDirectory(t *testing.T) {
	_, err := Read(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInputNotFound)
}
