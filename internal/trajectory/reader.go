package trajectory

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// ErrInputNotFound is returned by Read when the input path is missing or unreadable
var ErrInputNotFound = errors.New("input file not found")

const maxLineBytes = 1 << 20

// Read opens path and parses it as a trajectory log
func Read(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, fmt.Errorf("%w: %s: %w", ErrInputNotFound, path, err)
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputNotFound, path)
	}

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ds, nil
}

// Parse reads trajectory samples from r. Malformed data lines are skipped and
// counted; only I/O failures are returned as errors.
func Parse(r io.Reader) (*Dataset, error) {
	ds := &Dataset{
		Temperatures: []float64{},
		Distances:    []float64{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		temperature, distance, ok := parseLine(line)
		if !ok {
			ds.Skipped++
			continue
		}
		ds.add(temperature, distance)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan failed after %d samples: %w", ds.Len(), err)
	}

	return ds, nil
}

// parseLine extracts the first two columns. Both must parse or neither is used.
func parseLine(line string) (float64, float64, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, false
	}
	temperature, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, false
	}
	distance, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, false
	}
	return temperature, distance, true
}
