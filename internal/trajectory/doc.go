// Package trajectory reads annealing trajectory logs.
//
// A log is plain text with one sample per line: a temperature and the tour
// distance reached at that temperature, separated by whitespace. Lines whose
// first non-blank character is '#' are comments. Blank lines are ignored.
// Data lines with fewer than two columns, or whose first two columns are not
// both floating-point numbers, are dropped without error; Dataset.Skipped
// counts them.
//
// Usage:
//
//	ds, err := trajectory.Read("temp_log.dat")
//	if errors.Is(err, trajectory.ErrInputNotFound) {
//	    // report the missing file
//	}
//	for _, s := range ds.Samples() {
//	    fmt.Println(s.Temperature, s.Distance)
//	}
package trajectory
