package report

import (
	"fmt"
	"io"
	"strings"
)

// FormatImprovement renders the improvement percentage with two decimals
func FormatImprovement(s *Summary) string {
	if !s.ImprovementDefined() {
		return "undefined (initial distance is 0)"
	}
	return fmt.Sprintf("%.2f%%", s.Improvement)
}

// FormatRange renders a display range as "From to To"
func FormatRange(r DisplayRange) string {
	return fmt.Sprintf("%.2f to %.2f", r.From, r.To)
}

// AnnotationLines returns the lines of the chart statistics box
func AnnotationLines(s *Summary) []string {
	return []string{
		fmt.Sprintf("Initial: %.2f km", s.InitialDistance),
		fmt.Sprintf("Final: %.2f km", s.FinalDistance),
		"Improvement: " + FormatImprovement(s),
	}
}

// WriteStatistics writes the console statistics block
func WriteStatistics(w io.Writer, s *Summary) error {
	var b strings.Builder
	b.WriteString("\nStatistics:\n")
	fmt.Fprintf(&b, "  Temperature range: %s\n", FormatRange(s.TemperatureRange))
	fmt.Fprintf(&b, "  Distance range: %s km\n", FormatRange(DisplayRange{From: s.MinDistance, To: s.MaxDistance}))
	fmt.Fprintf(&b, "  Initial distance: %.2f km\n", s.InitialDistance)
	fmt.Fprintf(&b, "  Final distance: %.2f km\n", s.FinalDistance)
	fmt.Fprintf(&b, "  Improvement: %s\n", FormatImprovement(s))
	fmt.Fprintf(&b, "  Number of temperature steps: %d\n", s.Steps)
	if s.BestStep >= 0 {
		fmt.Fprintf(&b, "  Best distance at step: %d\n", s.BestStep)
	}
	if s.Convergence.Converged {
		fmt.Fprintf(&b, "  Converged at step %d (%s)\n", s.Convergence.Step, s.Convergence.Reason)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
