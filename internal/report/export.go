package report

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"
)

// Record returns the summary as a generic document. Non-finite numbers become
// nil so every encoder can represent them.
func Record(s *Summary) map[string]any {
	return map[string]any{
		"steps":               s.Steps,
		"min_distance":        finite(s.MinDistance),
		"max_distance":        finite(s.MaxDistance),
		"initial_distance":    finite(s.InitialDistance),
		"final_distance":      finite(s.FinalDistance),
		"improvement_percent": finite(s.Improvement),
		"best_step":           s.BestStep,
		"temperature_range": map[string]any{
			"from": finite(s.TemperatureRange.From),
			"to":   finite(s.TemperatureRange.To),
		},
		"convergence": map[string]any{
			"strategy":  s.Convergence.Strategy,
			"converged": s.Convergence.Converged,
			"step":      s.Convergence.Step,
			"reason":    s.Convergence.Reason,
		},
	}
}

// MarshalJSON encodes the summary record with protojson
func MarshalJSON(s *Summary) ([]byte, error) {
	doc, err := structpb.NewStruct(Record(s))
	if err != nil {
		return nil, fmt.Errorf("failed to build summary struct: %w", err)
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary json: %w", err)
	}
	return data, nil
}

// MarshalYAML encodes the summary record as YAML
func MarshalYAML(s *Summary) ([]byte, error) {
	data, err := yaml.Marshal(Record(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode summary yaml: %w", err)
	}
	return data, nil
}

// Export writes the summary to path. The format follows the extension:
// .json, .yaml or .yml.
func Export(path string, s *Summary) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		data, err = MarshalJSON(s)
	case ".yaml", ".yml":
		data, err = MarshalYAML(s)
	default:
		return fmt.Errorf("unsupported summary format %q (use .json, .yaml or .yml)", ext)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary %s: %w", path, err)
	}
	return nil
}

func finite(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}
