package improvement

import (
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/GoSim-25-26J-441/annealplot/pkg/config"
)

// Strategy decides whether a distance trajectory has stopped improving.
// Lower distances are better.
type Strategy interface {
	// Check reports whether history has converged and why
	Check(history []float64) (bool, string)
	// Name returns the name of the strategy
	Name() string
}

// Config holds configuration for convergence detection
type Config struct {
	// NoImprovementSteps is the number of steps without a new best before stopping
	NoImprovementSteps int
	// ImprovementThreshold is the minimum relative improvement to consider significant
	ImprovementThreshold float64
	// ScoreTolerance is the absolute tolerance for distances to be considered equal
	ScoreTolerance float64
	// MinSteps is the minimum number of steps before convergence can be detected
	MinSteps int
	// PlateauSteps is the window length used by the plateau and variance checks
	PlateauSteps int
}

// DefaultConfig returns a default convergence configuration
func DefaultConfig() *Config {
	return FromConfig(config.DefaultConfig().Convergence)
}

// FromConfig converts the file configuration
func FromConfig(c config.Convergence) *Config {
	return &Config{
		NoImprovementSteps:   c.NoImprovementSteps,
		ImprovementThreshold: c.ImprovementThreshold,
		ScoreTolerance:       c.ScoreTolerance,
		MinSteps:             c.MinSteps,
		PlateauSteps:         c.PlateauSteps,
	}
}

// NewStrategy builds a strategy by name. "none" returns a nil Strategy.
func NewStrategy(name string, cfg *Config) (Strategy, error) {
	switch name {
	case "combined", "":
		return NewCombinedStrategy(cfg), nil
	case "no_improvement":
		return NewNoImprovementStrategy(cfg), nil
	case "plateau":
		return NewPlateauStrategy(cfg), nil
	case "improvement_threshold":
		return NewThresholdStrategy(cfg), nil
	case "variance":
		return NewVarianceStrategy(cfg), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown convergence strategy: %s", name)
	}
}

// BestStep returns the index of the first occurrence of the smallest distance,
// or -1 for an empty history. NaN entries never win.
func BestStep(history []float64) int {
	best := -1
	for i, d := range history {
		if math.IsNaN(d) {
			continue
		}
		if best < 0 || d < history[best] {
			best = i
		}
	}
	return best
}

// FirstConvergence replays history step by step and returns the first step at
// which strategy reports convergence.
func FirstConvergence(strategy Strategy, history []float64) (step int, reason string, ok bool) {
	if strategy == nil {
		return -1, "", false
	}
	for i := range history {
		if converged, why := strategy.Check(history[:i+1]); converged {
			return i, why, true
		}
	}
	return -1, "", false
}

// NoImprovementStrategy detects convergence when there's no new best for N steps
type NoImprovementStrategy struct {
	config *Config
}

// NewNoImprovementStrategy creates a new no-improvement convergence strategy
func NewNoImprovementStrategy(config *Config) *NoImprovementStrategy {
	if config == nil {
		config = DefaultConfig()
	}
	return &NoImprovementStrategy{config: config}
}

func (s *NoImprovementStrategy) Name() string {
	return "no_improvement"
}

func (s *NoImprovementStrategy) Check(history []float64) (converged bool, reason string) {
	if len(history) < s.config.MinSteps {
		return false, ""
	}

	bestStep := BestStep(history)
	if bestStep < 0 {
		return false, ""
	}

	stepsSinceBest := len(history) - 1 - bestStep
	if stepsSinceBest >= s.config.NoImprovementSteps {
		return true, fmt.Sprintf("no improvement for %d steps (best at step %d)", stepsSinceBest, bestStep)
	}

	return false, ""
}

// PlateauStrategy detects convergence when the last N distances are within tolerance
type PlateauStrategy struct {
	config *Config
}

// NewPlateauStrategy creates a new plateau convergence strategy
func NewPlateauStrategy(config *Config) *PlateauStrategy {
	if config == nil {
		config = DefaultConfig()
	}
	return &PlateauStrategy{config: config}
}

func (s *PlateauStrategy) Name() string {
	return "plateau"
}

func (s *PlateauStrategy) Check(history []float64) (converged bool, reason string) {
	if len(history) < s.config.MinSteps || len(history) < s.config.PlateauSteps {
		return false, ""
	}

	recent := stats.Sample{Xs: history[len(history)-s.config.PlateauSteps:]}
	minScore, maxScore := recent.Bounds()

	scoreRange := maxScore - minScore
	if scoreRange <= s.config.ScoreTolerance {
		return true, fmt.Sprintf("distance plateaued for %d steps (range: %.6f)", s.config.PlateauSteps, scoreRange)
	}

	return false, ""
}

// ThresholdStrategy detects convergence when every recent step improves less
// than ImprovementThreshold (relative)
type ThresholdStrategy struct {
	config *Config
}

// NewThresholdStrategy creates a new improvement threshold convergence strategy
func NewThresholdStrategy(config *Config) *ThresholdStrategy {
	if config == nil {
		config = DefaultConfig()
	}
	return &ThresholdStrategy{config: config}
}

func (s *ThresholdStrategy) Name() string {
	return "improvement_threshold"
}

func (s *ThresholdStrategy) Check(history []float64) (converged bool, reason string) {
	window := s.config.NoImprovementSteps
	if len(history) < s.config.MinSteps+1 || len(history) < window+1 {
		return false, ""
	}

	// window+1 points give window consecutive improvements
	recent := history[len(history)-window-1:]
	maxImprovement := math.Inf(-1)
	counted := 0
	for i := 1; i < len(recent); i++ {
		if recent[i-1] <= 0 {
			continue
		}
		improvement := (recent[i-1] - recent[i]) / recent[i-1]
		if improvement > s.config.ImprovementThreshold {
			return false, ""
		}
		maxImprovement = math.Max(maxImprovement, improvement)
		counted++
	}

	if counted == 0 {
		return false, ""
	}
	return true, fmt.Sprintf("improvements below threshold (max: %.4f%%, threshold: %.4f%%)", maxImprovement*100, s.config.ImprovementThreshold*100)
}

// VarianceStrategy detects convergence when recent distances have a small
// relative standard deviation
type VarianceStrategy struct {
	config *Config
}

// NewVarianceStrategy creates a new variance-based convergence strategy
func NewVarianceStrategy(config *Config) *VarianceStrategy {
	if config == nil {
		config = DefaultConfig()
	}
	return &VarianceStrategy{config: config}
}

func (s *VarianceStrategy) Name() string {
	return "variance"
}

func (s *VarianceStrategy) Check(history []float64) (converged bool, reason string) {
	if len(history) < s.config.MinSteps {
		return false, ""
	}

	windowSize := s.config.PlateauSteps
	if len(history) < windowSize {
		windowSize = len(history)
	}
	if windowSize < 2 {
		return false, ""
	}

	recent := stats.Sample{Xs: history[len(history)-windowSize:]}
	mean := recent.Mean()
	if mean <= 0 {
		return false, ""
	}

	relativeStdDev := recent.StdDev() / mean
	if relativeStdDev < s.config.ImprovementThreshold {
		return true, fmt.Sprintf("low distance variance (relative stddev: %.4f%%)", relativeStdDev*100)
	}

	return false, ""
}

// CombinedStrategy converges as soon as any of its strategies does
type CombinedStrategy struct {
	strategies []Strategy
}

// NewCombinedStrategy creates a strategy over no-improvement, plateau and threshold checks
func NewCombinedStrategy(config *Config) *CombinedStrategy {
	if config == nil {
		config = DefaultConfig()
	}
	return &CombinedStrategy{
		strategies: []Strategy{
			NewNoImprovementStrategy(config),
			NewPlateauStrategy(config),
			NewThresholdStrategy(config),
		},
	}
}

func (s *CombinedStrategy) Name() string {
	return "combined"
}

func (s *CombinedStrategy) Check(history []float64) (converged bool, reason string) {
	for _, strategy := range s.strategies {
		if converged, reason := strategy.Check(history); converged {
			return true, fmt.Sprintf("%s: %s", strategy.Name(), reason)
		}
	}
	return false, ""
}

// AddStrategy adds a custom strategy to the combined strategy
func (s *CombinedStrategy) AddStrategy(strategy Strategy) {
	s.strategies = append(s.strategies, strategy)
}
