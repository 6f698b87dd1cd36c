package report

import (
	"errors"
	"math"

	"github.com/aclements/go-moremath/stats"

	"github.com/GoSim-25-26J-441/annealplot/internal/improvement"
	"github.com/GoSim-25-26J-441/annealplot/internal/trajectory"
)

// ErrEmptyDataset is returned when a trajectory has no samples to summarize
var ErrEmptyDataset = errors.New("no valid data found in input file")

// DisplayRange is a pair of values in the order they are shown, which is not
// necessarily ascending.
type DisplayRange struct {
	From float64
	To   float64
}

// Convergence records where the trajectory stopped improving
type Convergence struct {
	Converged bool
	Strategy  string
	Step      int
	Reason    string
}

// Summary holds the statistics reported for one trajectory
type Summary struct {
	MinDistance     float64
	MaxDistance     float64
	InitialDistance float64
	FinalDistance   float64
	// Improvement is the percent reduction from initial to final distance.
	// It is NaN when the initial distance is zero.
	Improvement float64
	// TemperatureRange runs from the last logged temperature to the first,
	// i.e. cold to hot for a cooling schedule.
	TemperatureRange DisplayRange
	Steps            int
	BestStep         int
	Convergence      Convergence
}

// ImprovementDefined reports whether Improvement holds a number
func (s *Summary) ImprovementDefined() bool {
	return !math.IsNaN(s.Improvement)
}

// ImprovementPercent returns 100*(initial-final)/initial, or NaN when initial is zero
func ImprovementPercent(initial, final float64) float64 {
	if initial == 0 {
		return math.NaN()
	}
	return 100 * (initial - final) / initial
}

// TemperatureDisplayRange orders a temperature schedule for display: last value first
func TemperatureDisplayRange(temperatures []float64) DisplayRange {
	if len(temperatures) == 0 {
		return DisplayRange{From: math.NaN(), To: math.NaN()}
	}
	return DisplayRange{
		From: temperatures[len(temperatures)-1],
		To:   temperatures[0],
	}
}

// Summarize computes the statistics for ds. strategy may be nil to skip
// convergence detection.
func Summarize(ds *trajectory.Dataset, strategy improvement.Strategy) (*Summary, error) {
	if ds == nil || ds.Empty() {
		return nil, ErrEmptyDataset
	}

	distances := stats.Sample{Xs: ds.Distances}
	minDistance, maxDistance := distances.Bounds()

	initial := ds.Distances[0]
	final := ds.Distances[ds.Len()-1]

	s := &Summary{
		MinDistance:      minDistance,
		MaxDistance:      maxDistance,
		InitialDistance:  initial,
		FinalDistance:    final,
		Improvement:      ImprovementPercent(initial, final),
		TemperatureRange: TemperatureDisplayRange(ds.Temperatures),
		Steps:            ds.Len(),
		BestStep:         improvement.BestStep(ds.Distances),
		Convergence:      Convergence{Step: -1},
	}

	if strategy != nil {
		s.Convergence.Strategy = strategy.Name()
		if step, reason, ok := improvement.FirstConvergence(strategy, ds.Distances); ok {
			s.Convergence.Converged = true
			s.Convergence.Step = step
			s.Convergence.Reason = reason
		}
	}

	return s, nil
}
