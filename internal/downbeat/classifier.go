// Package downbeat selects the beats that open a bar, either from bar
// position labels or from the onset strength measured at each beat.
package downbeat

import (
	"math"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// BarStart is the label suffix of the first beat in a bar, "101.1" is bar 101 beat 1.
const BarStart = ".1"

// DefaultPercentile of beat onset strengths that a downbeat has to exceed.
const DefaultPercentile = 75.0

var ErrFrameOutOfRange = errors.New("beat frame outside of onset envelope")

// FromLabels returns the indices of the labels that end with BarStart.
func FromLabels(labels []string) []int {
	indices := []int{}
	for i, label := range labels {
		if strings.HasSuffix(label, BarStart) {
			indices = append(indices, i)
		}
	}
	return indices
}

// FromStrengths returns the indices whose strength is strictly greater than
// the given percentile of all strengths. Ties at the threshold are excluded,
// so flat input yields no downbeats.
func FromStrengths(strengths []float64, percentile float64) []int {
	indices := []int{}
	if len(strengths) == 0 {
		return indices
	}
	threshold := Percentile(strengths, percentile)
	for i, s := range strengths {
		if s > threshold {
			indices = append(indices, i)
		}
	}
	return indices
}

// Percentile with linear interpolation between the closest ranks,
// rank = p/100 * (n-1). NaN for empty input.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	p = math.Max(0, math.Min(100, p))
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Strengths samples the onset envelope at every beat frame.
func Strengths(onset []float64, frames []int) ([]float64, error) {
	strengths := make([]float64, len(frames))
	for i, f := range frames {
		if f < 0 || f >= len(onset) {
			return nil, errors.Wrapf(ErrFrameOutOfRange, "frame %d of %d", f, len(onset))
		}
		strengths[i] = onset[f]
	}
	return strengths, nil
}

// Pick maps indices through values, so downbeat timestamps are always the
// very same numbers as the beat timestamps they were chosen from.
func Pick(values []float64, indices []int) []float64 {
	picked := make([]float64, 0, len(indices))
	for _, i := range indices {
		picked = append(picked, values[i])
	}
	return picked
}
