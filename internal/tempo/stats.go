// Package tempo derives tempo and inter-beat interval statistics from an
// ordered sequence of beat timestamps.
package tempo

import "math"

type Stats struct {
	Intervals []float64 // seconds, Intervals[i] = t[i+1] - t[i]
	Mean      float64
	Std       float64 // population standard deviation
	Min, Max  float64
}

// Intervals computes the statistics for times given in seconds. It reports
// false when there are fewer than two timestamps.
func Intervals(times []float64) (Stats, bool) {
	if len(times) < 2 {
		return Stats{}, false
	}

	s := Stats{
		Intervals: make([]float64, len(times)-1),
		Min:       math.Inf(1),
		Max:       math.Inf(-1),
	}
	sum := 0.0
	for i := 0; i < len(times)-1; i++ {
		d := times[i+1] - times[i]
		s.Intervals[i] = d
		sum += d
		s.Min = math.Min(s.Min, d)
		s.Max = math.Max(s.Max, d)
	}
	s.Mean = sum / float64(len(s.Intervals))

	for _, d := range s.Intervals {
		xi := d - s.Mean
		s.Std += xi * xi
	}
	s.Std = math.Sqrt(s.Std / float64(len(s.Intervals)))

	return s, true
}

// BPM is 60 / mean interval, or 0 when the mean is not positive.
func (s Stats) BPM() float64 {
	if s.Mean <= 0 {
		return 0
	}
	return 60 / s.Mean
}

// AverageMs returns the mean interval in milliseconds.
func (s Stats) AverageMs() *float64 {
	if len(s.Intervals) == 0 {
		return nil
	}
	v := s.Mean * 1000
	return &v
}

func Milliseconds(seconds []float64) []float64 {
	ms := make([]float64, len(seconds))
	for i, t := range seconds {
		ms[i] = t * 1000
	}
	return ms
}
