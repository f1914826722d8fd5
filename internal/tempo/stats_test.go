package tempo

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestIntervals(t *testing.T) {
	s, ok := Intervals([]float64{0.0, 0.5, 1.0, 1.5})
	if !ok {
		t.Fatal("expected statistics for 4 timestamps")
	}
	if math.Abs(s.Mean-0.5) > tolerance {
		t.Errorf("Mean = %v, want 0.5", s.Mean)
	}
	if math.Abs(s.BPM()-120) > tolerance {
		t.Errorf("BPM = %v, want 120", s.BPM())
	}
	if s.Std > tolerance {
		t.Errorf("Std = %v, want 0", s.Std)
	}
	if avg := s.AverageMs(); avg == nil || math.Abs(*avg-500) > tolerance {
		t.Errorf("AverageMs = %v, want 500", avg)
	}
}

func TestIntervalsTooShort(t *testing.T) {
	for _, times := range [][]float64{nil, {}, {2.5}} {
		s, ok := Intervals(times)
		if ok {
			t.Errorf("Intervals(%v) reported statistics", times)
		}
		if s.BPM() != 0 {
			t.Errorf("BPM = %v, want 0", s.BPM())
		}
		if s.AverageMs() != nil {
			t.Errorf("AverageMs = %v, want nil", *s.AverageMs())
		}
	}
}

func TestBPMUnordered(t *testing.T) {
	s, ok := Intervals([]float64{3, 2, 1})
	if !ok || s.Mean != -1 {
		t.Fatalf("Mean = %v, want -1", s.Mean)
	}
	if s.BPM() != 0 {
		t.Errorf("BPM = %v, want 0", s.BPM())
	}
}

func TestIntervalsSpread(t *testing.T) {
	s, _ := Intervals([]float64{1, 1.4, 2.0, 2.5})
	if math.Abs(s.Min-0.4) > tolerance || math.Abs(s.Max-0.6) > tolerance {
		t.Errorf("Min, Max = %v, %v, want 0.4, 0.6", s.Min, s.Max)
	}
	// intervals 0.4 0.6 0.5
	want := math.Sqrt((0.01 + 0.01 + 0) / 3)
	if math.Abs(s.Std-want) > tolerance {
		t.Errorf("Std = %v, want %v", s.Std, want)
	}
}

// The mean of the millisecond differences must match the reported average.
func TestMillisecondsRoundTrip(t *testing.T) {
	seconds := []float64{2.803625, 3.209354167, 3.615083333, 4.020812500, 4.426541667}
	s, _ := Intervals(seconds)
	ms := Milliseconds(seconds)

	sum := 0.0
	for i := 0; i < len(ms)-1; i++ {
		sum += ms[i+1] - ms[i]
	}
	mean := sum / float64(len(ms)-1)
	if math.Abs(mean-*s.AverageMs()) > 1e-6 {
		t.Errorf("mean(diff(ms)) = %v, AverageMs = %v", mean, *s.AverageMs())
	}
}
