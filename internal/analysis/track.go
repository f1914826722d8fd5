package analysis

import (
	"math"
	"sort"
)

// estimateTempo picks the autocorrelation lag of the onset envelope with the
// highest score under a log-normal prior centered on StartBPM (one octave
// standard deviation), refined by parabolic interpolation.
func estimateTempo(onset []float64, fps float64, p Params) float64 {
	minLag := int(math.Floor(60 * fps / p.MaxBPM))
	if minLag < 1 {
		minLag = 1
	}
	maxLag := int(math.Ceil(60 * fps / p.MinBPM))
	if maxLag > len(onset)-2 {
		maxLag = len(onset) - 2
	}
	if maxLag <= minLag {
		return 0
	}

	m := mean(onset)
	centered := make([]float64, len(onset))
	for i, o := range onset {
		centered[i] = o - m
	}

	// one lag of margin either side for the interpolation
	lo, hi := minLag-1, maxLag+1
	if lo < 1 {
		lo = 1
	}
	score := make([]float64, hi+1)
	for lag := lo; lag <= hi; lag++ {
		ac := 0.0
		for t := 0; t+lag < len(centered); t++ {
			ac += centered[t] * centered[t+lag]
		}
		ac /= float64(len(centered) - lag)

		bpm := 60 * fps / float64(lag)
		prior := math.Exp(-0.5 * math.Pow(math.Log2(bpm/p.StartBPM), 2))
		score[lag] = ac * prior
	}

	best := -1
	for lag := minLag; lag <= maxLag; lag++ {
		if score[lag] <= 0 {
			continue
		}
		if best < 0 || score[lag] > score[best] {
			best = lag
		}
	}
	if best < 0 {
		return 0
	}

	period := float64(best)
	if best-1 >= lo && best+1 <= hi {
		a, b, c := score[best-1], score[best], score[best+1]
		if denom := a - 2*b + c; denom < 0 {
			period += 0.5 * (a - c) / denom
		}
	}
	return 60 * fps / period
}

// trackBeats runs dynamic programming over the onset envelope, rewarding
// strong onsets and penalizing spacings that stray from period frames.
func trackBeats(onset []float64, period, tightness float64) []int {
	sd := stdev(onset)
	if sd == 0 || period <= 0 {
		return []int{}
	}

	norm := make([]float64, len(onset))
	for i, o := range onset {
		norm[i] = o / sd
	}
	local := localScore(norm, period)

	maxLocal := 0.0
	for _, l := range local {
		maxLocal = math.Max(maxLocal, l)
	}

	from, to := -int(math.Round(2*period)), -int(math.Round(period/2))
	offsets := make([]int, 0, to-from+1)
	weights := make([]float64, 0, to-from+1)
	for off := from; off <= to; off++ {
		offsets = append(offsets, off)
		w := math.Log(-float64(off) / period)
		weights = append(weights, -tightness*w*w)
	}

	cumulative := make([]float64, len(local))
	backlink := make([]int, len(local))
	first := true
	for t := range local {
		best, link := math.Inf(-1), -1
		for i, off := range offsets {
			z := t + off
			if z < 0 {
				continue
			}
			if s := cumulative[z] + weights[i]; s > best {
				best, link = s, z
			}
		}

		cumulative[t] = local[t]
		backlink[t] = -1
		if first && local[t] < 0.01*maxLocal {
			continue
		}
		first = false
		if link >= 0 {
			cumulative[t] += best
			backlink[t] = link
		}
	}

	tail := lastBeat(cumulative)
	if tail < 0 {
		return []int{}
	}
	beats := []int{}
	for b := tail; b >= 0; b = backlink[b] {
		beats = append(beats, b)
	}
	for i, j := 0, len(beats)-1; i < j; i, j = i+1, j-1 {
		beats[i], beats[j] = beats[j], beats[i]
	}

	return trimBeats(local, beats)
}

// localScore smooths the envelope with a gaussian a little narrower than one beat.
func localScore(onset []float64, period float64) []float64 {
	half := int(math.Round(period))
	kernel := make([]float64, 2*half+1)
	for k := -half; k <= half; k++ {
		x := float64(k) * 32 / period
		kernel[k+half] = math.Exp(-0.5 * x * x)
	}

	out := make([]float64, len(onset))
	for t := range onset {
		s := 0.0
		for k := -half; k <= half; k++ {
			if i := t - k; i >= 0 && i < len(onset) {
				s += onset[i] * kernel[k+half]
			}
		}
		out[t] = s
	}
	return out
}

// lastBeat is the latest local maximum of the cumulative score that reaches
// half the median of all local maxima.
func lastBeat(cumulative []float64) int {
	isMax := func(i int) bool {
		if i == 0 {
			return false
		}
		if i == len(cumulative)-1 {
			return cumulative[i] > cumulative[i-1]
		}
		return cumulative[i] > cumulative[i-1] && cumulative[i] >= cumulative[i+1]
	}

	maxima := []float64{}
	for i := range cumulative {
		if isMax(i) {
			maxima = append(maxima, cumulative[i])
		}
	}
	if len(maxima) == 0 {
		return -1
	}
	sort.Float64s(maxima)
	median := maxima[len(maxima)/2]
	if len(maxima)%2 == 0 {
		median = (maxima[len(maxima)/2-1] + median) / 2
	}

	for i := len(cumulative) - 1; i >= 0; i-- {
		if isMax(i) && cumulative[i] >= 0.5*median {
			return i
		}
	}
	return -1
}

// trimBeats drops weak leading and trailing beats, those whose smoothed
// local score stays under half its root mean square.
func trimBeats(local []float64, beats []int) []int {
	if len(beats) == 0 {
		return beats
	}
	hann := [...]float64{0, 0.5, 1, 0.5, 0}

	smooth := make([]float64, len(beats))
	for i := range beats {
		s := 0.0
		for k := -2; k <= 2; k++ {
			if j := i - k; j >= 0 && j < len(beats) {
				s += local[beats[j]] * hann[k+2]
			}
		}
		smooth[i] = s
	}

	rms := 0.0
	for _, s := range smooth {
		rms += s * s
	}
	threshold := 0.5 * math.Sqrt(rms/float64(len(smooth)))

	first, last := -1, -1
	for i, s := range smooth {
		if s > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return []int{}
	}
	return beats[first : last+1]
}
