package analysis

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	amin  = 1e-10
	topDB = 80.0
)

// onsetStrength is the mean positive log-power spectral flux between
// consecutive centered frames. Frame t is centered on sample t*hop.
func onsetStrength(y []float64, frameLength, hop int) []float64 {
	pad := frameLength / 2
	padded := make([]float64, len(y)+2*pad)
	copy(padded[pad:], y)

	frames := 1 + (len(padded)-frameLength)/hop
	bins := frameLength/2 + 1
	win := window.Hann(frameLength)

	// log-power spectrogram, clipped to topDB below its loudest bin
	power := make([][]float32, frames)
	buf := make([]float64, frameLength)
	peak := math.Inf(-1)
	for t := 0; t < frames; t++ {
		seg := padded[t*hop : t*hop+frameLength]
		for i := range buf {
			buf[i] = seg[i] * win[i]
		}
		coeffs := fft.FFTReal(buf)
		row := make([]float32, bins)
		for k := 0; k < bins; k++ {
			re, im := real(coeffs[k]), imag(coeffs[k])
			db := 10 * math.Log10(math.Max(re*re+im*im, amin))
			row[k] = float32(db)
			peak = math.Max(peak, db)
		}
		power[t] = row
	}
	floor := float32(peak - topDB)

	onset := make([]float64, frames)
	for t := 1; t < frames; t++ {
		flux := 0.0
		for k := 0; k < bins; k++ {
			cur, prev := power[t][k], power[t-1][k]
			if cur < floor {
				cur = floor
			}
			if prev < floor {
				prev = floor
			}
			if d := cur - prev; d > 0 {
				flux += float64(d)
			}
		}
		onset[t] = flux / float64(bins)
	}
	return onset
}
