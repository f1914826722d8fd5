// Package fixture holds sample inputs shared by the package tests.
package fixture

import (
	"math"
	"strings"

	"git.lost.host/meutraa/beatmap/internal/parser"
)

// Two bars of 4/4 at roughly 148 BPM, as exported from an annotation editor.
const Annotations = `TIME,LABEL
2.803625000,101.1
3.209354167,101.2
3.615083333,101.3
4.020812500,101.4
4.426541667,102.1
4.832270833,102.2
5.238000000,102.3
5.643729167,102.4
6.049458333,103.1
`

const BeatMap = `{
  "tempo": 120.0,
  "duration_seconds": 2.5,
  "sample_rate": 22050,
  "beats": [0, 500, 1000, 1500, 2000],
  "downbeats": [0, 2000],
  "beat_count": 5,
  "average_beat_interval_ms": 500.0
}`

func GetAnnotations() (*parser.Annotations, error) {
	p := parser.DefaultParser{}
	return p.Read(strings.NewReader(Annotations))
}

// Clicks renders short decaying 1 kHz bursts at the given tempo, starting at
// offset seconds, into a mono signal of the given length.
func Clicks(bpm, offset, seconds float64, sampleRate int) []float64 {
	samples := make([]float64, int(seconds*float64(sampleRate)))
	period := 60 / bpm
	burst := sampleRate / 50
	for t := offset; t < seconds; t += period {
		start := int(t * float64(sampleRate))
		for i := 0; i < burst && start+i < len(samples); i++ {
			decay := math.Exp(-float64(i) / float64(burst) * 5)
			samples[start+i] = 0.8 * decay * math.Sin(2*math.Pi*1000*float64(i)/float64(sampleRate))
		}
	}
	return samples
}
