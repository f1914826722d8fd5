// Package analysis extracts a tempo estimate, beat frames and an onset
// strength envelope from a mono signal.
package analysis

type Analyzer interface {
	Analyze(samples []float64, sampleRate int) (*Result, error)
}

type Result struct {
	Tempo      float64   // BPM, 0 when nothing rhythmic was found
	Frames     []int     // beat frame indices, ascending
	Onset      []float64 // onset strength per frame
	SampleRate int
	HopLength  int
}

// FrameTime converts a frame index to seconds.
func (r *Result) FrameTime(frame int) float64 {
	return float64(frame) * float64(r.HopLength) / float64(r.SampleRate)
}

// Times converts every beat frame to seconds.
func (r *Result) Times() []float64 {
	times := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		times[i] = r.FrameTime(f)
	}
	return times
}

// Params tune the default analyzer and the downbeat selection that follows it.
type Params struct {
	SampleRate         int     `yaml:"sample_rate"`
	FrameLength        int     `yaml:"frame_length"`
	HopLength          int     `yaml:"hop_length"`
	StartBPM           float64 `yaml:"start_bpm"`
	MinBPM             float64 `yaml:"min_bpm"`
	MaxBPM             float64 `yaml:"max_bpm"`
	Tightness          float64 `yaml:"tightness"`
	DownbeatPercentile float64 `yaml:"downbeat_percentile"`
}

func DefaultParams() Params {
	return Params{
		SampleRate:         22050,
		FrameLength:        2048,
		HopLength:          512,
		StartBPM:           120,
		MinBPM:             30,
		MaxBPM:             300,
		Tightness:          100,
		DownbeatPercentile: 75,
	}
}
