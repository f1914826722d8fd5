package analysis

import (
	"math"

	"github.com/pkg/errors"
)

var ErrInvalidParams = errors.New("invalid analysis parameters")

type DefaultAnalyzer struct {
	Params Params
}

func (a *DefaultAnalyzer) validate(sampleRate int) error {
	p := a.Params
	switch {
	case sampleRate <= 0:
		return errors.Wrapf(ErrInvalidParams, "sample rate %d", sampleRate)
	case p.FrameLength <= 0 || p.FrameLength&(p.FrameLength-1) != 0:
		return errors.Wrapf(ErrInvalidParams, "frame length %d is not a power of two", p.FrameLength)
	case p.HopLength <= 0:
		return errors.Wrapf(ErrInvalidParams, "hop length %d", p.HopLength)
	case p.MinBPM <= 0 || p.MaxBPM <= p.MinBPM:
		return errors.Wrapf(ErrInvalidParams, "bpm range %v-%v", p.MinBPM, p.MaxBPM)
	case p.StartBPM < p.MinBPM || p.StartBPM > p.MaxBPM:
		return errors.Wrapf(ErrInvalidParams, "start bpm %v outside %v-%v", p.StartBPM, p.MinBPM, p.MaxBPM)
	}
	return nil
}

func (a *DefaultAnalyzer) Analyze(samples []float64, sampleRate int) (*Result, error) {
	if err := a.validate(sampleRate); nil != err {
		return nil, err
	}

	onset := onsetStrength(samples, a.Params.FrameLength, a.Params.HopLength)
	result := &Result{
		Frames:     []int{},
		Onset:      onset,
		SampleRate: sampleRate,
		HopLength:  a.Params.HopLength,
	}

	active := false
	for _, o := range onset {
		if o > 0 {
			active = true
			break
		}
	}
	if !active {
		return result, nil
	}

	fps := float64(sampleRate) / float64(a.Params.HopLength)
	result.Tempo = estimateTempo(onset, fps, a.Params)
	if result.Tempo > 0 {
		result.Frames = trackBeats(onset, fps*60/result.Tempo, a.Params.Tightness)
	}
	return result, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Sample standard deviation.
func stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	s := 0.0
	for _, x := range xs {
		s += (x - m) * (x - m)
	}
	return math.Sqrt(s / float64(len(xs)-1))
}
