// Package audio decodes tracks with beep and prepares them for analysis.
package audio

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// resampleQuality is passed to beep.Resample, 1 is fastest and 6 is best.
const resampleQuality = 4

var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Clip is a decoded mono signal.
type Clip struct {
	Samples    []float64
	SampleRate int
	Duration   float64 // seconds
}

// Supported reports whether a decoder exists for the file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".ogg", ".wav":
		return true
	}
	return false
}

// Open decodes the file for streaming. The caller closes the streamer.
func Open(path string) (beep.StreamSeekCloser, beep.Format, error) {
	if !Supported(path) {
		return nil, beep.Format{}, errors.Wrap(ErrUnsupportedFormat, filepath.Ext(path))
	}

	f, err := os.Open(path)
	if nil != err {
		return nil, beep.Format{}, errors.Wrap(err, "unable to open audio")
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		streamer, format, err = mp3.Decode(f)
	}
	if nil != err {
		f.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "unable to decode %v", path)
	}
	return streamer, format, nil
}

// Load decodes the whole file, resamples it to sampleRate and mixes it down to mono.
func Load(path string, sampleRate int) (*Clip, error) {
	streamer, format, err := Open(path)
	if nil != err {
		return nil, err
	}
	defer streamer.Close()

	clip, err := Read(streamer, format.SampleRate, sampleRate)
	if nil != err {
		return nil, err
	}
	return clip, errors.Wrapf(streamer.Err(), "unable to decode %v", path)
}

// Read drains the streamer into a mono clip at sampleRate.
func Read(s beep.Streamer, from beep.SampleRate, sampleRate int) (*Clip, error) {
	if sampleRate <= 0 {
		return nil, errors.Errorf("invalid sample rate %d", sampleRate)
	}
	to := beep.SampleRate(sampleRate)
	if from != to {
		s = beep.Resample(resampleQuality, from, to, s)
	}

	samples := []float64{}
	buf := make([][2]float64, 4096)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			samples = append(samples, (frame[0]+frame[1])/2)
		}
		if !ok {
			break
		}
	}

	return &Clip{
		Samples:    samples,
		SampleRate: sampleRate,
		Duration:   float64(len(samples)) / float64(sampleRate),
	}, nil
}
