package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

func tone(sr beep.SampleRate, d float64) beep.Streamer {
	n := 0
	total := int(float64(sr) * d)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if n >= total {
			return 0, false
		}
		i := 0
		for ; i < len(samples) && n < total; i++ {
			v := 0.5 * math.Sin(2*math.Pi*440*float64(n)/float64(sr))
			samples[i] = [2]float64{v, v}
			n++
		}
		return i, true
	})
}

func writeWav(t *testing.T, sr beep.SampleRate, d float64) string {
	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if nil != err {
		t.Fatal(err)
	}
	format := beep.Format{SampleRate: sr, NumChannels: 1, Precision: 2}
	if err := wav.Encode(f, tone(sr, d), format); nil != err {
		t.Fatal(err)
	}
	f.Close()
	return path
}

func TestLoadResamples(t *testing.T) {
	path := writeWav(t, 44100, 1.0)

	clip, err := Load(path, 22050)
	if nil != err {
		t.Fatal(err)
	}
	if clip.SampleRate != 22050 {
		t.Errorf("SampleRate = %d, want 22050", clip.SampleRate)
	}
	if math.Abs(clip.Duration-1.0) > 0.01 {
		t.Errorf("Duration = %v, want about 1s", clip.Duration)
	}
	peak := 0.0
	for _, s := range clip.Samples {
		peak = math.Max(peak, math.Abs(s))
	}
	if peak < 0.4 || peak > 0.6 {
		t.Errorf("peak = %v, want about 0.5", peak)
	}
}

func TestLoadNativeRate(t *testing.T) {
	path := writeWav(t, 22050, 0.5)
	clip, err := Load(path, 22050)
	if nil != err {
		t.Fatal(err)
	}
	if len(clip.Samples) != 11025 {
		t.Errorf("len(Samples) = %d, want 11025", len(clip.Samples))
	}
}

func TestUnsupported(t *testing.T) {
	for _, path := range []string{"song.flac", "song", "notes.csv"} {
		if _, err := Load(path, 22050); !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Load(%v) err = %v, want ErrUnsupportedFormat", path, err)
		}
	}
	for _, path := range []string{"a.mp3", "b.OGG", "c.wav"} {
		if !Supported(path) {
			t.Errorf("Supported(%v) = false", path)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.wav"), 22050); err == nil {
		t.Error("expected an error for a missing file")
	}
}
