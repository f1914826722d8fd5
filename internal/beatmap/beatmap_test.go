package beatmap

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssemble(t *testing.T) {
	avg := 500.0
	beats := []float64{0, 500, 1000}
	b := Assemble(Parts{
		Beats:           beats,
		Downbeats:       []float64{0},
		Tempo:           120,
		Duration:        1.5,
		SampleRate:      22050,
		AverageInterval: &avg,
		Source:          SourceAnalysis,
	})
	if b.BeatCount != 3 || len(b.Beats) != 3 {
		t.Errorf("BeatCount = %d, len(Beats) = %d, want 3", b.BeatCount, len(b.Beats))
	}
	if b.AverageBeatIntervalMs == nil || *b.AverageBeatIntervalMs != 500 {
		t.Errorf("AverageBeatIntervalMs = %v, want 500", b.AverageBeatIntervalMs)
	}

	// the record does not share memory with its inputs
	beats[0] = 42
	avg = 1
	if b.Beats[0] != 0 || *b.AverageBeatIntervalMs != 500 {
		t.Error("assembled map changed with its inputs")
	}
}

func TestAssembleTooFewBeats(t *testing.T) {
	avg := 500.0
	for _, beats := range [][]float64{nil, {250}} {
		b := Assemble(Parts{Beats: beats, AverageInterval: &avg})
		if b.AverageBeatIntervalMs != nil {
			t.Errorf("AverageBeatIntervalMs = %v for %d beats", *b.AverageBeatIntervalMs, len(beats))
		}
		if b.Beats == nil || b.Downbeats == nil {
			t.Error("empty sequences must encode as arrays")
		}
	}
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Assemble(Parts{Tempo: 0})); nil != err {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{`"beats": []`, `"downbeats": []`, `"average_beat_interval_ms": null`, `"beat_count": 0`} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %v:\n%v", want, out)
		}
	}
	if strings.Contains(out, "source") {
		t.Errorf("empty source should be omitted:\n%v", out)
	}
}

func TestFileRoundTrip(t *testing.T) {
	avg := 405.729166
	in := Assemble(Parts{
		Beats:           []float64{2803.625, 3209.354167},
		Downbeats:       []float64{2803.625},
		Tempo:           147.88,
		Duration:        3.209354167,
		SampleRate:      PlaceholderSampleRate,
		AverageInterval: &avg,
		Source:          SourceManual,
	})
	path := filepath.Join(t.TempDir(), "public", "beat_data.json")
	if err := WriteFile(path, in); nil != err {
		t.Fatal(err)
	}
	out, err := ReadFile(path)
	if nil != err {
		t.Fatal(err)
	}
	if out.Beats[1] != in.Beats[1] || out.Downbeats[0] != in.Downbeats[0] || out.Source != SourceManual ||
		*out.AverageBeatIntervalMs != avg || out.BeatCount != 2 {
		t.Errorf("read back %+v", out)
	}

	first, last := out.Span()
	if first != 2803.625 || last != 3209.354167 {
		t.Errorf("Span = %v, %v", first, last)
	}

	if err := WriteFile("", in); err != ErrEmptyPath {
		t.Errorf("err = %v, want ErrEmptyPath", err)
	}
}
