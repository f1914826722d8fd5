package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/beatmap/internal/analysis"
)

func TestParseConvert(t *testing.T) {
	cmd, err := Parse([]string{"convert", "notes.csv", "out/map.json"})
	if nil != err {
		t.Fatal(err)
	}
	if cmd != Convert.FullCommand() {
		t.Errorf("command = %v, want convert", cmd)
	}
	if *ConvertInput != "notes.csv" || *ConvertOutput != "out/map.json" {
		t.Errorf("input, output = %v, %v", *ConvertInput, *ConvertOutput)
	}
}

func TestParseDefaults(t *testing.T) {
	cmd, err := Parse([]string{"validate"})
	if nil != err {
		t.Fatal(err)
	}
	if cmd != Validate.FullCommand() {
		t.Errorf("command = %v, want validate", cmd)
	}
	if *ValidateInput != DefaultOutput {
		t.Errorf("input = %v, want %v", *ValidateInput, DefaultOutput)
	}
	if *LateFirstBeat != 10*time.Second {
		t.Errorf("late-first-beat = %v, want 10s", *LateFirstBeat)
	}
	if *Preview != 10 {
		t.Errorf("preview = %v, want 10", *Preview)
	}
}

func TestParseFlags(t *testing.T) {
	if _, err := Parse([]string{"validate", "--late-first-beat", "2s", "-n", "3", "map.json"}); nil != err {
		t.Fatal(err)
	}
	if *LateFirstBeat != 2*time.Second || *Preview != 3 || *ValidateInput != "map.json" {
		t.Errorf("late-first-beat = %v, preview = %v, input = %v", *LateFirstBeat, *Preview, *ValidateInput)
	}
}

func TestParseMissingAudio(t *testing.T) {
	if _, err := Parse([]string{"analyze"}); err == nil {
		t.Error("analyze without an audio file should fail")
	}
	if _, err := Parse([]string{"analyze", filepath.Join(t.TempDir(), "none.mp3")}); err == nil {
		t.Error("analyze with a missing audio file should fail")
	}
}

func TestLoadParams(t *testing.T) {
	p, err := LoadParams("")
	if nil != err {
		t.Fatal(err)
	}
	if p != analysis.DefaultParams() {
		t.Errorf("LoadParams(\"\") = %+v, want defaults", p)
	}

	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte("hop_length: 256\nstart_bpm: 140\n"), 0644); nil != err {
		t.Fatal(err)
	}
	p, err = LoadParams(path)
	if nil != err {
		t.Fatal(err)
	}
	want := analysis.DefaultParams()
	want.HopLength = 256
	want.StartBPM = 140
	if p != want {
		t.Errorf("LoadParams = %+v, want %+v", p, want)
	}
}

func TestLoadParamsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadParams(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	path := filepath.Join(dir, "bad.yaml")
	os.WriteFile(path, []byte("hop_length: [1, 2\n"), 0644)
	if _, err := LoadParams(path); err == nil {
		t.Error("expected an error for malformed yaml")
	}
}

func TestEncodeParams(t *testing.T) {
	a := EncodeParams(analysis.DefaultParams())
	p := analysis.DefaultParams()
	p.Tightness = 400
	if string(a) == string(EncodeParams(p)) {
		t.Error("different parameters encoded the same")
	}
}
