package tap

import (
	"bytes"
	"strings"
	"testing"

	"git.lost.host/meutraa/beatmap/internal/downbeat"
	"git.lost.host/meutraa/beatmap/internal/render"
	"git.lost.host/meutraa/beatmap/internal/theme"
	"github.com/eiannone/keyboard"
)

func TestLabelerExplicitBars(t *testing.T) {
	l := NewLabeler(101, 0)
	taps := []bool{false, false, true, false, false, false, false, true}
	expected := []string{"101.1", "101.2", "102.1", "102.2", "102.3", "102.4", "102.5", "103.1"}
	for i, down := range taps {
		label, _ := l.Tap(down)
		if label != expected[i] {
			t.Errorf("tap %d = %v, want %v", i, label, expected[i])
		}
	}
}

func TestLabelerBeatsPerBar(t *testing.T) {
	l := NewLabeler(1, 3)
	out := []string{}
	for i := 0; i < 7; i++ {
		label, _ := l.Tap(false)
		out = append(out, label)
	}
	if strings.Join(out, " ") != "1.1 1.2 1.3 2.1 2.2 2.3 3.1" {
		t.Errorf("labels = %v", out)
	}

	// an early downbeat still opens the next bar
	label, beat := l.Tap(true)
	if label != "4.1" || beat != 1 {
		t.Errorf("downbeat = %v (%v), want 4.1", label, beat)
	}
}

func TestLabelerUndo(t *testing.T) {
	l := NewLabeler(7, 4)
	l.Tap(false)
	l.Tap(false)
	l.Undo()
	if bar, beat, ok := l.Position(); !ok || bar != 7 || beat != 1 {
		t.Errorf("Position = %v.%v %v, want 7.1", bar, beat, ok)
	}
	l.Undo()
	l.Undo()
	if label, _ := l.Tap(true); label != "7.1" {
		t.Errorf("first tap after undo = %v, want 7.1", label)
	}
}

func TestSessionHandle(t *testing.T) {
	var buf bytes.Buffer
	s := Session{
		Renderer: &render.DefaultRenderer{Out: &buf},
		Theme:    &theme.DefaultTheme{},
		Labeler:  NewLabeler(101, 0),
	}
	events := []struct {
		ev   keyboard.KeyEvent
		at   float64
		stop bool
	}{
		{keyboard.KeyEvent{Key: keyboard.KeySpace}, 1.0, false},
		{keyboard.KeyEvent{Rune: ' '}, 1.5, false},
		{keyboard.KeyEvent{Rune: 'x'}, 1.7, false},
		{keyboard.KeyEvent{Rune: 'b'}, 2.0, false},
		{keyboard.KeyEvent{Key: keyboard.KeySpace}, 2.5, false},
		{keyboard.KeyEvent{Rune: 'u'}, 2.6, false},
		{keyboard.KeyEvent{Key: keyboard.KeyEnter}, 2.0, false},
		{keyboard.KeyEvent{Key: keyboard.KeyEsc}, 3.0, true},
	}
	for i, e := range events {
		if stop := s.Handle(e.ev, e.at); stop != e.stop {
			t.Errorf("event %d stop = %v, want %v", i, stop, e.stop)
		}
	}

	rows := s.Rows()
	labels := []string{}
	for _, r := range rows {
		labels = append(labels, r.Label)
	}
	if strings.Join(labels, " ") != "101.1 101.2 102.1 103.1" {
		t.Fatalf("labels = %v", labels)
	}
	// a tap at an earlier position still lands after the previous one
	if rows[3].Time <= rows[2].Time {
		t.Errorf("times not ascending: %v", rows)
	}

	got := downbeat.FromLabels(labels)
	if len(got) != 3 || got[0] != 0 || got[1] != 2 || got[2] != 3 {
		t.Errorf("downbeats = %v", got)
	}

	s.draw("song.ogg", 30, 120)
	if !strings.Contains(buf.String(), "4 taps") || !strings.Contains(buf.String(), "00:30 / 02:00") {
		t.Errorf("draw output = %q", buf.String())
	}
}
