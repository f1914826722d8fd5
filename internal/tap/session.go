// Package tap records annotations by tapping along to a playing track.
package tap

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"git.lost.host/meutraa/beatmap/internal/audio"
	"git.lost.host/meutraa/beatmap/internal/parser"
	"git.lost.host/meutraa/beatmap/internal/render"
	"git.lost.host/meutraa/beatmap/internal/theme"
	"github.com/eiannone/keyboard"
	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

const framePeriod = time.Second / 30

type Session struct {
	Renderer render.Renderer
	Theme    theme.Theme
	Labeler  *Labeler
	Delay    time.Duration

	rows     []parser.Row
	lastBeat int
}

func (s *Session) Rows() []parser.Row {
	return s.rows
}

// Handle applies one key press at the given playback time in seconds and
// reports whether tapping should stop.
func (s *Session) Handle(ev keyboard.KeyEvent, at float64) bool {
	switch {
	case ev.Key == keyboard.KeyEsc || ev.Key == keyboard.KeyCtrlC || ev.Rune == 'q':
		return true
	case ev.Key == keyboard.KeySpace || ev.Rune == ' ':
		s.tap(at, false)
	case ev.Key == keyboard.KeyEnter || ev.Rune == 'b':
		s.tap(at, true)
	case ev.Rune == 'u':
		if len(s.rows) > 0 {
			s.rows = s.rows[:len(s.rows)-1]
			s.Labeler.Undo()
			_, s.lastBeat, _ = s.Labeler.Position()
		}
	}
	return false
}

func (s *Session) tap(at float64, downbeat bool) {
	if n := len(s.rows); n > 0 && at <= s.rows[n-1].Time {
		// two taps inside one speaker buffer
		at = math.Nextafter(s.rows[n-1].Time, math.Inf(1))
	}
	label, beat := s.Labeler.Tap(downbeat)
	s.lastBeat = beat
	s.rows = append(s.rows, parser.Row{Time: at, Label: label})
}

// Run plays the track until it ends or tapping is stopped and returns the
// recorded rows.
func (s *Session) Run(path string) ([]parser.Row, error) {
	streamer, format, err := audio.Open(path)
	if nil != err {
		return nil, err
	}
	defer streamer.Close()

	// Taps are heard one speaker buffer after the streamer position
	latency := framePeriod
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(latency)); nil != err {
		return nil, errors.Wrap(err, "unable to open speaker")
	}
	defer speaker.Clear()

	keys, err := keyboard.GetKeys(16)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open keyboard")
	}
	defer keyboard.Close()

	if err := s.Renderer.Init(); nil != err {
		return nil, err
	}
	defer s.Renderer.Deinit()

	done := make(chan struct{})
	timer := time.AfterFunc(s.Delay, func() {
		speaker.Play(beep.Seq(streamer, beep.Callback(func() {
			close(done)
		})))
	})
	defer timer.Stop()

	position := func() float64 {
		speaker.Lock()
		p := streamer.Position()
		speaker.Unlock()
		return math.Max(0, (format.SampleRate.D(p) - latency).Seconds())
	}
	total := format.SampleRate.D(streamer.Len()).Seconds()

	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()
	for {
		select {
		case ev := <-keys:
			if nil != ev.Err {
				return s.rows, errors.Wrap(ev.Err, "unable to read keyboard")
			}
			if s.Handle(ev, position()) {
				return s.rows, nil
			}
		case <-done:
			return s.rows, nil
		case <-ticker.C:
			s.draw(filepath.Base(path), position(), total)
		}
	}
}

func clock(seconds float64) string {
	d := time.Duration(seconds * float64(time.Second))
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (s *Session) draw(name string, at, total float64) {
	r, th := s.Renderer, s.Theme
	columns, _ := r.Size()

	for row := 2; row <= 8; row++ {
		r.Clear(row)
	}
	r.Fill(2, 3, th.Heading("Tapping "+name))

	width := columns - 20
	if width < 10 {
		width = 10
	}
	filled := 0
	if total > 0 {
		filled = int(math.Min(1, at/total) * float64(width))
	}
	bar := "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
	r.Fill(4, 3, fmt.Sprintf("%v %v / %v", bar, clock(at), clock(total)))

	label := "-"
	if n := len(s.rows); n > 0 {
		label = s.rows[n-1].Label
	}
	r.Fill(6, 3, fmt.Sprintf("%v  %v taps", th.Beat(s.lastBeat, fmt.Sprintf("%8v", label)), len(s.rows)))
	r.Fill(8, 3, th.Dim("space beat · b/enter new bar · u undo · q/esc stop"))
	r.Flush()
}
