package render

import (
	"fmt"
	"io"
	"strings"

	"git.lost.host/meutraa/beatmap/internal/audio"
	"git.lost.host/meutraa/beatmap/internal/pipeline"
	"git.lost.host/meutraa/beatmap/internal/store"
	"git.lost.host/meutraa/beatmap/internal/theme"
	"git.lost.host/meutraa/beatmap/internal/validate"
	"github.com/dustin/go-humanize"
)

// Beats listed by the validation summary.
const validationPreview = 5

// Report writes the human readable output of each command. It is not part
// of any pass or fail decision.
type Report struct {
	Out     io.Writer
	Theme   theme.Theme
	Preview int
}

func (r *Report) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.Out, format, args...)
}

func (r *Report) preview(count int) int {
	if r.Preview < count {
		return r.Preview
	}
	return count
}

func (r *Report) Analysis(clip *audio.Clip, run *pipeline.Run, output string) {
	b := run.Map
	r.printf("Sample rate: %v Hz\n", clip.SampleRate)
	r.printf("Duration: %.2f seconds\n", clip.Duration)
	r.printf("Detected tempo: %.2f BPM\n", b.Tempo)
	r.printf("Number of beats detected: %v\n", b.BeatCount)
	if run.HasStats {
		r.printf("Average beat interval: %.3f seconds (%.1f ms)\n", run.Stats.Mean, run.Stats.Mean*1000)
		r.printf("Beat interval std dev: %.3f seconds\n", run.Stats.Std)
	}
	r.printf("Number of downbeats detected: %v\n", len(b.Downbeats))

	r.printf("\n%v\n", r.Theme.Pass("✓ Beat analysis complete!"))
	r.printf("  - %v beats detected\n", b.BeatCount)
	r.printf("  - %v downbeats detected\n", len(b.Downbeats))
	r.printf("  - Tempo: %.2f BPM\n", b.Tempo)
	r.printf("  - Data saved to: %v\n", output)

	n := r.preview(len(b.Beats))
	r.printf("\n%v\n", r.Theme.Heading(fmt.Sprintf("First %d beat timestamps (ms):", n)))
	for i := 0; i < n; i++ {
		marker := ""
		if run.IsDownbeat(i) {
			marker = r.Theme.Beat(1, " (downbeat)")
		}
		r.printf("  Beat %d: %.1f ms%v\n", i+1, b.Beats[i], marker)
	}
}

func (r *Report) Conversion(run *pipeline.Run, output string) {
	b := run.Map
	r.printf("Loaded %v annotations\n", b.BeatCount)
	r.printf("Identified %v downbeats (bar starts)\n", len(b.Downbeats))

	avg := 0.0
	if b.AverageBeatIntervalMs != nil {
		avg = *b.AverageBeatIntervalMs
	}
	r.printf("\n%v\n", r.Theme.Pass("✓ Conversion complete!"))
	r.printf("  - %v beats\n", b.BeatCount)
	r.printf("  - %v downbeats\n", len(b.Downbeats))
	r.printf("  - Tempo: %.2f BPM\n", b.Tempo)
	r.printf("  - Duration: %.2f seconds\n", b.DurationSeconds)
	r.printf("  - Avg interval: %.1f ms\n", avg)
	r.printf("  - Data saved to: %v\n", output)

	n := r.preview(len(b.Beats))
	r.printf("\n%v\n", r.Theme.Heading(fmt.Sprintf("First %d beats (ms):", n)))
	for i := 0; i < n; i++ {
		marker := ""
		if run.IsDownbeat(i) {
			marker = r.Theme.Beat(1, " (downbeat)")
		}
		label := ""
		if i < len(run.Labels) {
			label = run.Labels[i]
		}
		r.printf("  Beat %d: %.1f ms (label: %v)%v\n", i+1, b.Beats[i], label, marker)
	}

	if run.HasStats && len(run.Stats.Intervals) > 1 {
		r.printf("\n%v\n", r.Theme.Heading("Interval statistics:"))
		r.printf("  - Min: %.1f ms\n", run.Stats.Min*1000)
		r.printf("  - Max: %.1f ms\n", run.Stats.Max*1000)
		r.printf("  - Std dev: %.1f ms\n", run.Stats.Std*1000)
	}
}

func (r *Report) Validation(path string, res *validate.Result) {
	r.printf("Validating: %v\n\n", path)
	for _, c := range res.Checks {
		r.printf("%v\n", r.Theme.Pass("✓ "+c))
	}
	for _, w := range res.Warnings {
		r.printf("%v\n", r.Theme.Warn("⚠ Warning: "+w.Message))
	}
	if res.Failure != nil {
		r.printf("%v\n", r.Theme.Fail("✗ "+res.Failure.Message))
		return
	}

	s := res.Summary
	rule := strings.Repeat("=", 50)
	r.printf("\n%v\n%v\n%v\n", rule, r.Theme.Heading("SUMMARY"), rule)
	r.printf("  Total beats: %v\n", len(s.Beats))
	r.printf("  Downbeats: %v\n", len(s.Downbeats))
	r.printf("  Tempo: %.2f BPM\n", s.Tempo)
	r.printf("  Duration: %.2fs\n", s.Duration)
	first, last := s.Beats[0], s.Beats[len(s.Beats)-1]
	r.printf("  First beat: %.1fms (%.2fs)\n", first, first/1000)
	r.printf("  Last beat: %.1fms (%.2fs)\n", last, last/1000)
	if s.AverageInterval != nil {
		r.printf("  Avg interval: %.1fms\n", *s.AverageInterval)
		if s.ExpectedBPM > 0 {
			r.printf("  Expected BPM from interval: %.2f\n", s.ExpectedBPM)
		}
	}

	downbeats := make(map[float64]bool, len(s.Downbeats))
	for _, d := range s.Downbeats {
		downbeats[d] = true
	}
	n := validationPreview
	if len(s.Beats) < n {
		n = len(s.Beats)
	}
	r.printf("\n  First %d beats:\n", n)
	for i := 0; i < n; i++ {
		marker := ""
		if downbeats[s.Beats[i]] {
			marker = r.Theme.Beat(1, " [DOWNBEAT]")
		}
		r.printf("    %d. %.1fms%v\n", i+1, s.Beats[i], marker)
	}

	r.printf("\n  Intervals between first %d beats:\n", n)
	for i := 0; i < n-1; i++ {
		r.printf("    Beat %d → %d: %.1fms\n", i+1, i+2, s.Beats[i+1]-s.Beats[i])
	}

	r.printf("\n%v\n", r.Theme.Pass("✓ Validation passed!"))
}

func (r *Report) History(entries []store.Entry) {
	if len(entries) == 0 {
		r.printf("%v\n", r.Theme.Dim("Nothing stored yet"))
		return
	}
	for _, e := range entries {
		when := r.Theme.Dim(fmt.Sprintf("%-16v", humanize.Time(e.Created)))
		switch e.Kind {
		case store.KindBeatMap:
			r.printf("%v %-10v %5v beats %7.2f BPM  %v  %v\n", when, e.Kind, e.Beats, e.Tempo, e.Source, e.Path)
		case store.KindValidation:
			verdict := r.Theme.Pass("passed")
			if !e.Passed {
				verdict = r.Theme.Fail("failed")
			}
			r.printf("%v %-10v %v, %v warnings  %v\n", when, e.Kind, verdict, e.Warnings, e.Path)
		}
	}
}
