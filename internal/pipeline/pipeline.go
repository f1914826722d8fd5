// Package pipeline composes annotation parsing or audio analysis, downbeat
// classification and interval statistics into a beat map.
package pipeline

import (
	"git.lost.host/meutraa/beatmap/internal/analysis"
	"git.lost.host/meutraa/beatmap/internal/audio"
	"git.lost.host/meutraa/beatmap/internal/beatmap"
	"git.lost.host/meutraa/beatmap/internal/downbeat"
	"git.lost.host/meutraa/beatmap/internal/parser"
	"git.lost.host/meutraa/beatmap/internal/tempo"
)

// Run is one derived beat map together with the diagnostics that are
// reported but not persisted.
type Run struct {
	Map       *beatmap.BeatMap
	Stats     tempo.Stats
	HasStats  bool
	Downbeats []int    // indices into Map.Beats
	Labels    []string // manual path only
}

// IsDownbeat reports whether beat i was classified as a downbeat.
func (r *Run) IsDownbeat(i int) bool {
	for _, d := range r.Downbeats {
		if d == i {
			return true
		}
		if d > i {
			break
		}
	}
	return false
}

// FromAnnotations derives the map from labeled rows. Tempo comes from the
// mean interval and the duration is the time of the last row.
func FromAnnotations(ann *parser.Annotations) *Run {
	stats, ok := tempo.Intervals(ann.Times)
	indices := downbeat.FromLabels(ann.Labels)
	beats := tempo.Milliseconds(ann.Times)

	duration := 0.0
	if len(ann.Times) > 0 {
		duration = ann.Times[len(ann.Times)-1]
	}

	return &Run{
		Map: beatmap.Assemble(beatmap.Parts{
			Beats:           beats,
			Downbeats:       downbeat.Pick(beats, indices),
			Tempo:           stats.BPM(),
			Duration:        duration,
			SampleRate:      beatmap.PlaceholderSampleRate,
			AverageInterval: stats.AverageMs(),
			Source:          beatmap.SourceManual,
		}),
		Stats:     stats,
		HasStats:  ok,
		Downbeats: indices,
		Labels:    ann.Labels,
	}
}

// FromAnalysis derives the map from an analyzer result. The tempo is the
// analyzer's own estimate, not the interval mean.
func FromAnalysis(res *analysis.Result, duration, percentile float64) (*Run, error) {
	strengths, err := downbeat.Strengths(res.Onset, res.Frames)
	if nil != err {
		return nil, err
	}
	indices := downbeat.FromStrengths(strengths, percentile)

	times := res.Times()
	stats, ok := tempo.Intervals(times)
	beats := tempo.Milliseconds(times)

	return &Run{
		Map: beatmap.Assemble(beatmap.Parts{
			Beats:           beats,
			Downbeats:       downbeat.Pick(beats, indices),
			Tempo:           res.Tempo,
			Duration:        duration,
			SampleRate:      res.SampleRate,
			AverageInterval: stats.AverageMs(),
			Source:          beatmap.SourceAnalysis,
		}),
		Stats:     stats,
		HasStats:  ok,
		Downbeats: indices,
	}, nil
}

// Analyze runs the analyzer over a decoded clip.
func Analyze(a analysis.Analyzer, clip *audio.Clip, percentile float64) (*Run, error) {
	res, err := a.Analyze(clip.Samples, clip.SampleRate)
	if nil != err {
		return nil, err
	}
	return FromAnalysis(res, clip.Duration, percentile)
}

// FromMap rebuilds the diagnostics of a previously derived map.
func FromMap(b *beatmap.BeatMap) *Run {
	times := make([]float64, len(b.Beats))
	for i, ms := range b.Beats {
		times[i] = ms / 1000
	}
	stats, ok := tempo.Intervals(times)

	indices := []int{}
	j := 0
	for i, beat := range b.Beats {
		if j < len(b.Downbeats) && b.Downbeats[j] == beat {
			indices = append(indices, i)
			j++
		}
	}
	return &Run{Map: b, Stats: stats, HasStats: ok, Downbeats: indices}
}
