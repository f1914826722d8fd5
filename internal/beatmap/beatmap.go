package beatmap

// Sources recorded in the provenance tag.
const (
	SourceManual   = "manual_annotations"
	SourceAnalysis = "audio_analysis"
)

// Sample rate written for maps built from annotations, where it carries no meaning.
const PlaceholderSampleRate = 22050

type BeatMap struct {
	Tempo           float64   `json:"tempo" msgpack:"tempo"`
	DurationSeconds float64   `json:"duration_seconds" msgpack:"duration_seconds"`
	SampleRate      int       `json:"sample_rate" msgpack:"sample_rate"`
	Beats           []float64 `json:"beats" msgpack:"beats"`         // ms
	Downbeats       []float64 `json:"downbeats" msgpack:"downbeats"` // ms, each one a member of Beats
	BeatCount       int       `json:"beat_count" msgpack:"beat_count"`

	// nil when there are fewer than two beats, encoded as null
	AverageBeatIntervalMs *float64 `json:"average_beat_interval_ms" msgpack:"average_beat_interval_ms"`

	Source string `json:"source,omitempty" msgpack:"source,omitempty"`
}

// First and last beat in ms, zero when the map is empty.
func (b *BeatMap) Span() (float64, float64) {
	if len(b.Beats) == 0 {
		return 0, 0
	}
	return b.Beats[0], b.Beats[len(b.Beats)-1]
}
