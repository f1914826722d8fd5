package beatmap

// Parts are the derived pieces a beat map is composed from. All timestamps
// are already in milliseconds.
type Parts struct {
	Beats           []float64
	Downbeats       []float64
	Tempo           float64
	Duration        float64 // seconds
	SampleRate      int
	AverageInterval *float64 // ms
	Source          string
}

func Assemble(p Parts) *BeatMap {
	beats := make([]float64, len(p.Beats))
	copy(beats, p.Beats)
	downbeats := make([]float64, len(p.Downbeats))
	copy(downbeats, p.Downbeats)

	var avg *float64
	if len(beats) >= 2 && p.AverageInterval != nil {
		v := *p.AverageInterval
		avg = &v
	}

	return &BeatMap{
		Tempo:                 p.Tempo,
		DurationSeconds:       p.Duration,
		SampleRate:            p.SampleRate,
		Beats:                 beats,
		Downbeats:             downbeats,
		BeatCount:             len(beats),
		AverageBeatIntervalMs: avg,
		Source:                p.Source,
	}
}
