package store

import (
	"time"

	"git.lost.host/meutraa/beatmap/internal/beatmap"
)

// Store keeps derived beat maps and validation verdicts across runs. It is
// optional, every run works without one.
type Store interface {
	Init(path string) error
	Deinit()

	// Save a derived map under the sum of its input
	SaveBeatMap(sum, path string, b *beatmap.BeatMap) error

	// Load the most recent map for an input sum, ErrNotFound when absent
	LoadBeatMap(sum string) (*beatmap.BeatMap, error)

	SaveValidation(sum, path string, passed bool, warnings int) error

	// Most recent entries of both kinds first
	History(limit int) ([]Entry, error)
}

type Kind string

const (
	KindBeatMap    Kind = "beatmap"
	KindValidation Kind = "validation"
)

type Entry struct {
	Kind     Kind
	Sum      string
	Path     string
	Created  time.Time
	Source   string  // beat maps only
	Beats    int     // beat maps only
	Tempo    float64 // beat maps only
	Passed   bool    // validations only
	Warnings int     // validations only
}
