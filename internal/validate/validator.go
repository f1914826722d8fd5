// Package validate checks beat map documents against the structural and
// temporal rules their consumers rely on.
package validate

import "git.lost.host/meutraa/beatmap/internal/beatmap"

type Validator interface {
	// Check parses and validates a JSON document. Only unparseable input is
	// an error, rule violations are reported in the Result.
	Check(data []byte) (*Result, error)
	Validate(b *beatmap.BeatMap) *Result
}

type Severity int

const (
	Warn Severity = iota
	Fail
)

func (s Severity) String() string {
	if s == Fail {
		return "FAIL"
	}
	return "WARN"
}

type Rule int

const (
	MissingFields Rule = iota + 1
	WrongType
	BeatCountMismatch
	NoBeats
	NotAscending
	NegativeFirstBeat
	LateFirstBeat
	PastDuration
	StrayDownbeats
)

type Finding struct {
	Rule     Rule
	Severity Severity
	Message  string
	Index    int       // first offending index, NotAscending only
	Values   []float64 // offending values
}

type Summary struct {
	Beats           []float64
	Downbeats       []float64
	Tempo           float64
	Duration        float64 // seconds
	AverageInterval *float64
	ExpectedBPM     float64 // 60000 / AverageInterval, 0 when unknown
}

type Result struct {
	Passed   bool
	Checks   []string // checks that produced no finding
	Warnings []Finding
	Failure  *Finding
	Summary  *Summary // set when Passed
}
