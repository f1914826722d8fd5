package validate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/beatmap/internal/beatmap"
	"github.com/pkg/errors"
)

// DefaultLateFirstBeat is how late a first beat may be before it is reported.
const DefaultLateFirstBeat = 10 * time.Second

var Required = []string{"tempo", "duration_seconds", "beats", "downbeats", "beat_count"}

type DefaultValidator struct {
	LateFirstBeat time.Duration
}

// document is filled in by the checks as they run.
type document struct {
	raw       map[string]json.RawMessage
	tempo     float64
	duration  float64
	beatCount float64
	beats     []float64
	downbeats []float64
	average   *float64
}

type check struct {
	pass string
	run  func(v *DefaultValidator, d *document) *Finding
}

var checks = []check{
	{"All required fields present", checkRequired},
	{"Data types are correct", checkTypes},
	{"", checkBeatCount},
	{"", checkNotEmpty},
	{"Beats are in ascending order", checkAscending},
	{"", checkFirstBeat},
	{"", checkLateFirstBeat},
	{"", checkDuration},
	{"Downbeats are valid", checkDownbeats},
}

func (v *DefaultValidator) Check(data []byte) (*Result, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); nil != err {
		return nil, errors.Wrap(err, "failed to load JSON")
	}
	return v.run(&document{raw: raw}), nil
}

func (v *DefaultValidator) Validate(b *beatmap.BeatMap) *Result {
	data, err := json.Marshal(b)
	if nil != err {
		return &Result{Failure: &Finding{Rule: WrongType, Severity: Fail, Message: err.Error()}}
	}
	res, err := v.Check(data)
	if nil != err {
		return &Result{Failure: &Finding{Rule: WrongType, Severity: Fail, Message: err.Error()}}
	}
	return res
}

func (v *DefaultValidator) run(d *document) *Result {
	res := &Result{Checks: []string{}, Warnings: []Finding{}}
	for _, c := range checks {
		f := c.run(v, d)
		if f == nil {
			if c.pass != "" {
				res.Checks = append(res.Checks, c.pass)
			}
			continue
		}
		if f.Severity == Fail {
			res.Failure = f
			return res
		}
		res.Warnings = append(res.Warnings, *f)
	}

	res.Passed = true
	res.Summary = &Summary{
		Beats:           d.beats,
		Downbeats:       d.downbeats,
		Tempo:           d.tempo,
		Duration:        d.duration,
		AverageInterval: d.average,
	}
	if d.average != nil && *d.average > 0 {
		res.Summary.ExpectedBPM = 60000 / *d.average
	}
	return res
}

func fail(rule Rule, format string, args ...interface{}) *Finding {
	return &Finding{Rule: rule, Severity: Fail, Message: fmt.Sprintf(format, args...)}
}

func warn(rule Rule, format string, args ...interface{}) *Finding {
	return &Finding{Rule: rule, Severity: Warn, Message: fmt.Sprintf(format, args...)}
}

func checkRequired(v *DefaultValidator, d *document) *Finding {
	missing := []string{}
	for _, field := range Required {
		if _, ok := d.raw[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fail(MissingFields, "Missing required fields: %v", strings.Join(missing, ", "))
	}
	return nil
}

func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}

func decode(raw json.RawMessage, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	return dec.Decode(v)
}

// toFloat accepts JSON numbers only. Magnitudes beyond float64 saturate
// to ±Inf instead of being rejected.
func toFloat(v interface{}) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if nil != err && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return f, true
}

func numbers(raw json.RawMessage) ([]float64, bool) {
	var items []interface{}
	if err := decode(raw, &items); nil != err {
		return nil, false
	}
	values := make([]float64, len(items))
	for i, item := range items {
		f, ok := toFloat(item)
		if !ok {
			return nil, false
		}
		values[i] = f
	}
	return values, true
}

func number(raw json.RawMessage) (float64, bool) {
	var v interface{}
	if err := decode(raw, &v); nil != err {
		return 0, false
	}
	return toFloat(v)
}

func checkTypes(v *DefaultValidator, d *document) *Finding {
	for _, field := range []string{"beats", "downbeats"} {
		if !isArray(d.raw[field]) {
			return fail(WrongType, "'%v' must be an array", field)
		}
	}
	var ok bool
	if d.beats, ok = numbers(d.raw["beats"]); !ok {
		return fail(WrongType, "'beats' must only contain numbers")
	}
	if d.downbeats, ok = numbers(d.raw["downbeats"]); !ok {
		return fail(WrongType, "'downbeats' must only contain numbers")
	}

	scalars := []struct {
		field string
		dst   *float64
	}{
		{"tempo", &d.tempo},
		{"duration_seconds", &d.duration},
		{"beat_count", &d.beatCount},
	}
	for _, s := range scalars {
		if *s.dst, ok = number(d.raw[s.field]); !ok {
			return fail(WrongType, "'%v' must be a number", s.field)
		}
	}

	if raw, present := d.raw["average_beat_interval_ms"]; present {
		if avg, ok := number(raw); ok {
			d.average = &avg
		}
	}
	return nil
}

func checkBeatCount(v *DefaultValidator, d *document) *Finding {
	if d.beatCount != float64(len(d.beats)) {
		return warn(BeatCountMismatch, "beat_count mismatch (%v vs %d)", d.beatCount, len(d.beats))
	}
	return nil
}

func checkNotEmpty(v *DefaultValidator, d *document) *Finding {
	if len(d.beats) == 0 {
		return fail(NoBeats, "No beats found")
	}
	return nil
}

func checkAscending(v *DefaultValidator, d *document) *Finding {
	for i := 0; i < len(d.beats)-1; i++ {
		if d.beats[i] >= d.beats[i+1] {
			f := fail(NotAscending, "Beats not in ascending order at index %d: %v >= %v", i, d.beats[i], d.beats[i+1])
			f.Index = i
			f.Values = []float64{d.beats[i], d.beats[i+1]}
			return f
		}
	}
	return nil
}

func checkFirstBeat(v *DefaultValidator, d *document) *Finding {
	if first := d.beats[0]; first < 0 {
		f := fail(NegativeFirstBeat, "First beat is negative: %v", first)
		f.Values = []float64{first}
		return f
	}
	return nil
}

func checkLateFirstBeat(v *DefaultValidator, d *document) *Finding {
	late := v.LateFirstBeat
	if late <= 0 {
		late = DefaultLateFirstBeat
	}
	limit := float64(late) / float64(time.Millisecond)
	if first := d.beats[0]; first > limit {
		f := warn(LateFirstBeat, "First beat is quite late: %.1fms (%.1fs)", first, first/1000)
		f.Values = []float64{first}
		return f
	}
	return nil
}

func checkDuration(v *DefaultValidator, d *document) *Finding {
	last := d.beats[len(d.beats)-1]
	if limit := d.duration * 1000; last > limit {
		f := warn(PastDuration, "Last beat (%.1fms) exceeds duration (%.1fms)", last, limit)
		f.Values = []float64{last, limit}
		return f
	}
	return nil
}

func checkDownbeats(v *DefaultValidator, d *document) *Finding {
	beats := make(map[float64]struct{}, len(d.beats))
	for _, b := range d.beats {
		beats[b] = struct{}{}
	}
	stray := []float64{}
	for _, db := range d.downbeats {
		if _, ok := beats[db]; !ok {
			stray = append(stray, db)
		}
	}
	if len(stray) > 0 {
		f := warn(StrayDownbeats, "%d downbeats are not in beats array", len(stray))
		f.Values = stray
		return f
	}
	return nil
}
