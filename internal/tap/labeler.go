package tap

import "strconv"

// Labeler numbers taps as "<bar>.<beat>".
type Labeler struct {
	BeatsPerBar int // 0 leaves new bars to explicit downbeat taps

	firstBar int
	history  [][2]int
}

func NewLabeler(firstBar, beatsPerBar int) *Labeler {
	return &Labeler{BeatsPerBar: beatsPerBar, firstBar: firstBar}
}

// Position of the latest tap, ok is false before the first one.
func (l *Labeler) Position() (bar, beat int, ok bool) {
	if len(l.history) == 0 {
		return l.firstBar, 0, false
	}
	last := l.history[len(l.history)-1]
	return last[0], last[1], true
}

// Tap advances by one beat, or to the start of the next bar when downbeat is
// set. The first tap always opens the first bar.
func (l *Labeler) Tap(downbeat bool) (string, int) {
	bar, beat, started := l.Position()
	switch {
	case !started:
		bar, beat = l.firstBar, 1
	case downbeat:
		bar, beat = bar+1, 1
	default:
		beat++
		if l.BeatsPerBar > 0 && beat > l.BeatsPerBar {
			bar, beat = bar+1, 1
		}
	}
	l.history = append(l.history, [2]int{bar, beat})
	return Label(bar, beat), beat
}

func (l *Labeler) Undo() {
	if len(l.history) > 0 {
		l.history = l.history[:len(l.history)-1]
	}
}

func Label(bar, beat int) string {
	return strconv.Itoa(bar) + "." + strconv.Itoa(beat)
}
