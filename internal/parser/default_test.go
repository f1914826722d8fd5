package parser

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestRead(t *testing.T) {
	p := DefaultParser{}
	ann, err := p.Read(strings.NewReader("TIME,LABEL\n2.803625000,101.1\n3.209354167,101.2\n1.5,101.3\n"))
	if nil != err {
		t.Fatal(err)
	}
	// file order is kept even when it is not temporal order
	times := []float64{2.803625, 3.209354167, 1.5}
	labels := []string{"101.1", "101.2", "101.3"}
	if len(ann.Times) != len(times) || len(ann.Labels) != len(labels) {
		t.Fatalf("got %d times and %d labels", len(ann.Times), len(ann.Labels))
	}
	for i := range times {
		if ann.Times[i] != times[i] || ann.Labels[i] != labels[i] {
			t.Errorf("row %d = (%v, %v), want (%v, %v)", i, ann.Times[i], ann.Labels[i], times[i], labels[i])
		}
	}
}

func TestReadColumnsByName(t *testing.T) {
	p := DefaultParser{}
	ann, err := p.Read(strings.NewReader("\ufeffLABEL,NOTE,TIME\n1.1,intro, 0.25\n"))
	if nil != err {
		t.Fatal(err)
	}
	if ann.Times[0] != 0.25 || ann.Labels[0] != "1.1" {
		t.Errorf("row = (%v, %v), want (0.25, 1.1)", ann.Times[0], ann.Labels[0])
	}
}

func TestReadHeaderOnly(t *testing.T) {
	p := DefaultParser{}
	ann, err := p.Read(strings.NewReader("TIME,LABEL\n"))
	if nil != err {
		t.Fatal(err)
	}
	if len(ann.Times) != 0 {
		t.Errorf("got %d rows, want none", len(ann.Times))
	}
}

func TestReadErrors(t *testing.T) {
	tests := map[string]error{
		"":                             ErrMissingColumn,
		"TIME\n1.0\n":                  ErrMissingColumn,
		"LABEL\n1.1\n":                 ErrMissingColumn,
		"TIME,LABEL\nabc,101.1\n":      ErrMalformedRow,
		"TIME,LABEL\n,101.1\n":         ErrMalformedRow,
		"TIME,LABEL\n1.0\n":            ErrMalformedRow,
		"TIME,LABEL\nNaN,101.1\n":      ErrMalformedRow,
		"TIME,LABEL\n1.0,101.1\n\"x\n": ErrMalformedRow,
	}
	p := DefaultParser{}
	for in, expected := range tests {
		_, err := p.Read(strings.NewReader(in))
		if !errors.Is(err, expected) {
			t.Errorf("Read(%q) err = %v, want %v", in, err, expected)
		}
	}
}

func TestWriteRead(t *testing.T) {
	rows := []Row{{Time: 2.803625, Label: "101.1"}, {Time: 3.209354167, Label: "101.2"}}
	var buf bytes.Buffer
	if err := Write(&buf, rows); nil != err {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "TIME,LABEL\n2.803625000,101.1\n") {
		t.Errorf("unexpected output %q", buf.String())
	}

	p := DefaultParser{}
	ann, err := p.Read(&buf)
	if nil != err {
		t.Fatal(err)
	}
	for i, row := range rows {
		if ann.Times[i] != row.Time || ann.Labels[i] != row.Label {
			t.Errorf("row %d = (%v, %v), want %v", i, ann.Times[i], ann.Labels[i], row)
		}
	}
}
