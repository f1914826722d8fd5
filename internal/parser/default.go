package parser

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Header columns of an annotation file.
const (
	TimeColumn  = "TIME"
	LabelColumn = "LABEL"
)

var (
	ErrMalformedRow  = errors.New("malformed row")
	ErrMissingColumn = errors.New("missing column")
)

type DefaultParser struct{}

func (p *DefaultParser) Parse(file string) (*Annotations, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open annotations")
	}
	defer f.Close()
	return p.Read(f)
}

// Read keeps the rows in the order they appear, rows are never sorted.
// Columns other than TIME and LABEL are ignored.
func (p *DefaultParser) Read(r io.Reader) (*Annotations, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.Wrap(ErrMissingColumn, "empty annotation file")
	}
	if nil != err {
		return nil, errors.Wrap(err, "unable to read header")
	}

	timeIdx, labelIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case TimeColumn:
			timeIdx = i
		case LabelColumn:
			labelIdx = i
		}
	}
	if timeIdx < 0 {
		return nil, errors.Wrap(ErrMissingColumn, TimeColumn)
	}
	if labelIdx < 0 {
		return nil, errors.Wrap(ErrMissingColumn, LabelColumn)
	}

	ann := &Annotations{Times: []float64{}, Labels: []string{}}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if nil != err {
			return nil, errors.Wrap(ErrMalformedRow, err.Error())
		}
		line, _ := reader.FieldPos(0)

		if timeIdx >= len(record) || labelIdx >= len(record) {
			return nil, errors.Wrapf(ErrMalformedRow, "line %d: expected %d fields, got %d", line, len(header), len(record))
		}

		t, err := strconv.ParseFloat(strings.TrimSpace(record[timeIdx]), 64)
		if nil != err || math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, errors.Wrapf(ErrMalformedRow, "line %d: time %q is not a number", line, record[timeIdx])
		}

		ann.Times = append(ann.Times, t)
		ann.Labels = append(ann.Labels, strings.TrimSpace(record[labelIdx]))
	}

	return ann, nil
}

// Write emits rows in the same format Read accepts.
func Write(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{TimeColumn, LabelColumn}); nil != err {
		return errors.Wrap(err, "unable to write header")
	}
	for _, row := range rows {
		if err := writer.Write([]string{strconv.FormatFloat(row.Time, 'f', 9, 64), row.Label}); nil != err {
			return errors.Wrap(err, "unable to write row")
		}
	}
	writer.Flush()
	return errors.Wrap(writer.Error(), "unable to flush annotations")
}

func WriteFile(path string, rows []Row) error {
	f, err := os.Create(path)
	if nil != err {
		return errors.Wrapf(err, "unable to create %v", path)
	}
	if err := Write(f, rows); nil != err {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "unable to write %v", path)
}
