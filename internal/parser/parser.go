package parser

import "io"

// Row is one line of an annotation file.
type Row struct {
	Time  float64 // seconds
	Label string  // "<bar>.<beat>"
}

// Annotations keeps the rows in file order as two parallel sequences.
type Annotations struct {
	Times  []float64
	Labels []string
}

type Parser interface {
	Parse(file string) (*Annotations, error)
	Read(r io.Reader) (*Annotations, error)
}
