package render

import (
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// DefaultRenderer buffers cursor addressed writes and emits them on Flush.
type DefaultRenderer struct {
	Out    io.Writer
	buffer strings.Builder
}

func (r *DefaultRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *DefaultRenderer) Init() error {
	r.buffer.WriteString("\033[?1049h") // Enable alternate buffer
	r.buffer.WriteString("\033[?25l")   // Make the cursor invisible
	r.buffer.WriteString("\033[2J")     // Clear the screen
	return r.Flush()
}

func (r *DefaultRenderer) Deinit() error {
	r.buffer.WriteString("\033[?1049l") // Disable alternate buffer
	r.buffer.WriteString("\033[?25h")   // Make the cursor visible
	return r.Flush()
}

// Size of the terminal, 80x24 when the output is not one.
func (r *DefaultRenderer) Size() (int, int) {
	if f, ok := r.out().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if columns, rows, err := term.GetSize(int(f.Fd())); nil == err {
			return columns, rows
		}
	}
	return 80, 24
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

// Clear erases a whole row.
func (r *DefaultRenderer) Clear(row int) {
	r.Fill(row, 1, "\033[2K")
}

func (r *DefaultRenderer) Flush() error {
	_, err := io.WriteString(r.out(), r.buffer.String())
	r.buffer.Reset()
	return err
}
