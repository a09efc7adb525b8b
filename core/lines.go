package core

import (
	"bufio"
	"io"
	"strings"
)

// ReaderLines reads newline delimited input without line editing, used for
// scripts and piped input. Lines have no length limit.
type ReaderLines struct {
	reader *bufio.Reader
	done   bool
}

var _ LineReader = (*ReaderLines)(nil)

// NewReaderLines reads lines from r.
func NewReaderLines(r io.Reader) *ReaderLines {
	return &ReaderLines{reader: bufio.NewReader(r)}
}

// Readline returns the next line without its line ending, or io.EOF when the
// input is exhausted. A final line without a newline is still returned.
func (r *ReaderLines) Readline() (string, error) {
	if r.done {
		return "", io.EOF
	}

	line, err := r.reader.ReadString('\n')
	switch {
	case err == io.EOF:
		r.done = true
		if line == "" {
			return "", io.EOF
		}
	case err != nil:
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// SetPrompt is a no-op, prompts are only shown to interactive users.
func (*ReaderLines) SetPrompt(string) {}
