package core

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/seqsh/core/config"
	"github.com/josephlewis42/seqsh/core/logger"
	"github.com/josephlewis42/seqsh/core/shell"
)

// LineReader is a source of input lines.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

var _ LineReader = (*readline.Instance)(nil)

// Shell reads lines, parses them and evaluates the result.
type Shell struct {
	Evaluator *shell.Evaluator
	Lines     LineReader
	Color     *ColorPrinter
	ErrColor  *ColorPrinter

	prompt  string
	events  *logger.SessionLogger
	toClose listCloser
}

// Options configure the input and output of a Shell.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Interactive uses readline with line editing and history, otherwise
	// lines are read from Stdin without a prompt.
	Interactive bool

	// Source names where the lines come from for the event log.
	Source string
}

// NewShell creates a shell from the configuration.
func NewShell(cfg *config.Configuration, opts Options) (*Shell, error) {
	s := &Shell{
		Evaluator: shell.NewEvaluator(opts.Stdout, opts.Stderr),
		Color:     NewColorPrinter(cfg.Color, opts.Stdout),
		ErrColor:  NewColorPrinter(cfg.Color, opts.Stderr),
		prompt:    cfg.Prompt,
	}
	s.Evaluator.FormatError = func(err error) string {
		return s.ErrColor.Sprint(err.Error(), ColorError...)
	}

	if cfg.EventLog {
		fd, err := cfg.OpenEventLog()
		if err != nil {
			return nil, fmt.Errorf("opening event log: %w", err)
		}
		s.toClose = append(s.toClose, fd)
		s.events = logger.NewJSONLinesLogRecorder(fd).NewSession()
		s.Evaluator.Recorder = s.events
	}

	if opts.Interactive {
		rl, err := newReadline(cfg, opts)
		if err != nil {
			s.toClose.Close()
			return nil, err
		}
		s.Lines = rl
		s.toClose = append(s.toClose, rl)
	} else {
		s.Lines = NewReaderLines(opts.Stdin)
	}

	s.record(&logger.Session{Interactive: opts.Interactive, Source: opts.Source})
	return s, nil
}

func newReadline(cfg *config.Configuration, opts Options) (*readline.Instance, error) {
	rlCfg := &readline.Config{
		Stdin:        readline.NewCancelableStdin(opts.Stdin),
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		HistoryFile:  cfg.HistoryPath(),
		HistoryLimit: cfg.HistoryLimit,
	}

	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	return readline.NewEx(rlCfg)
}

// Prompt returns the text shown before reading a line.
func (s *Shell) Prompt() string {
	return s.Color.Sprint(s.prompt, ColorPrompt...)
}

// Run reads and evaluates lines until the input is closed or the exit
// builtin runs. It returns the code the process should exit with.
func (s *Shell) Run() int {
	for {
		s.Lines.SetPrompt(s.Prompt())
		line, err := s.Lines.Readline()

		switch {
		case err == io.EOF:
			return 0 // Input closed, quit.

		case err == readline.ErrInterrupt:
			// Interrupt clears line.
			continue

		case err != nil:
			log.Printf("Error readline: %v", err)
			return 1
		}

		if code, exited := s.RunLine(line); exited {
			return code
		}
	}
}

// RunLine parses and evaluates a single line. If the line ran the exit
// builtin, exited is true and code holds the exit code.
func (s *Shell) RunLine(line string) (code int, exited bool) {
	expr, err := shell.Parse(line)
	switch {
	case errors.Is(err, shell.ErrEmptyLine):
		return 0, false
	case err != nil:
		fmt.Fprintln(s.Evaluator.Stderr, s.Evaluator.FormatError(err))
		return 0, false
	}

	_, err = s.Evaluator.Eval(expr)
	var exitErr *shell.ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.Code, true
	case err != nil:
		fmt.Fprintln(s.Evaluator.Stderr, s.Evaluator.FormatError(err))
	}

	return 0, false
}

// SessionID returns the event log session, empty if events aren't logged.
func (s *Shell) SessionID() string {
	if s.events == nil {
		return ""
	}
	return s.events.SessionID()
}

func (s *Shell) record(event logger.LogType) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(event); err != nil {
		log.Printf("Error recording event: %v", err)
	}
}

// Close releases the terminal and any open logs.
func (s *Shell) Close() error {
	s.record(&logger.Session{Closed: true})
	return s.toClose.Close()
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
