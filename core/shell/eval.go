package shell

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/josephlewis42/seqsh/core/logger"
)

// ExitError is returned by Eval when an exit builtin runs. No expression after
// the builtin is evaluated.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// EventRecorder stores events about executed commands.
type EventRecorder interface {
	Record(event logger.LogType) error
}

// Evaluator walks expression trees, running their commands.
type Evaluator struct {
	Runner Runner

	// Stdout receives the output of commands that succeed.
	Stdout io.Writer
	// Stderr receives the error output of commands that fail and errors
	// starting commands.
	Stderr io.Writer

	// Recorder is optional.
	Recorder EventRecorder

	// FormatError renders errors starting a process, defaults to err.Error().
	FormatError func(err error) string

	// Exit is called by Run when the exit builtin is evaluated, it defaults to
	// os.Exit.
	Exit func(code int)
}

// NewEvaluator creates an evaluator that runs processes on the host and relays
// their output to the given writers.
func NewEvaluator(stdout, stderr io.Writer) *Evaluator {
	return &Evaluator{
		Runner: &ExecRunner{},
		Stdout: stdout,
		Stderr: stderr,
		Exit:   os.Exit,
	}
}

// Run evaluates expr and reports whether it succeeded. If the exit builtin is
// reached the Exit hook is called.
func (e *Evaluator) Run(expr Expression) bool {
	ok, err := e.Eval(expr)

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		exit := e.Exit
		if exit == nil {
			exit = os.Exit
		}
		exit(exitErr.Code)
		return false
	}
	if err != nil {
		fmt.Fprintln(e.Stderr, err)
		return false
	}

	return ok
}

// Eval evaluates expr and reports whether it succeeded. An *ExitError is
// returned when the exit builtin runs, other errors mean the tree was built
// with unknown node types.
func (e *Evaluator) Eval(expr Expression) (bool, error) {
	switch expr := expr.(type) {
	case *Leaf:
		return e.evalCommand(expr.Command)

	case *Compound:
		ok, err := e.Eval(expr.Left)
		if err != nil {
			return false, err
		}

		switch expr.Op {
		case Sequence:
			return e.Eval(expr.Right)
		case AndThen:
			if !ok {
				return false, nil
			}
			return e.Eval(expr.Right)
		default:
			return false, fmt.Errorf("unknown operator: %v", expr.Op)
		}

	default:
		return false, fmt.Errorf("unknown expression type: %T", expr)
	}
}

func (e *Evaluator) evalCommand(cmd Command) (bool, error) {
	switch cmd := cmd.(type) {
	case *Builtin:
		e.record(&logger.RunBuiltin{Command: cmd.Argv()})

		switch action := cmd.Action.(type) {
		case Exit:
			return false, &ExitError{Code: action.Code}
		default:
			return false, fmt.Errorf("%s: unknown action %T", cmd.Name, action)
		}

	case *Invoke:
		return e.invoke(cmd), nil

	default:
		return false, fmt.Errorf("unknown command type: %T", cmd)
	}
}

func (e *Evaluator) invoke(cmd *Invoke) bool {
	result, err := e.Runner.Run(cmd.Binary, cmd.Args)
	if err != nil {
		e.record(&logger.SpawnError{Command: cmd.Argv(), Error: err.Error()})
		fmt.Fprintln(e.Stderr, e.formatError(err))
		return false
	}

	e.record(&logger.RunCommand{Command: cmd.Argv(), ExitCode: int32(result.ExitCode)})
	if result.Success() {
		relay(e.Stdout, result.Stdout)
		return true
	}

	relay(e.Stderr, result.Stderr)
	return false
}

// relay copies captured output, a failed write doesn't change the command's
// result.
func relay(w io.Writer, output []byte) {
	if _, err := w.Write(output); err != nil {
		log.Printf("Error relaying output: %v", err)
	}
}

func (e *Evaluator) formatError(err error) string {
	if e.FormatError != nil {
		return e.FormatError(err)
	}
	return err.Error()
}

func (e *Evaluator) record(event logger.LogType) {
	if e.Recorder == nil {
		return
	}
	// The event log is best effort, failures don't affect the command.
	_ = e.Recorder.Record(event)
}
