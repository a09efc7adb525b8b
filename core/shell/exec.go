package shell

import (
	"bytes"
	"errors"
	"os/exec"
)

// Result holds the captured output of a process that ran to completion.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner spawns a process and waits for it to exit.
//
// A process that starts and exits non-zero is reported through the Result,
// the error is reserved for processes that could not be started.
type Runner interface {
	Run(binary string, args []string) (*Result, error)
}

// ExecRunner runs processes on the host OS.
type ExecRunner struct {
	// If Dir is non-empty, the child runs in that directory.
	Dir string
	// If Env is non-nil it is the child's environment, otherwise the child
	// inherits the interpreter's.
	Env []string
}

var _ Runner = (*ExecRunner)(nil)

// Run the binary with a null stdin, buffering stdout and stderr until it exits.
func (e *ExecRunner) Run(binary string, args []string) (*Result, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.Command(binary, args...)
	cmd.Dir = e.Dir
	cmd.Env = e.Env
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
	case errors.As(err, &exitErr):
		// ExitCode is -1 when the child was killed by a signal.
		return &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes(), ExitCode: exitErr.ExitCode()}, nil
	default:
		return nil, err
	}
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(binary string, args []string) (*Result, error)

func (f RunnerFunc) Run(binary string, args []string) (*Result, error) {
	return f(binary, args)
}

var _ Runner = (RunnerFunc)(nil)
