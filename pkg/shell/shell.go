// Package shell executes command strings through the system shell and
// captures their outputs. Execution is blocking with no timeout: a hung
// command hangs the caller.
package shell

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"unicode/utf8"
)

// Output is the captured result of one shell command execution.
type Output struct {
	// StatusCode is the exit code, or nil when the process was killed by a
	// signal and never produced one.
	StatusCode *int
	// Stdout is the captured standard output.
	Stdout string
	// Stderr is the captured standard error.
	Stderr string
}

// DecodeError reports that a captured stream was not valid UTF-8. Invalid
// output is a hard error, never silently substituted.
type DecodeError struct {
	Stream string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("captured %s is not valid UTF-8", e.Stream)
}

// Run executes command through `sh -c`, blocking until it terminates.
// A non-zero exit is not an error; it is reported through Output.StatusCode.
// Failing to launch the shell at all, and invalid UTF-8 in either captured
// stream, are errors.
func Run(command string) (*Output, error) {
	cmd := exec.Command("sh", "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("run %q: %w", command, err)
		}
	}

	if !utf8.Valid(stdout.Bytes()) {
		return nil, &DecodeError{Stream: "stdout"}
	}
	if !utf8.Valid(stderr.Bytes()) {
		return nil, &DecodeError{Stream: "stderr"}
	}

	var status *int
	if code := cmd.ProcessState.ExitCode(); code >= 0 {
		status = &code
	}

	return &Output{
		StatusCode: status,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
	}, nil
}
