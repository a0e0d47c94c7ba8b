package step

import (
	"fmt"
	"strings"

	"railfuzz/pkg/shell"
)

// Kind classifies which lifecycle phase a StepError came from.
type Kind int

const (
	KindSetup Kind = iota
	KindPlan
	KindCheck
	KindTest
)

func (k Kind) String() string {
	switch k {
	case KindSetup:
		return "setup"
	case KindPlan:
		return "plan"
	case KindCheck:
		return "check"
	case KindTest:
		return "test"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// StepError is a step-lifecycle failure. It is always fatal for the run and
// carries the triggering command output when one exists.
type StepError struct {
	Kind        Kind
	Description string
	// Output is the captured output of the command that triggered the
	// failure; nil when the phase produced none (setup).
	Output *shell.Output
}

func (e *StepError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step failed: %s.\ndescription: %s.", e.Kind, e.Description)
	if e.Output != nil {
		status := "none"
		if e.Output.StatusCode != nil {
			status = fmt.Sprintf("%d", *e.Output.StatusCode)
		}
		fmt.Fprintf(&b, "\nstatus code: %s.\nstdout: %s.\nstderr: %s.",
			status, e.Output.Stdout, e.Output.Stderr)
	}
	return b.String()
}
