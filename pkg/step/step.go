// Package step defines the contract every step of a test plan implements,
// together with the Plan value a step hands to the runner.
//
// Plan and IsSuccess are the only required operations. Setup and the
// check/test commands are optional capabilities a step opts into by
// implementing the corresponding interface.
package step

import (
	"fmt"

	"railfuzz/pkg/randomizer"
	"railfuzz/pkg/shell"
)

// Step is the behavior required of every step in a test plan.
//
// Plan must be safe to call multiple times on one instance within a run: the
// runner requests a plan both when dumping the report and again during
// execution. Each call may draw from the shared Randomizer and so legitimately
// advances its state; repeated calls need not return the same plan.
type Step interface {
	// Plan produces the command to execute for one attempt, possibly built
	// from random draws.
	Plan(r *randomizer.Randomizer) (Plan, error)

	// IsSuccess judges the captured output of the plan's command, with the
	// plan's context available. Returning false skips the rest of this step
	// and lets the run continue; returning an error aborts the whole run.
	IsSuccess(out *shell.Output, ctx PlanCtx) (bool, error)

	// State reports the step's own state as a structured value for display.
	State() any
}

// SetupStep is implemented by steps that need side-effecting preparation,
// such as directory creation, before their plan executes. A setup failure is
// fatal for the whole run.
type SetupStep interface {
	Step
	Setup() error
}

// CheckStep is implemented by steps that supply a check command to run after
// a successful judgment. The check must finish with status code 0.
type CheckStep interface {
	Step
	CheckCommand() (string, bool)
}

// TestStep is implemented by steps that supply a test command to run after a
// successful judgment. The test must finish with status code 0.
type TestStep interface {
	Step
	TestCommand() (string, bool)
}

// PlanCtx carries named values a step threads from plan construction into its
// own success judgment. It is read-only once the plan reaches the runner.
type PlanCtx struct {
	Vars map[string]string
}

// Plan describes one command invocation produced by a step.
type Plan struct {
	// ID identifies which step type produced the plan. It is stable across
	// repeated calls on the same step instance.
	ID string
	// Command is the literal shell command to execute. Never empty.
	Command string
	// Ctx holds optional named values available to the success judgment.
	Ctx PlanCtx
}

// NewPlan builds a plan whose ID derives from the owner's dynamic type.
func NewPlan(owner any, command string) Plan {
	return Plan{
		ID:      fmt.Sprintf("%T", owner),
		Command: command,
	}
}

// NewPlanWithVars builds a plan carrying context variables into the success
// judgment.
func NewPlanWithVars(owner any, command string, vars map[string]string) Plan {
	p := NewPlan(owner, command)
	p.Ctx = PlanCtx{Vars: vars}
	return p
}

// Execute runs the plan's command through the system shell.
func (p Plan) Execute() (*shell.Output, error) {
	return shell.Run(p.Command)
}
