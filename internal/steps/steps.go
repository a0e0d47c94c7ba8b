// Package steps holds the concrete steps the railfuzz CLI drives in its demo
// plan. They double as worked examples for authoring steps.
package steps

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"railfuzz/pkg/generator"
	"railfuzz/pkg/randomizer"
	"railfuzz/pkg/shell"
	"railfuzz/pkg/step"
)

// EchoStep plans an echo of a random string and expects it to exit cleanly.
type EchoStep struct {
	Spec generator.StringSpec `yaml:"spec"`
}

func (s *EchoStep) Plan(r *randomizer.Randomizer) (step.Plan, error) {
	return step.NewPlan(s, "echo "+s.Spec.Generate(r)), nil
}

func (s *EchoStep) IsSuccess(out *shell.Output, _ step.PlanCtx) (bool, error) {
	if out.StatusCode == nil || *out.StatusCode != 0 {
		return false, errors.New("status code should be 0")
	}
	return true, nil
}

func (s *EchoStep) State() any { return s }

// FileStep appends a random string to a file under Location, carries a
// context variable into its judgment, and verifies the file exists in its
// check and test phases.
type FileStep struct {
	Location string `yaml:"location"`
}

func (s *FileStep) target() string {
	return filepath.Join(s.Location, "test.txt")
}

func (s *FileStep) Setup() error {
	return os.MkdirAll(s.Location, 0o755)
}

func (s *FileStep) Plan(r *randomizer.Randomizer) (step.Plan, error) {
	word := generator.DefaultSpec().Generate(r)
	command := fmt.Sprintf("echo %s >> %s", word, s.target())
	return step.NewPlanWithVars(s, command, map[string]string{"foo": "bar"}), nil
}

func (s *FileStep) IsSuccess(out *shell.Output, ctx step.PlanCtx) (bool, error) {
	foo, found := ctx.Vars["foo"]
	if !found {
		return false, errors.New("foo plan ctx var not found")
	}
	if foo != "bar" {
		return false, errors.New("foo value should be equal to bar")
	}
	if out.StatusCode == nil || *out.StatusCode != 0 {
		return false, errors.New("status code should be 0")
	}
	return true, nil
}

func (s *FileStep) CheckCommand() (string, bool) {
	return "test -f " + s.target(), true
}

func (s *FileStep) TestCommand() (string, bool) {
	return "test -f " + s.target(), true
}

func (s *FileStep) State() any { return s }

// BadCommandStep plans a command that cannot resolve and treats the
// resulting failure exit as success.
type BadCommandStep struct{}

func (s *BadCommandStep) Plan(r *randomizer.Randomizer) (step.Plan, error) {
	arg := generator.DefaultSpec().Generate(r)
	return step.NewPlan(s, "unknown-command "+arg), nil
}

func (s *BadCommandStep) IsSuccess(out *shell.Output, _ step.PlanCtx) (bool, error) {
	if out.StatusCode != nil && *out.StatusCode == 0 {
		return false, errors.New("expected failure command")
	}
	return true, nil
}

func (s *BadCommandStep) State() any { return s }
