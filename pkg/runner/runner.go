// Package runner orchestrates the full lifecycle of an ordered list of steps:
// plan, setup, execute, judge, then the optional check and test commands. It
// owns the run's single Randomizer and hands it to steps during planning.
//
// The lifecycle per step is strictly ordered with no branching back. The
// first fatal error from any step aborts the entire run; the one non-fatal
// outcome is a success judgment of false, which skips the remainder of that
// step and continues with the next.
package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"railfuzz/pkg/randomizer"
	"railfuzz/pkg/shell"
	"railfuzz/pkg/step"
)

const (
	divider     = "===================================="
	thinDivider = "------------------------------------"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	labelStyle    = lipgloss.NewStyle().Bold(true)
	progressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// Runner executes a series of steps in order, sharing one Randomizer across
// all of them. A Runner is single-threaded; nothing in the lifecycle runs
// concurrently.
type Runner struct {
	steps      []step.Step
	initStep   step.Step
	randomizer *randomizer.Randomizer
	log        *zap.Logger
	out        io.Writer
	runID      string
}

// New returns a Runner over the given steps, seeded from system entropy.
// Replace the randomizer with WithRandomizer for a reproducible run.
func New(steps ...step.Step) *Runner {
	return &Runner{
		steps:      steps,
		randomizer: randomizer.New(),
		log:        zap.NewNop(),
		out:        os.Stdout,
		runID:      uuid.NewString(),
	}
}

// WithRandomizer replaces the runner's randomizer, typically with a fixed
// seed to reproduce a previous run.
func (r *Runner) WithRandomizer(rz *randomizer.Randomizer) *Runner {
	r.randomizer = rz
	return r
}

// WithInitStep sets a step that goes through the full lifecycle before the
// listed steps and appears first in the plan dump.
func (r *Runner) WithInitStep(s step.Step) *Runner {
	r.initStep = s
	return r
}

// WithLogger sets the logger used for run diagnostics.
func (r *Runner) WithLogger(log *zap.Logger) *Runner {
	r.log = log
	return r
}

// WithOutput redirects the plan report and progress lines, which otherwise go
// to standard output.
func (r *Runner) WithOutput(w io.Writer) *Runner {
	r.out = w
	return r
}

func (r *Runner) allSteps() []step.Step {
	if r.initStep == nil {
		return r.steps
	}
	return append([]step.Step{r.initStep}, r.steps...)
}

// DumpPlan assembles the textual execution plan report: a banner, the step
// count and seed, then per step its plan ID, command, and YAML-serialized
// state. It requests each step's plan exactly once and never executes any
// command. Because planning draws from the shared randomizer, dumping
// advances the stream.
func (r *Runner) DumpPlan() (string, error) {
	steps := r.allSteps()

	var out []string
	out = append(out,
		divider,
		headerStyle.Render("          Execution Plan Dump        "),
		divider,
		fmt.Sprintf("%s: %d", labelStyle.Render("Step Count"), len(steps)),
		fmt.Sprintf("%s: %d", labelStyle.Render("Seed"), r.randomizer.Seed()),
		thinDivider,
	)

	for i, s := range steps {
		plan, err := s.Plan(r.randomizer)
		if err != nil {
			return "", fmt.Errorf("plan step %d: %w", i+1, err)
		}

		out = append(out,
			headerStyle.Render(fmt.Sprintf("Step %d: %s", i+1, plan.ID)),
			thinDivider,
			labelStyle.Render("Command:"),
			plan.Command,
			labelStyle.Render("State:"),
			"---",
		)

		state, err := yaml.Marshal(s.State())
		if err != nil {
			state = nil
		}
		out = append(out, string(state), thinDivider)
	}

	return strings.Join(out, "\n"), nil
}

// Run emits the plan report, then drives every step through its lifecycle in
// list order. The first fatal error aborts the run; completing all steps
// without one is the only success outcome.
//
// Each step's plan is requested once for its banner and context and once
// more for execution, on top of the request made by the plan dump. This
// non-idempotence is by contract: the total number of random draws is fixed
// by how many plans a run requests.
func (r *Runner) Run() error {
	report, err := r.DumpPlan()
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, report)

	r.log.Info("run started",
		zap.String("run_id", r.runID),
		zap.Uint64("seed", r.randomizer.Seed()),
		zap.Int("steps", len(r.allSteps())))

	for _, s := range r.allSteps() {
		if err := r.runStep(s); err != nil {
			r.log.Error("run aborted", zap.String("run_id", r.runID), zap.Error(err))
			return err
		}
	}

	fmt.Fprintln(r.out, headerStyle.Render("Execution plan is pass successfully"))
	r.log.Info("run finished", zap.String("run_id", r.runID))
	return nil
}

func (r *Runner) runStep(s step.Step) error {
	stepPlan, err := s.Plan(r.randomizer)
	if err != nil {
		return err
	}

	fmt.Fprintf(r.out, "\n%s\n\n", progressStyle.Render("Run step: "+stepPlan.ID))

	if setup, ok := s.(step.SetupStep); ok {
		if err := setup.Setup(); err != nil {
			return &step.StepError{Kind: step.KindSetup, Description: err.Error()}
		}
	}

	start := time.Now()
	fmt.Fprintln(r.out, progressStyle.Render("Execute plan..."))

	execPlan, err := s.Plan(r.randomizer)
	if err != nil {
		return err
	}
	output, err := shell.Run(execPlan.Command)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, progressStyle.Render(fmt.Sprintf("Execute plan finished in %s", time.Since(start))))

	ok, err := s.IsSuccess(output, stepPlan.Ctx)
	if err != nil {
		return &step.StepError{
			Kind:        step.KindPlan,
			Description: err.Error(),
			Output:      output,
		}
	}
	if !ok {
		// Soft negative: remaining phases are skipped, the run goes on.
		r.log.Debug("step judged unsuccessful, skipping remaining phases",
			zap.String("step", stepPlan.ID))
		return nil
	}

	if c, isCheck := s.(step.CheckStep); isCheck {
		if command, have := c.CheckCommand(); have {
			if err := r.runAux(step.KindCheck, "check", command); err != nil {
				return err
			}
		}
	}

	if tt, isTest := s.(step.TestStep); isTest {
		if command, have := tt.TestCommand(); have {
			if err := r.runAux(step.KindTest, "test", command); err != nil {
				return err
			}
		}
	}

	return nil
}

// runAux executes a check or test command. Unlike the judged phase there is
// no soft-negative path here: anything but status code 0 is fatal.
func (r *Runner) runAux(kind step.Kind, label, command string) error {
	start := time.Now()
	fmt.Fprintln(r.out, progressStyle.Render("Execute "+label+"..."))

	output, err := shell.Run(command)
	if err != nil {
		return err
	}
	fmt.Fprintln(r.out, progressStyle.Render(fmt.Sprintf("Execute %s finished in %s", label, time.Since(start))))

	if output.StatusCode == nil || *output.StatusCode != 0 {
		return &step.StepError{
			Kind:        kind,
			Description: label + " did not finish with status code 0",
			Output:      output,
		}
	}
	return nil
}
