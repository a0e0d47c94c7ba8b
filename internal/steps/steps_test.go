package steps

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railfuzz/pkg/generator"
	"railfuzz/pkg/randomizer"
	"railfuzz/pkg/runner"
	"railfuzz/pkg/shell"
	"railfuzz/pkg/step"
)

func exitCode(code int) *shell.Output {
	return &shell.Output{StatusCode: &code}
}

func TestEchoStepPlan(t *testing.T) {
	s := &EchoStep{Spec: generator.DefaultSpec()}
	p, err := s.Plan(randomizer.WithSeed(42))
	require.NoError(t, err)

	assert.Equal(t, "echo junoyn", p.Command)
	assert.Equal(t, "*steps.EchoStep", p.ID)
}

func TestEchoStepJudgment(t *testing.T) {
	s := &EchoStep{Spec: generator.DefaultSpec()}

	ok, err := s.IsSuccess(exitCode(0), step.PlanCtx{})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.IsSuccess(exitCode(1), step.PlanCtx{})
	assert.Error(t, err)

	_, err = s.IsSuccess(&shell.Output{}, step.PlanCtx{})
	assert.Error(t, err)
}

func TestFileStepSetupCreatesLocation(t *testing.T) {
	location := filepath.Join(t.TempDir(), "nested", "dir")
	s := &FileStep{Location: location}

	require.NoError(t, s.Setup())
	info, err := os.Stat(location)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileStepPlan(t *testing.T) {
	s := &FileStep{Location: "/tmp/fs"}
	p, err := s.Plan(randomizer.WithSeed(42))
	require.NoError(t, err)

	assert.Equal(t, "echo junoyn >> /tmp/fs/test.txt", p.Command)
	assert.Equal(t, "bar", p.Ctx.Vars["foo"])

	check, ok := s.CheckCommand()
	require.True(t, ok)
	assert.Equal(t, "test -f /tmp/fs/test.txt", check)

	test, ok := s.TestCommand()
	require.True(t, ok)
	assert.Equal(t, check, test)
}

func TestFileStepJudgmentValidatesCtx(t *testing.T) {
	s := &FileStep{Location: "/tmp/fs"}

	_, err := s.IsSuccess(exitCode(0), step.PlanCtx{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foo plan ctx var not found")

	_, err = s.IsSuccess(exitCode(0), step.PlanCtx{Vars: map[string]string{"foo": "nope"}})
	require.Error(t, err)

	ok, err := s.IsSuccess(exitCode(0), step.PlanCtx{Vars: map[string]string{"foo": "bar"}})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBadCommandStepJudgment(t *testing.T) {
	s := &BadCommandStep{}

	ok, err := s.IsSuccess(exitCode(127), step.PlanCtx{})
	require.NoError(t, err)
	assert.True(t, ok)

	// Killed by signal counts as a failure exit too.
	ok, err = s.IsSuccess(&shell.Output{}, step.PlanCtx{})
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.IsSuccess(exitCode(0), step.PlanCtx{})
	assert.Error(t, err)
}

func TestDemoStepsRunEndToEnd(t *testing.T) {
	base := t.TempDir()

	var buf bytes.Buffer
	r := runner.New(
		&EchoStep{Spec: generator.DefaultSpec()},
		&FileStep{Location: filepath.Join(base, "file-step")},
		&BadCommandStep{},
	).
		WithRandomizer(randomizer.WithSeed(42)).
		WithOutput(&buf)

	require.NoError(t, r.Run())

	content, err := os.ReadFile(filepath.Join(base, "file-step", "test.txt"))
	require.NoError(t, err)
	assert.True(t, generator.ContainsOnlyLowercase(strings.TrimSpace(string(content))))
}
