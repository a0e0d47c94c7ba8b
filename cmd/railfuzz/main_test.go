package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railfuzz/internal/config"
)

func TestDemoSteps(t *testing.T) {
	cfg := config.Default()
	cfg.Workdir = "/tmp/railfuzz-test"

	plan := demoSteps(cfg)
	require.Len(t, plan, 3)
}

func TestPlanCommand(t *testing.T) {
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	rootCmd.SetArgs([]string{
		"plan",
		"--seed", "42",
		"--workdir", filepath.Join(t.TempDir(), "wd"),
	})
	execErr := rootCmd.Execute()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	os.Stdout = old

	require.NoError(t, execErr)
	output := string(out)
	assert.Contains(t, output, "Execution Plan Dump")
	assert.Contains(t, output, ": 42")
	assert.Contains(t, output, "EchoStep")
	assert.Contains(t, output, "BadCommandStep")
	assert.Contains(t, output, "echo ")
}
