package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesStdout(t *testing.T) {
	out, err := Run("echo hello")
	require.NoError(t, err)

	require.NotNil(t, out.StatusCode)
	assert.Equal(t, 0, *out.StatusCode)
	assert.Equal(t, "hello\n", out.Stdout)
	assert.Empty(t, out.Stderr)
}

func TestRunCapturesStderr(t *testing.T) {
	out, err := Run("echo oops 1>&2")
	require.NoError(t, err)

	require.NotNil(t, out.StatusCode)
	assert.Equal(t, 0, *out.StatusCode)
	assert.Empty(t, out.Stdout)
	assert.Equal(t, "oops\n", out.Stderr)
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	out, err := Run("exit 3")
	require.NoError(t, err)

	require.NotNil(t, out.StatusCode)
	assert.Equal(t, 3, *out.StatusCode)
}

func TestRunUnknownCommand(t *testing.T) {
	// The shell itself launches fine and reports the failure via exit code.
	out, err := Run("definitely-not-a-command-anywhere")
	require.NoError(t, err)

	require.NotNil(t, out.StatusCode)
	assert.NotEqual(t, 0, *out.StatusCode)
	assert.NotEmpty(t, out.Stderr)
}

func TestRunInvalidUTF8(t *testing.T) {
	_, err := Run(`printf '\377\376'`)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "stdout", decodeErr.Stream)
}

func TestRunInvalidUTF8OnStderr(t *testing.T) {
	_, err := Run(`printf '\377' 1>&2`)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "stderr", decodeErr.Stream)
}
