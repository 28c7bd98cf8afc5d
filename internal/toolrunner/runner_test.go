package toolrunner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunnerCapturesOutput(t *testing.T) {
	runner := NewExecRunner()

	res, err := runner.Run(context.Background(), Invocation{
		Command: "sh",
		Args:    []string{"-c", "echo out; echo err >&2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, string(res.Output), "out")
	assert.Contains(t, string(res.Output), "err")
	assert.Greater(t, res.Duration, time.Duration(0))
}

func TestExecRunnerNonZeroExitIsError(t *testing.T) {
	runner := NewExecRunner()

	res, err := runner.Run(context.Background(), Invocation{
		Command: "sh",
		Args:    []string{"-c", "echo failing; exit 3"},
	})
	require.Error(t, err)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, string(res.Output), "failing")
}

func TestExecRunnerMissingCommand(t *testing.T) {
	runner := NewExecRunner()

	res, err := runner.Run(context.Background(), Invocation{Command: "definitely-not-a-command-xyz"})
	require.Error(t, err)
	assert.Equal(t, -1, res.ExitCode)
}

func TestExecRunnerHonorsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	runner := NewExecRunner()

	res, err := runner.Run(context.Background(), Invocation{
		Command: "pwd",
		Dir:     dir,
	})
	require.NoError(t, err)
	assert.Contains(t, string(res.Output), dir)
}

func TestExecRunnerContextCancellationKillsProcess(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	runner := NewExecRunner()
	_, err := runner.Run(ctx, Invocation{Command: "sleep", Args: []string{"10"}})
	require.Error(t, err)
}

func TestFakeRunnerRecordsCallsInOrder(t *testing.T) {
	fake := NewFakeRunner()
	fake.Fail("context", 1)

	_, err := fake.Run(context.Background(), Invocation{Command: "pandoc", Args: []string{"-o", "x"}})
	require.NoError(t, err)
	_, err = fake.Run(context.Background(), Invocation{Command: "context"})
	require.Error(t, err)

	calls := fake.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "pandoc", calls[0].Command)
	assert.Equal(t, "context", calls[1].Command)
}
