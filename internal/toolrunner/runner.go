// Package toolrunner abstracts external tool invocation so the build
// pipeline can be tested without the real binaries.
package toolrunner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"
)

// Invocation describes one external tool run.
type Invocation struct {
	// Command is the executable name or path.
	Command string
	// Args are the command arguments, excluding the command itself.
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
}

// Result captures the outcome of an invocation.
type Result struct {
	ExitCode int
	Output   []byte // combined stdout and stderr
	Duration time.Duration
}

// Runner executes external tools. Implementations must treat a non-zero
// exit as an error and still return the captured output for diagnostics.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// ExecRunner runs tools with os/exec.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the invocation, capturing combined output. Context
// cancellation kills the child process.
func (r *ExecRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, inv.Command, inv.Args...)
	cmd.Dir = inv.Dir

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	slog.Debug("Running external tool", "command", inv.Command, "args", inv.Args, "dir", inv.Dir)

	err := cmd.Run()

	exitCode := -1 // command did not start
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	res := Result{
		ExitCode: exitCode,
		Output:   buf.Bytes(),
		Duration: time.Since(start),
	}

	if err != nil {
		return res, fmt.Errorf("%s: %w", inv.Command, err)
	}
	return res, nil
}
