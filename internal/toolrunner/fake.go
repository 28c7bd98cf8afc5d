package toolrunner

import (
	"context"
	"fmt"
	"sync"
)

// FakeRunner records invocations and replays scripted results. It is the
// test double for Runner; hooks may also create side effects (e.g. writing
// the PDF a real typesetter would produce).
type FakeRunner struct {
	mu    sync.Mutex
	calls []Invocation
	hooks map[string]func(inv Invocation) (Result, error)
}

// NewFakeRunner returns an empty FakeRunner; unscripted commands succeed
// with exit code 0.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{hooks: make(map[string]func(Invocation) (Result, error))}
}

// Script registers a hook for a command name.
func (f *FakeRunner) Script(command string, hook func(inv Invocation) (Result, error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks[command] = hook
}

// Fail makes a command return the given exit code and an error.
func (f *FakeRunner) Fail(command string, exitCode int) {
	f.Script(command, func(Invocation) (Result, error) {
		return Result{ExitCode: exitCode}, fmt.Errorf("%s: exit status %d", command, exitCode)
	})
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, inv Invocation) (Result, error) {
	f.mu.Lock()
	hook := f.hooks[inv.Command]
	f.calls = append(f.calls, inv)
	f.mu.Unlock()

	if hook != nil {
		return hook(inv)
	}
	return Result{ExitCode: 0}, nil
}

// Calls returns a copy of all recorded invocations in order.
func (f *FakeRunner) Calls() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Invocation, len(f.calls))
	copy(out, f.calls)
	return out
}
