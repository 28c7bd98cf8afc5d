// Package deps verifies that the external tools mdpress orchestrates are
// present on the executable search path. The check runs exactly once at
// start-up: tool presence cannot change mid-run in any way this process can
// react to.
package deps

import (
	"log/slog"
	"os/exec"
	"strings"

	perrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

// Tool is one required external command with a pointer for obtaining it.
type Tool struct {
	Command string
	Purpose string
	HelpURL string
}

// LookupFunc resolves a command on the search path, returning its full path.
// It matches exec.LookPath and is injectable for tests.
type LookupFunc func(command string) (string, error)

// Checker verifies tool presence.
type Checker struct {
	tools  []Tool
	lookup LookupFunc
}

// Required returns the tool list for the given configured commands.
func Required(pandoc, context, ghostscript string) []Tool {
	return []Tool{
		{Command: pandoc, Purpose: "Markdown to ConTeXt conversion", HelpURL: "https://pandoc.org/installing.html"},
		{Command: context, Purpose: "PDF typesetting", HelpURL: "https://wiki.contextgarden.net/Installation"},
		{Command: ghostscript, Purpose: "PDF post-processing", HelpURL: "https://ghostscript.com/releases/"},
	}
}

// NewChecker builds a Checker. A nil lookup uses exec.LookPath.
func NewChecker(tools []Tool, lookup LookupFunc) *Checker {
	if lookup == nil {
		lookup = exec.LookPath
	}
	return &Checker{tools: tools, lookup: lookup}
}

// Check resolves every tool, logging one warning per missing command, and
// returns the missing set. All tools are checked before reporting so the
// user sees the complete list in one pass.
func (c *Checker) Check() []Tool {
	var missing []Tool
	for _, tool := range c.tools {
		path, err := c.lookup(tool.Command)
		if err != nil {
			slog.Warn("Required tool not found",
				"command", tool.Command,
				"purpose", tool.Purpose,
				"install", tool.HelpURL)
			missing = append(missing, tool)
			continue
		}
		slog.Debug("Found required tool", "command", tool.Command, "path", path)
	}
	return missing
}

// CheckAll runs Check and converts a non-empty missing set into the fatal
// start-up error (exit code 4).
func (c *Checker) CheckAll() error {
	missing := c.Check()
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, tool := range missing {
		names[i] = tool.Command
	}
	return perrors.New(perrors.CategoryDeps, "missing required tools: "+strings.Join(names, ", "))
}
