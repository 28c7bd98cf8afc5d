package commands

import (
	"fmt"

	"git.home.luguber.info/inful/mdpress/internal/deps"
)

// DoctorCmd runs the dependency check standalone.
type DoctorCmd struct{}

func (d *DoctorCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}

	tools := deps.Required(cfg.Tools.Pandoc, cfg.Tools.Context, cfg.Tools.Ghostscript)
	checker := deps.NewChecker(tools, nil)

	missing := checker.Check()
	if len(missing) == 0 {
		fmt.Println("All required tools are installed.")
		return nil
	}

	for _, tool := range missing {
		fmt.Printf("missing: %s (%s), install from %s\n", tool.Command, tool.Purpose, tool.HelpURL)
	}
	return checker.CheckAll()
}
