package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mdpress/cmd/mdpress/commands"
	perrors "git.home.luguber.info/inful/mdpress/internal/errors"
)

func main() {
	// Accept "-?" as a help alias alongside -h/--help.
	for i, arg := range os.Args {
		if arg == "-?" {
			os.Args[i] = "--help"
		}
	}

	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("mdpress"),
		kong.Description("Watch Markdown fragments and typeset them into a PDF with pandoc and ConTeXt."),
		kong.UsageOnError(),
		kong.Writers(os.Stderr, os.Stderr),
		kong.Exit(func(code int) {
			// Kong exits 0 after printing help; scripts rely on the
			// distinct help exit code instead.
			if code == 0 {
				os.Exit(perrors.ExitHelp)
			}
			os.Exit(code)
		}),
	)

	if err := ctx.Run(&commands.Global{Logger: slog.Default()}, &cli); err != nil {
		slog.Error("mdpress failed", "error", err)
		os.Exit(perrors.ExitCode(err))
	}
}
