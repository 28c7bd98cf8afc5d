package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	perrors "git.home.luguber.info/inful/mdpress/internal/errors"
	"git.home.luguber.info/inful/mdpress/internal/history"
)

// HistoryCmd prints recent build records.
type HistoryCmd struct {
	Limit int `short:"n" default:"10" help:"Number of records to show"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.History.Path == "" {
		return perrors.New(perrors.CategoryConfig, "build history is disabled (history.path is empty)")
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No builds recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STARTED\tSTATUS\tDURATION\tTRIGGER\tCOMMIT\tFRAGMENTS\tERROR")
	for _, rec := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			rec.StartedAt.Format("2006-01-02 15:04:05"),
			rec.Status,
			rec.Duration.Round(time.Millisecond),
			rec.Trigger,
			rec.Commit,
			rec.Fragments,
			rec.Error)
	}
	return w.Flush()
}
