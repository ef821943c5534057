package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/moodsnapshot/internal/config"
)

// RebuildTagsCommand recomputes the tag usage counters from the stored entries.
type RebuildTagsCommand struct {
	journalFlags

	Out io.Writer
}

func NewRebuildTagsCommand() *RebuildTagsCommand {
	return &RebuildTagsCommand{}
}

func (cmd *RebuildTagsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("rebuild-tags", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the journal database")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s rebuild-tags [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Recount tag usage from the stored mood entries.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *RebuildTagsCommand) Run() error {
	out := outOrStdout(cmd.Out)

	svc, db, err := cmd.openJournal()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := svc.RebuildTagUsage(context.Background())
	if err != nil {
		return fmt.Errorf("failed to rebuild tag usage: %w", err)
	}
	fmt.Fprintf(out, "Rebuilt usage for %d tags\n", n)
	return nil
}
