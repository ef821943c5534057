package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/moodsnapshot/internal/config"
	"github.com/mrlokans/moodsnapshot/internal/journal"
)

// PurgeCommand deletes entries older than a number of days.
type PurgeCommand struct {
	journalFlags
	Days   int
	DryRun bool

	Out io.Writer
}

func NewPurgeCommand() *PurgeCommand {
	return &PurgeCommand{}
}

func (cmd *PurgeCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("purge", flag.ExitOnError)

	fs.IntVar(&cmd.Days, "days", journal.DefaultRetentionDays, "Keep entries dated within this many days of today")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the journal database")
	fs.StringVar(&cmd.Timezone, "tz", "", "IANA timezone deciding the current day (default: local)")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Show what would be deleted without making changes")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s purge [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete mood entries dated before today minus -days.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Keep the last 90 days:\n")
		fmt.Fprintf(os.Stderr, "  %s purge -days 90\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Days < 0 {
		return fmt.Errorf("-days must not be negative")
	}
	return nil
}

func (cmd *PurgeCommand) Run() error {
	out := outOrStdout(cmd.Out)

	svc, db, err := cmd.openJournal()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	cutoff := svc.PurgeCutoff(cmd.Days)
	fmt.Fprintf(out, "Removing entries dated before %s\n", cutoff)

	if cmd.DryRun {
		all, err := svc.GetAllMoods(ctx)
		if err != nil {
			return fmt.Errorf("failed to read moods: %w", err)
		}
		var n int
		for _, e := range all {
			if e.Date < cutoff {
				n++
			}
		}
		fmt.Fprintf(out, "Dry run: %d of %d entries would be deleted\n", n, len(all))
		return nil
	}

	deleted, err := svc.PurgeOlderThan(ctx, cmd.Days)
	if err != nil {
		return fmt.Errorf("failed to purge: %w", err)
	}
	fmt.Fprintf(out, "Deleted %d entries\n", deleted)
	return nil
}
