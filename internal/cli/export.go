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

// ExportCommand writes the whole journal as a JSON snapshot.
type ExportCommand struct {
	journalFlags
	OutputPath string

	Out io.Writer
}

func NewExportCommand() *ExportCommand {
	return &ExportCommand{}
}

func (cmd *ExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the journal database")
	fs.StringVar(&cmd.OutputPath, "out", "", "Write the snapshot to this file instead of stdout")
	fs.StringVar(&cmd.Timezone, "tz", "", "IANA timezone deciding the current day (default: local)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s export [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Export every mood entry, the settings and the frequent tags as JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s export -out backup.json\n", os.Args[0])
	}

	return fs.Parse(args)
}

func (cmd *ExportCommand) Run() error {
	out := outOrStdout(cmd.Out)

	svc, db, err := cmd.openJournal()
	if err != nil {
		return err
	}
	defer db.Close()

	snap, err := svc.ExportSnapshot(context.Background())
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	data, err := journal.MarshalSnapshot(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if cmd.OutputPath == "" {
		_, err = out.Write(append(data, '\n'))
		return err
	}

	if err := os.WriteFile(cmd.OutputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.OutputPath, err)
	}
	fmt.Fprintf(out, "Exported %d moods to %s\n", len(snap.Moods), cmd.OutputPath)
	return nil
}
