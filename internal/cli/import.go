package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/moodsnapshot/internal/config"
)

// ImportCommand loads a JSON snapshot into the journal.
type ImportCommand struct {
	journalFlags
	FilePath string

	Out io.Writer
}

func NewImportCommand() *ImportCommand {
	return &ImportCommand{}
}

func (cmd *ImportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to a snapshot written by export (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the journal database")
	fs.StringVar(&cmd.Timezone, "tz", "", "IANA timezone deciding the current day (default: local)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import a snapshot. Entries with an existing id are overwritten, other\n")
		fmt.Fprintf(os.Stderr, "entries are kept. A malformed file changes nothing.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *ImportCommand) Run() error {
	out := outOrStdout(cmd.Out)

	data, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	svc, db, err := cmd.openJournal()
	if err != nil {
		return err
	}
	defer db.Close()

	result, err := svc.ImportSnapshot(context.Background(), data)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", cmd.FilePath, err)
	}

	fmt.Fprintln(out, "=== Import Summary ===")
	fmt.Fprintf(out, "Moods imported: %d\n", result.Moods)
	fmt.Fprintf(out, "Settings imported: %t\n", result.SettingsImported)
	fmt.Fprintf(out, "Tags counted: %d\n", result.Tags)
	return nil
}
