package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/moodsnapshot/internal/config"
	"github.com/mrlokans/moodsnapshot/internal/entities"
	"github.com/mrlokans/moodsnapshot/internal/insights"
)

// StatsCommand prints the insights report for a timeframe.
type StatsCommand struct {
	journalFlags
	Timeframe string

	Out io.Writer
}

func NewStatsCommand() *StatsCommand {
	return &StatsCommand{}
}

func (cmd *StatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)

	fs.StringVar(&cmd.Timeframe, "timeframe", string(insights.TimeframeMonth), "One of 7d, 30d, all")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the journal database")
	fs.StringVar(&cmd.Timezone, "tz", "", "IANA timezone deciding the current day (default: local)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s stats [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print mood statistics for a timeframe.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	_, err := insights.ParseTimeframe(cmd.Timeframe)
	return err
}

func (cmd *StatsCommand) Run() error {
	out := outOrStdout(cmd.Out)

	tf, err := insights.ParseTimeframe(cmd.Timeframe)
	if err != nil {
		return err
	}

	svc, db, err := cmd.openJournal()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	report, err := svc.Insights(ctx, tf)
	if err != nil {
		return fmt.Errorf("failed to compute insights: %w", err)
	}
	settings, err := svc.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	labels := settings.Config().Labels

	fmt.Fprintf(out, "=== Mood Stats (%s) ===\n", report.Timeframe)
	if report.Start != "" {
		fmt.Fprintf(out, "Range: %s to %s\n", report.Start, report.End)
	}
	fmt.Fprintf(out, "Entries: %d\n", report.Summary.Count)
	if report.Summary.Count == 0 {
		return nil
	}
	fmt.Fprintf(out, "Average: %.2f\n", report.Summary.Average)
	fmt.Fprintf(out, "Streak: %d days\n", report.Streak)

	fmt.Fprintln(out, "\nDistribution:")
	for _, v := range entities.MoodValues {
		fmt.Fprintf(out, "  %d %-10s %d\n", v, labels[v], report.Summary.MoodCounts[v])
	}

	if len(report.TopTags) > 0 {
		fmt.Fprintln(out, "\nTop tags:")
		for _, t := range report.TopTags {
			fmt.Fprintf(out, "  %-20s %3d  avg %.2f\n", t.Tag, t.Count, t.Average)
		}
	}
	return nil
}
