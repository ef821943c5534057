package main

import (
	"fmt"
	"os"

	"github.com/mrlokans/moodsnapshot/internal/cli"
	"github.com/mrlokans/moodsnapshot/internal/config"
	"github.com/mrlokans/moodsnapshot/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

// command is implemented by every subcommand in internal/cli.
type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		if err := entrypoint.Run(cfg, Version); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "export":
		cmd = cli.NewExportCommand()
	case "import":
		cmd = cli.NewImportCommand()
	case "purge":
		cmd = cli.NewPurgeCommand()
	case "stats":
		cmd = cli.NewStatsCommand()
	case "rebuild-tags":
		cmd = cli.NewRebuildTagsCommand()
	case "version":
		fmt.Printf("moodsnapshot %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve         Start the HTTP API (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  export        Write the journal as a JSON snapshot\n")
	fmt.Fprintf(os.Stderr, "  import        Load a JSON snapshot into the journal\n")
	fmt.Fprintf(os.Stderr, "  purge         Delete entries older than a number of days\n")
	fmt.Fprintf(os.Stderr, "  stats         Print mood statistics for 7d, 30d or all\n")
	fmt.Fprintf(os.Stderr, "  rebuild-tags  Recount tag usage from the stored entries\n")
	fmt.Fprintf(os.Stderr, "  version       Print the version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
