package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrlokans/moodsnapshot/internal/database"
	"github.com/mrlokans/moodsnapshot/internal/journal"
	"github.com/mrlokans/moodsnapshot/internal/logger"
)

// journalFlags are shared by every command that opens the journal database.
type journalFlags struct {
	DatabasePath string
	Timezone     string
	Verbose      bool
}

// openJournal opens the database and builds a journal over it. The caller closes
// the returned database.
func (f journalFlags) openJournal() (*journal.Service, *database.Database, error) {
	absDBPath, err := filepath.Abs(f.DatabasePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	loc := time.Local
	if f.Timezone != "" {
		if loc, err = time.LoadLocation(f.Timezone); err != nil {
			return nil, nil, fmt.Errorf("invalid timezone %q: %w", f.Timezone, err)
		}
	}

	log := zerolog.Nop()
	if f.Verbose {
		log = logger.New("moodsnapshot-cli", logger.Options{Level: "debug", Pretty: true, Output: os.Stderr})
	}

	db, err := database.NewDatabase(absDBPath, database.WithLogger(logger.ForGorm(log)))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	svc := journal.New(db, journal.WithLocation(loc), journal.WithLogger(log))
	return svc, db, nil
}

func outOrStdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}
