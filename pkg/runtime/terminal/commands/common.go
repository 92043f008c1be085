package commands

import (
	"database/sql"
	"fmt"

	"github.com/bi-tools/reportsmith/pkg/services/archive"
	"github.com/bi-tools/reportsmith/pkg/services/config"
	"github.com/bi-tools/reportsmith/pkg/services/render"
	"github.com/bi-tools/reportsmith/pkg/store/duckdb"
	reportstore "github.com/bi-tools/reportsmith/pkg/store/duckdb/report"
)

// deps bundles everything a command needs once the profile is loaded.
// Callers must Close it when done.
type deps struct {
	profile  *config.Profile
	db       *sql.DB
	store    reportstore.Store
	archiver *archive.Archiver
}

func (d *deps) Close() error {
	return d.db.Close()
}

func openDeps(profilePath, format string, registry render.Registry) (*deps, error) {
	profile, err := config.LoadProfile(profilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: profile.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	store, err := reportstore.NewStore(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history store: %w", err)
	}

	d := &deps{profile: profile, db: db, store: store}

	if format != "" {
		renderer, err := registry.Create(format)
		if err != nil {
			db.Close()
			return nil, err
		}
		d.archiver = archive.NewArchiver(format, renderer, store, profile.ReportsDir)
	}

	return d, nil
}
