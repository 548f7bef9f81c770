// Package migration applies the versioned SQL schema files.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/dangerclosesec/crmboard"
	"github.com/lib/pq"
)

var fileName = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)

// Migration is one schema file.
type Migration struct {
	Version int
	Name    string
	File    string
}

// Status pairs a migration with when it was applied, if it was.
type Status struct {
	Migration
	AppliedAt *time.Time
}

// Migrator handles database migrations for the crmboard schema
type Migrator struct {
	cfg   *crmboard.Config
	files fs.FS
	dir   string
}

// NewMigrator creates a migrator over the embedded migrations.
func NewMigrator(cfg *crmboard.Config) *Migrator {
	return NewMigratorFS(cfg, crmboard.MigrationsFS, "migrations")
}

// NewMigratorFS creates a migrator reading *.sql files from dir in files.
func NewMigratorFS(cfg *crmboard.Config, files fs.FS, dir string) *Migrator {
	return &Migrator{cfg: cfg, files: files, dir: dir}
}

// InitializeSchema creates the version bookkeeping table
func (m *Migrator) InitializeSchema() error {
	_, err := m.cfg.DB().ExecContext(m.cfg.Context(), fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		version INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMP NOT NULL
	)`, pq.QuoteIdentifier(m.cfg.MigrationsTable)))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", m.cfg.MigrationsTable, err)
	}
	return nil
}

// Migrations lists the available files in version order.
func (m *Migrator) Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(m.files, m.dir)
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	var out []Migration
	seen := map[int]string{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		match := fileName.FindStringSubmatch(e.Name())
		if match == nil {
			continue
		}
		version, _ := strconv.Atoi(match[1])
		if prev, ok := seen[version]; ok {
			return nil, fmt.Errorf("migration version %d used by %s and %s", version, prev, e.Name())
		}
		seen[version] = e.Name()
		out = append(out, Migration{Version: version, Name: match[2], File: path.Join(m.dir, e.Name())})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// GetCurrentVersion returns the highest applied version, 0 when none.
func (m *Migrator) GetCurrentVersion() (int, error) {
	var version int
	err := m.cfg.DB().QueryRowContext(m.cfg.Context(), fmt.Sprintf(
		`SELECT COALESCE(MAX(version), 0) FROM %s`, pq.QuoteIdentifier(m.cfg.MigrationsTable),
	)).Scan(&version)
	return version, err
}

// Status reports every migration and whether it has been applied.
func (m *Migrator) Status() ([]Status, error) {
	if err := m.InitializeSchema(); err != nil {
		return nil, err
	}
	migrations, err := m.Migrations()
	if err != nil {
		return nil, err
	}

	rows, err := m.cfg.DB().QueryContext(m.cfg.Context(), fmt.Sprintf(
		`SELECT version, applied_at FROM %s`, pq.QuoteIdentifier(m.cfg.MigrationsTable)))
	if err != nil {
		return nil, fmt.Errorf("reading applied migrations: %w", err)
	}
	defer rows.Close()

	applied := map[int]time.Time{}
	for rows.Next() {
		var version int
		var at time.Time
		if err := rows.Scan(&version, &at); err != nil {
			return nil, err
		}
		applied[version] = at
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(migrations))
	for _, mig := range migrations {
		st := Status{Migration: mig}
		if at, ok := applied[mig.Version]; ok {
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}

// Up applies every pending migration, each in its own transaction, and
// returns the ones applied.
func (m *Migrator) Up() ([]Migration, error) {
	statuses, err := m.Status()
	if err != nil {
		return nil, err
	}

	var applied []Migration
	for _, st := range statuses {
		if st.AppliedAt != nil {
			continue
		}
		if err := m.apply(st.Migration); err != nil {
			return applied, err
		}
		m.cfg.Logger().Info("applied migration", "version", st.Version, "name", st.Name)
		applied = append(applied, st.Migration)
	}
	return applied, nil
}

func (m *Migrator) apply(mig Migration) (err error) {
	body, err := fs.ReadFile(m.files, mig.File)
	if err != nil {
		return fmt.Errorf("reading %s: %w", mig.File, err)
	}

	ctx := m.cfg.Context()
	tx, err := m.cfg.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, ignoreDone(tx.Rollback()))
		}
	}()

	if _, err = tx.ExecContext(ctx, string(body)); err != nil {
		return fmt.Errorf("applying %04d_%s: %w", mig.Version, mig.Name, err)
	}

	_, err = tx.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (version, name, applied_at) VALUES ($1, $2, $3)`, pq.QuoteIdentifier(m.cfg.MigrationsTable),
	), mig.Version, mig.Name, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record version %d: %w", mig.Version, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func ignoreDone(err error) error {
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return err
}
