// Package migrate applies versioned SQL migrations to PostgreSQL.
//
// Files live in one directory and are named NNNNNN_description.up.sql and
// NNNNNN_description.down.sql. Versions start at 1 and must be contiguous.
// Each migration runs in its own transaction together with the bookkeeping
// row in schema_migrations.
package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const createTableSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version INTEGER PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// ErrNothingToRollback is returned by Down when no migration is applied.
var ErrNothingToRollback = errors.New("no migrations to rollback")

// Migration is a single versioned change.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

// Migrator owns a dedicated connection for schema changes.
type Migrator struct {
	conn       *pgx.Conn
	migrations []Migration
	logger     *zap.Logger
}

// NewMigrator connects to the database and loads migrations from dir.
func NewMigrator(ctx context.Context, dsn, dir string, logger *zap.Logger) (*Migrator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	migrations, err := Load(dir)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if _, err := conn.Exec(ctx, createTableSQL); err != nil {
		_ = conn.Close(ctx)
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	return &Migrator{conn: conn, migrations: migrations, logger: logger}, nil
}

// Close releases the connection.
func (m *Migrator) Close(ctx context.Context) error {
	return m.conn.Close(ctx)
}

// Load reads and validates the migration files in dir.
func Load(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir %s: %w", dir, err)
	}

	byVersion := make(map[int]*Migration)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()

		var up bool
		var stem string
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			up, stem = true, strings.TrimSuffix(name, ".up.sql")
		case strings.HasSuffix(name, ".down.sql"):
			stem = strings.TrimSuffix(name, ".down.sql")
		default:
			continue
		}

		prefix, label, _ := strings.Cut(stem, "_")
		version, err := strconv.Atoi(prefix)
		if err != nil || version < 1 {
			return nil, fmt.Errorf("migration %s: invalid version prefix", name)
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}

		mig, ok := byVersion[version]
		if !ok {
			mig = &Migration{Version: version, Name: label}
			byVersion[version] = mig
		}
		if up {
			mig.UpSQL = string(data)
		} else {
			mig.DownSQL = string(data)
		}
	}

	if len(byVersion) == 0 {
		return nil, fmt.Errorf("no migration files found in %s", dir)
	}

	migrations := make([]Migration, 0, len(byVersion))
	for _, mig := range byVersion {
		migrations = append(migrations, *mig)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })

	for i, mig := range migrations {
		if mig.Version != i+1 {
			return nil, fmt.Errorf("migration versions must be contiguous from 1: missing %d", i+1)
		}
		if strings.TrimSpace(mig.UpSQL) == "" {
			return nil, fmt.Errorf("migration %d is missing its up.sql file", mig.Version)
		}
	}

	return migrations, nil
}

// Version returns the highest applied version, 0 when none.
func (m *Migrator) Version(ctx context.Context) (int, error) {
	var version *int
	if err := m.conn.QueryRow(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&version); err != nil {
		return 0, fmt.Errorf("read current version: %w", err)
	}
	if version == nil {
		return 0, nil
	}
	return *version, nil
}

// Latest returns the highest version available on disk.
func (m *Migrator) Latest() int {
	return len(m.migrations)
}

// Up applies every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	return m.Steps(ctx, len(m.migrations))
}

// Down rolls back the most recent migration.
func (m *Migrator) Down(ctx context.Context) error {
	return m.Steps(ctx, -1)
}

// Steps applies n pending migrations, or rolls back -n applied ones.
func (m *Migrator) Steps(ctx context.Context, n int) error {
	current, err := m.Version(ctx)
	if err != nil {
		return err
	}
	if current > len(m.migrations) {
		return fmt.Errorf("database version %d is newer than available migrations (%d)", current, len(m.migrations))
	}

	for ; n > 0 && current < len(m.migrations); n-- {
		mig := m.migrations[current]
		if err := m.apply(ctx, mig, true); err != nil {
			return err
		}
		current = mig.Version
	}

	for ; n < 0; n++ {
		if current == 0 {
			return ErrNothingToRollback
		}
		mig := m.migrations[current-1]
		if err := m.apply(ctx, mig, false); err != nil {
			return err
		}
		current = mig.Version - 1
	}

	return nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration, up bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	direction, body := "up", mig.UpSQL
	if !up {
		direction, body = "down", mig.DownSQL
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("migration %d has no %s.sql content", mig.Version, direction)
	}

	tx, err := m.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin migration %d: %w", mig.Version, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	if _, err := tx.Exec(ctx, body); err != nil {
		return fmt.Errorf("migration %d %s: %w", mig.Version, direction, err)
	}

	if up {
		_, err = tx.Exec(ctx, "INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING", mig.Version)
	} else {
		_, err = tx.Exec(ctx, "DELETE FROM schema_migrations WHERE version = $1", mig.Version)
	}
	if err != nil {
		return fmt.Errorf("record migration %d: %w", mig.Version, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit migration %d: %w", mig.Version, err)
	}

	m.logger.Info("migration applied", zap.Int("version", mig.Version), zap.String("name", mig.Name), zap.String("direction", direction))
	return nil
}
