package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/udisondev/worldguard/internal/model"
)

// SQLiteStore keeps object spawns in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("opening sqlite store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating sqlite dir: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %s: %w", path, err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := initPragmas(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := migrate(ctx, sqlDB, "sqlite3"); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &SQLiteStore{db: sqlDB}, nil
}

func initPragmas(ctx context.Context, sqlDB *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("applying %q: %w", p, err)
		}
	}
	return nil
}

// LoadObjectSpawns loads all object spawns ordered by spawn id.
func (s *SQLiteStore) LoadObjectSpawns(ctx context.Context) ([]ObjectSpawn, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT spawn_id, object_id, x, y, plane, dynamic, orientation, shape
		FROM object_spawns
		ORDER BY spawn_id
	`)
	if err != nil {
		return nil, fmt.Errorf("loading object spawns: %w", err)
	}
	defer rows.Close()

	var spawns []ObjectSpawn
	for rows.Next() {
		var (
			sp                        ObjectSpawn
			x, y                      int32
			plane, orientation, shape int64
		)
		if err := rows.Scan(&sp.SpawnID, &sp.ID, &x, &y, &plane, &sp.Dynamic, &orientation, &shape); err != nil {
			return nil, fmt.Errorf("scanning object spawn row: %w", err)
		}
		sp.Position = model.NewPosition(x, y, int8(plane))
		sp.Orientation = model.Orientation(orientation)
		sp.Shape = uint8(shape)
		spawns = append(spawns, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating object spawn rows: %w", err)
	}
	return spawns, nil
}

// SaveObjectSpawn inserts or replaces a spawn.
func (s *SQLiteStore) SaveObjectSpawn(ctx context.Context, sp ObjectSpawn) error {
	if err := validSpawn(sp); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO object_spawns (spawn_id, object_id, x, y, plane, dynamic, orientation, shape)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sp.SpawnID, sp.ID, sp.Position.X, sp.Position.Y, int64(sp.Position.Plane),
		sp.Dynamic, int64(sp.Orientation), int64(sp.Shape))
	if err != nil {
		return fmt.Errorf("saving object spawn %d: %w", sp.SpawnID, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
