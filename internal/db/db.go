package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/worldguard/internal/model"
)

// ObjectSpawn is a persisted game object placement.
type ObjectSpawn struct {
	SpawnID     int64
	ID          int32
	Position    model.Position
	Dynamic     bool
	Orientation model.Orientation
	Shape       uint8
}

// Type returns the entity type the spawn materializes as.
func (s ObjectSpawn) Type() model.EntityType {
	if s.Dynamic {
		return model.EntityTypeDynamicObject
	}
	return model.EntityTypeStaticObject
}

// SpawnStore loads object spawns at startup.
type SpawnStore interface {
	LoadObjectSpawns(ctx context.Context) ([]ObjectSpawn, error)
	SaveObjectSpawn(ctx context.Context, s ObjectSpawn) error
	Close() error
}

// DB wraps a pgx connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a DB handle.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (d *DB) Close() {
	d.pool.Close()
}

// Pool returns the underlying pgx pool.
func (d *DB) Pool() *pgxpool.Pool {
	return d.pool
}

func validSpawn(s ObjectSpawn) error {
	if s.ID < 0 {
		return fmt.Errorf("spawn %d: negative object id %d", s.SpawnID, s.ID)
	}
	if !s.Position.Valid() {
		return fmt.Errorf("spawn %d: invalid position %s", s.SpawnID, s.Position)
	}
	return nil
}
