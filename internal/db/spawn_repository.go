package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/worldguard/internal/model"
)

// SpawnRepository reads and writes object spawns in PostgreSQL.
type SpawnRepository struct {
	pool *pgxpool.Pool
}

// NewSpawnRepository creates a new spawn repository.
func NewSpawnRepository(pool *pgxpool.Pool) *SpawnRepository {
	return &SpawnRepository{pool: pool}
}

// LoadObjectSpawns loads all object spawns ordered by spawn id.
func (r *SpawnRepository) LoadObjectSpawns(ctx context.Context) ([]ObjectSpawn, error) {
	query := `
		SELECT spawn_id, object_id, x, y, plane, dynamic, orientation, shape
		FROM object_spawns
		ORDER BY spawn_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading object spawns: %w", err)
	}
	defer rows.Close()

	spawns := make([]ObjectSpawn, 0, 64)
	for rows.Next() {
		var (
			s                  ObjectSpawn
			x, y               int32
			plane, orientation int16
			shape              int16
		)
		if err := rows.Scan(&s.SpawnID, &s.ID, &x, &y, &plane, &s.Dynamic, &orientation, &shape); err != nil {
			return nil, fmt.Errorf("scanning object spawn row: %w", err)
		}
		s.Position = model.NewPosition(x, y, int8(plane))
		s.Orientation = model.Orientation(orientation)
		s.Shape = uint8(shape)
		spawns = append(spawns, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating object spawn rows: %w", err)
	}
	return spawns, nil
}

// SaveObjectSpawn inserts or replaces a spawn.
func (r *SpawnRepository) SaveObjectSpawn(ctx context.Context, s ObjectSpawn) error {
	if err := validSpawn(s); err != nil {
		return err
	}

	query := `
		INSERT INTO object_spawns (spawn_id, object_id, x, y, plane, dynamic, orientation, shape)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (spawn_id) DO UPDATE SET
			object_id = EXCLUDED.object_id,
			x = EXCLUDED.x,
			y = EXCLUDED.y,
			plane = EXCLUDED.plane,
			dynamic = EXCLUDED.dynamic,
			orientation = EXCLUDED.orientation,
			shape = EXCLUDED.shape
	`
	_, err := r.pool.Exec(ctx, query,
		s.SpawnID, s.ID, s.Position.X, s.Position.Y, int16(s.Position.Plane),
		s.Dynamic, int16(s.Orientation), int16(s.Shape),
	)
	if err != nil {
		return fmt.Errorf("saving object spawn %d: %w", s.SpawnID, err)
	}
	return nil
}

// Close is a no-op; the pool is owned by DB.
func (r *SpawnRepository) Close() error {
	return nil
}
