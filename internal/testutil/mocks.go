package testutil

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/udisondev/worldguard/internal/db"
)

// MockSpawnStore — in-memory имплементация db.SpawnStore для unit тестов.
// Не требует реального PostgreSQL.
type MockSpawnStore struct {
	mu     sync.RWMutex
	spawns map[int64]db.ObjectSpawn
	closed bool

	// LoadErr, если задан, возвращается из LoadObjectSpawns.
	LoadErr error
	// Gate, если задан, блокирует LoadObjectSpawns до закрытия канала или отмены ctx.
	Gate chan struct{}
}

// NewMockSpawnStore создаёт store с начальными spawns.
func NewMockSpawnStore(spawns ...db.ObjectSpawn) *MockSpawnStore {
	m := &MockSpawnStore{spawns: make(map[int64]db.ObjectSpawn, len(spawns))}
	for _, s := range spawns {
		m.spawns[s.SpawnID] = s
	}
	return m
}

// LoadObjectSpawns возвращает spawns, отсортированные по SpawnID.
func (m *MockSpawnStore) LoadObjectSpawns(ctx context.Context) ([]db.ObjectSpawn, error) {
	if m.Gate != nil {
		select {
		case <-m.Gate:
		case <-ctx.Done():
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	out := make([]db.ObjectSpawn, 0, len(m.spawns))
	for _, s := range m.spawns {
		out = append(out, s)
	}
	slices.SortFunc(out, func(a, b db.ObjectSpawn) int { return cmp.Compare(a.SpawnID, b.SpawnID) })
	return out, nil
}

// SaveObjectSpawn сохраняет spawn.
func (m *MockSpawnStore) SaveObjectSpawn(_ context.Context, s db.ObjectSpawn) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.spawns[s.SpawnID] = s
	return nil
}

// Close помечает store закрытым.
func (m *MockSpawnStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed сообщает, вызывался ли Close.
func (m *MockSpawnStore) Closed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}
