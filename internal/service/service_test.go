package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/worldguard/internal/config"
	"github.com/udisondev/worldguard/internal/db"
	"github.com/udisondev/worldguard/internal/gameserver"
	"github.com/udisondev/worldguard/internal/message"
	"github.com/udisondev/worldguard/internal/message/handler"
	"github.com/udisondev/worldguard/internal/message/handler/verify"
	"github.com/udisondev/worldguard/internal/model"
	"github.com/udisondev/worldguard/internal/testutil"
	"github.com/udisondev/worldguard/internal/world"
)

type stubService struct {
	started atomic.Bool
	sc      *ServerContext
	err     error
}

func (s *stubService) SetContext(sc *ServerContext) { s.sc = sc }

func (s *stubService) Start(context.Context) error {
	s.started.Store(true)
	return s.err
}

func stubFactory(svc *stubService) Factory {
	return func(*world.World) (Service, error) { return svc, nil }
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("a", stubFactory(&stubService{})))
	assert.ErrorIs(t, r.Register("a", stubFactory(&stubService{})), ErrDuplicateService)
}

func TestDefaultRegistry(t *testing.T) {
	r, err := DefaultRegistry()
	require.NoError(t, err)
	assert.Equal(t, []string{SpawnName, TickerName}, r.Names())

	// Built-ins go through Register, so re-registering a name is caught.
	assert.ErrorIs(t, r.Register(SpawnName, NewSpawnService), ErrDuplicateService)
}

func TestNewManager_FailsClosed(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("ok", stubFactory(&stubService{})))
	require.NoError(t, r.Register("broken", func(*world.World) (Service, error) {
		return nil, testutil.ErrSimulated
	}))

	tests := []struct {
		name  string
		names []string
		want  error
	}{
		{"unknown", []string{"ok", "missing"}, ErrUnknownService},
		{"duplicate", []string{"ok", "ok"}, ErrDuplicateService},
		{"factory error", []string{"broken"}, testutil.ErrSimulated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewManager(r, tt.names, world.New())
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, m)
		})
	}
}

func TestManager_Lifecycle(t *testing.T) {
	a, b := &stubService{}, &stubService{}
	r := NewRegistry()
	require.NoError(t, r.Register("a", stubFactory(a)))
	require.NoError(t, r.Register("b", stubFactory(b)))

	m, err := NewManager(r, []string{"b", "a"}, world.New())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, m.Names())

	got, ok := m.Get("a")
	require.True(t, ok)
	assert.Same(t, a, got)
	_, ok = m.Get("c")
	assert.False(t, ok)

	sc := &ServerContext{}
	m.SetContext(sc)
	assert.Same(t, sc, a.sc)
	assert.Same(t, sc, b.sc)

	require.NoError(t, m.StartAll(context.Background()))
	assert.True(t, a.started.Load())
	assert.True(t, b.started.Load())
}

func TestManager_StartAllPropagatesError(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("bad", stubFactory(&stubService{err: testutil.ErrSimulated})))

	m, err := NewManager(r, []string{"bad"}, world.New())
	require.NoError(t, err)
	m.SetContext(&ServerContext{})

	err = m.StartAll(context.Background())
	assert.ErrorIs(t, err, testutil.ErrSimulated)
	assert.Contains(t, err.Error(), "service bad")
}

func TestSpawnService(t *testing.T) {
	w := world.New()
	store := testutil.NewMockSpawnStore(
		db.ObjectSpawn{SpawnID: 1, ID: 10, Position: model.NewPosition(3205, 3200, 0)},
		db.ObjectSpawn{SpawnID: 2, ID: 11, Position: model.NewPosition(3300, 3300, 1), Dynamic: true},
	)

	svc, err := NewSpawnService(w)
	require.NoError(t, err)
	svc.SetContext(&ServerContext{World: w, Spawns: store})
	require.NoError(t, svc.(Initializer).Init(context.Background()))
	require.NoError(t, svc.Start(context.Background()))

	assert.Equal(t, 2, svc.(*SpawnService).Loaded())
	assert.Equal(t, 2, w.EntityCount())

	region, ok := w.Regions().Lookup(world.CoordinatesOf(model.NewPosition(3205, 3200, 0)))
	require.True(t, ok)
	objs := region.EntitiesAt(model.NewPosition(3205, 3200, 0), model.EntityTypeStaticObject)
	require.Len(t, objs, 1)
	assert.Equal(t, int32(10), objs[0].ID())
}

func TestSpawnService_StoreError(t *testing.T) {
	store := testutil.NewMockSpawnStore()
	store.LoadErr = testutil.ErrSimulated

	svc, err := NewSpawnService(world.New())
	require.NoError(t, err)
	svc.SetContext(&ServerContext{Spawns: store})
	assert.ErrorIs(t, svc.(Initializer).Init(context.Background()), testutil.ErrSimulated)
}

func TestSpawnService_NoStore(t *testing.T) {
	svc, err := NewSpawnService(world.New())
	require.NoError(t, err)
	svc.SetContext(&ServerContext{})
	assert.NoError(t, svc.(Initializer).Init(context.Background()))
}

func TestTickerService(t *testing.T) {
	w := world.New()
	player := testutil.SpawnPlayer(t, w, "alice", model.NewPosition(3200, 3200, 0))
	defs := testutil.Definitions(t, nil)
	reg, err := verify.DefaultRegistry(w, defs, verify.DefaultPolicy(), nil)
	require.NoError(t, err)

	cfg := config.DefaultWorldServer()
	cfg.TickInterval = time.Millisecond
	queue := gameserver.NewActionQueue(8)

	svc, err := NewTickerService(w)
	require.NoError(t, err)
	assert.Error(t, svc.Start(context.Background()), "context not set")

	svc.SetContext(&ServerContext{World: w, Config: cfg, Queue: queue, Dispatcher: reg})
	require.NoError(t, queue.Submit(player, message.WalkMessage{Steps: []model.Position{model.NewPosition(3201, 3200, 0)}}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	proc := svc.(*TickerService).Processor()
	require.Eventually(t, func() bool {
		accepted, _ := proc.Totals()
		return accepted == 1
	}, time.Second, time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err, "cancellation is a clean stop")
	case <-time.After(time.Second):
		t.Fatal("ticker did not stop")
	}
}

func TestManager_DefaultServices(t *testing.T) {
	w := world.New()
	reg, err := DefaultRegistry()
	require.NoError(t, err)
	m, err := NewManager(reg, config.DefaultWorldServer().Services, w)
	require.NoError(t, err)

	store := testutil.NewMockSpawnStore(db.ObjectSpawn{SpawnID: 1, ID: 10, Position: model.NewPosition(1, 1, 0)})
	cfg := config.DefaultWorldServer()
	cfg.TickInterval = time.Millisecond
	m.SetContext(&ServerContext{
		World:      w,
		Config:     cfg,
		Queue:      gameserver.NewActionQueue(1),
		Dispatcher: nopDispatcher{},
		Spawns:     store,
	})

	ctx := testutil.ContextWithTimeout(t, 50*time.Millisecond)
	require.NoError(t, m.StartAll(ctx))
	assert.Equal(t, 1, w.EntityCount())
}

func TestManager_StartAll_InitBeforeStart(t *testing.T) {
	w := world.New()
	reg, err := DefaultRegistry()
	require.NoError(t, err)
	// ticker listed first: ordering must not depend on config order
	m, err := NewManager(reg, []string{TickerName, SpawnName}, w)
	require.NoError(t, err)

	store := testutil.NewMockSpawnStore(
		db.ObjectSpawn{SpawnID: 1, ID: 10, Position: model.NewPosition(3205, 3200, 0)},
		db.ObjectSpawn{SpawnID: 2, ID: 11, Position: model.NewPosition(3206, 3200, 0)},
	)
	store.Gate = make(chan struct{})

	cfg := config.DefaultWorldServer()
	cfg.TickInterval = time.Millisecond
	m.SetContext(&ServerContext{
		World:      w,
		Config:     cfg,
		Queue:      gameserver.NewActionQueue(1),
		Dispatcher: nopDispatcher{},
		Spawns:     store,
	})

	svc, ok := m.Get(TickerName)
	require.True(t, ok)
	proc := svc.(*TickerService).Processor()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.StartAll(ctx) }()

	// While spawns are blocked, no tick may run.
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, proc.Tick(), "ticker ran against a half-loaded world")
	assert.Zero(t, w.EntityCount())

	close(store.Gate)
	require.Eventually(t, func() bool { return proc.Tick() > 0 }, time.Second, time.Millisecond)
	assert.Equal(t, 2, w.EntityCount(), "world fully loaded before the first tick")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("StartAll did not return")
	}
}

func TestManager_StartAll_InitErrorAbortsStartup(t *testing.T) {
	w := world.New()
	reg, err := DefaultRegistry()
	require.NoError(t, err)
	m, err := NewManager(reg, []string{SpawnName, TickerName}, w)
	require.NoError(t, err)

	store := testutil.NewMockSpawnStore()
	store.LoadErr = testutil.ErrSimulated
	cfg := config.DefaultWorldServer()
	cfg.TickInterval = time.Millisecond
	m.SetContext(&ServerContext{
		World:      w,
		Config:     cfg,
		Queue:      gameserver.NewActionQueue(1),
		Dispatcher: nopDispatcher{},
		Spawns:     store,
	})

	err = m.StartAll(context.Background())
	assert.ErrorIs(t, err, testutil.ErrSimulated)
	assert.Contains(t, err.Error(), "service spawn: init")

	svc, _ := m.Get(TickerName)
	assert.Zero(t, svc.(*TickerService).Processor().Tick(), "ticker must not start")
}

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(uint64, *model.Player, message.Message) (handler.Outcome, error) {
	return handler.Rejected, errors.New("unused")
}
