// Package service builds and runs the world server's long-lived services.
// Services are named in config and constructed through a closed registry of
// factories, so an unknown or duplicated name fails at startup.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/worldguard/internal/config"
	"github.com/udisondev/worldguard/internal/db"
	"github.com/udisondev/worldguard/internal/gameserver"
	"github.com/udisondev/worldguard/internal/world"
)

var (
	// ErrUnknownService is returned for a configured name with no factory.
	ErrUnknownService = errors.New("unknown service")
	// ErrDuplicateService is returned when a name is registered or configured twice.
	ErrDuplicateService = errors.New("duplicate service")
)

// ServerContext is the shared state handed to every service before Start.
type ServerContext struct {
	World      *world.World
	Config     config.WorldServer
	Queue      *gameserver.ActionQueue
	Dispatcher gameserver.Dispatcher
	// Spawns may be nil when no spawn store is configured.
	Spawns db.SpawnStore
}

// Service is a long-lived component started by the Manager.
type Service interface {
	SetContext(sc *ServerContext)
	// Start blocks until the service is done or ctx is canceled.
	Start(ctx context.Context) error
}

// Initializer is implemented by services with one-shot startup work.
// StartAll runs every Init to completion, in configuration order, before
// any Start.
type Initializer interface {
	Init(ctx context.Context) error
}

// Factory constructs a service bound to the world.
type Factory func(w *world.World) (Service, error)

// Registry maps service names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, f Factory) error {
	if _, ok := r.factories[name]; ok {
		return fmt.Errorf("registering %q: %w", name, ErrDuplicateService)
	}
	r.factories[name] = f
	return nil
}

// Names returns registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Built-in service names.
const (
	SpawnName  = "spawn"
	TickerName = "ticker"
)

// DefaultRegistry returns a registry with the built-in services.
func DefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	builtins := []struct {
		name    string
		factory Factory
	}{
		{SpawnName, NewSpawnService},
		{TickerName, NewTickerService},
	}
	for _, b := range builtins {
		if err := r.Register(b.name, b.factory); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Manager owns the configured services in configuration order.
type Manager struct {
	names    []string
	services map[string]Service
}

// NewManager builds every named service. It fails on the first unknown or
// duplicated name, or factory error; nothing is started.
func NewManager(reg *Registry, names []string, w *world.World) (*Manager, error) {
	m := &Manager{
		names:    make([]string, 0, len(names)),
		services: make(map[string]Service, len(names)),
	}
	for _, name := range names {
		if _, ok := m.services[name]; ok {
			return nil, fmt.Errorf("building service %q: %w", name, ErrDuplicateService)
		}
		factory, ok := reg.factories[name]
		if !ok {
			return nil, fmt.Errorf("building service %q: %w", name, ErrUnknownService)
		}
		svc, err := factory(w)
		if err != nil {
			return nil, fmt.Errorf("building service %q: %w", name, err)
		}
		m.names = append(m.names, name)
		m.services[name] = svc
	}
	return m, nil
}

// SetContext hands sc to every service.
func (m *Manager) SetContext(sc *ServerContext) {
	for _, name := range m.names {
		m.services[name].SetContext(sc)
	}
}

// Get returns the service registered under name.
func (m *Manager) Get(name string) (Service, bool) {
	svc, ok := m.services[name]
	return svc, ok
}

// Names returns service names in configuration order.
func (m *Manager) Names() []string {
	return slices.Clone(m.names)
}

// StartAll initializes services one after another in configuration order,
// then starts every service and waits for all of them. An Init error aborts
// startup before anything is started; the first Start error cancels the rest.
func (m *Manager) StartAll(ctx context.Context) error {
	for _, name := range m.names {
		initializer, ok := m.services[name].(Initializer)
		if !ok {
			continue
		}
		slog.Info("initializing service", "service", name)
		if err := initializer.Init(ctx); err != nil {
			return fmt.Errorf("service %s: init: %w", name, err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, name := range m.names {
		svc := m.services[name]
		g.Go(func() error {
			slog.Info("starting service", "service", name)
			if err := svc.Start(gctx); err != nil {
				return fmt.Errorf("service %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
