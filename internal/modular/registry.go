package modular

import (
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Registry owns the application and module caches for one host lifetime.
// Cached values are read without locking; construction is serialized by mu
// and re-checked after acquiring it.
type Registry struct {
	env   Environment
	obs   Observer
	clock func() time.Time

	mu      sync.Mutex
	app     atomic.Pointer[Application]
	modules sync.Map // name -> *Module
}

type Option func(*Registry)

// WithObserver routes registry events to obs.
func WithObserver(obs Observer) Option {
	return func(r *Registry) {
		if obs != nil {
			r.obs = obs
		}
	}
}

// WithClock overrides the module construction timestamp source.
func WithClock(clock func() time.Time) Option {
	return func(r *Registry) {
		if clock != nil {
			r.clock = clock
		}
	}
}

func NewRegistry(env Environment, opts ...Option) *Registry {
	r := &Registry{
		env:   env,
		obs:   noopObserver{},
		clock: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Application returns the registry's Application, loading it on first use.
// A failed load is not cached.
func (r *Registry) Application() (*Application, error) {
	if app := r.app.Load(); app != nil {
		return app, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if app := r.app.Load(); app != nil {
		return app, nil
	}

	name := r.env.ApplicationName()
	pkg, err := r.env.LoadPackage(name)
	if err != nil {
		return nil, fmt.Errorf("load application %q: %w", name, err)
	}
	app := newApplication(name, pkg)
	r.app.Store(app)

	log.Info().
		Str("application", name).
		Strs("modules", app.ModuleNames).
		Msg("application loaded")
	return app, nil
}

// Module returns the named module. Names the application does not declare
// yield the empty sentinel Module and no error, as do blank names.
func (r *Registry) Module(name string) (*Module, error) {
	if m, ok := r.modules.Load(name); ok {
		r.obs.ModuleResolved(name, ModuleCached)
		return m.(*Module), nil
	}
	if strings.TrimSpace(name) == "" {
		r.obs.ModuleResolved(name, ModuleUnknown)
		return emptyModule(r.clock()), nil
	}

	app, err := r.Application()
	if err != nil {
		return nil, err
	}
	if !app.Declares(name) {
		r.obs.ModuleResolved(name, ModuleUnknown)
		return emptyModule(r.clock()), nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.modules.Load(name); ok {
		r.obs.ModuleResolved(name, ModuleCached)
		return m.(*Module), nil
	}

	pkg, err := r.env.LoadPackage(name)
	if err != nil {
		return nil, fmt.Errorf("load module %q: %w", name, err)
	}
	m := newModule(name, pkg, r.clock(), r.obs)
	r.modules.Store(name, m)
	r.obs.ModuleResolved(name, ModuleCreated)

	log.Debug().
		Str("module", name).
		Int("assets", len(m.Assets)).
		Int("features", len(m.Info.Features)).
		Msg("module loaded")
	return m, nil
}

// Modules returns every declared module in declaration order.
func (r *Registry) Modules() ([]*Module, error) {
	app, err := r.Application()
	if err != nil {
		return nil, err
	}
	out := make([]*Module, 0, len(app.ModuleNames))
	for _, name := range app.ModuleNames {
		m, err := r.Module(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// LoadedModules is the number of constructed modules.
func (r *Registry) LoadedModules() int {
	n := 0
	r.modules.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
