package program

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/zjrosen/enroll/internal/collaborator"
	"github.com/zjrosen/enroll/internal/log"
)

var (
	factoriesMu sync.RWMutex
	factories   = make(map[ID]Factory)
)

// Register adds a factory to the process-wide program table.
// It is meant to be called from init() in program packages and panics if id
// is empty, factory is nil, or id is already registered.
func Register(id ID, factory Factory) {
	factoriesMu.Lock()
	defer factoriesMu.Unlock()

	if id == "" {
		panic("program: Register called with empty id")
	}
	if factory == nil {
		panic("program: Register factory is nil for " + string(id))
	}
	if _, dup := factories[id]; dup {
		panic("program: Register called twice for " + string(id))
	}
	factories[id] = factory
}

// Registered returns the ids in the process-wide table, sorted.
func Registered() []ID {
	factoriesMu.RLock()
	defer factoriesMu.RUnlock()
	return slices.Sorted(maps.Keys(factories))
}

// Registry resolves program ids to handlers. It is immutable once built and
// safe for concurrent use.
type Registry struct {
	factories  map[ID]Factory
	deps       collaborator.Set
	middleware []Middleware
}

// Option configures a Registry.
type Option func(*Registry)

// WithMiddleware wraps every resolved handler. The first middleware is the
// outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(r *Registry) {
		r.middleware = append(r.middleware, mw...)
	}
}

// WithFactories replaces the process-wide table with an explicit one.
func WithFactories(table map[ID]Factory) Option {
	return func(r *Registry) {
		r.factories = make(map[ID]Factory, len(table))
		for id, f := range table {
			if f == nil {
				panic("program: nil factory for " + string(id))
			}
			r.factories[id] = f
		}
	}
}

// NewRegistry snapshots the registered factories into a Registry whose
// handlers are built with deps.
func NewRegistry(deps collaborator.Set, opts ...Option) *Registry {
	factoriesMu.RLock()
	r := &Registry{
		factories: maps.Clone(factories),
		deps:      deps,
	}
	factoriesMu.RUnlock()

	for _, opt := range opts {
		opt(r)
	}
	log.Debug(log.CatRegistry, "registry built", "programs", len(r.factories))
	return r
}

// Resolve constructs a fresh handler for id.
// Returns *UnknownProgramError if id is not registered.
func (r *Registry) Resolve(id ID) (Handler, error) {
	factory, ok := r.factories[id]
	if !ok {
		return nil, &UnknownProgramError{Program: id}
	}

	h := factory(r.deps)
	if h == nil {
		return nil, fmt.Errorf("%w: %s", ErrNilHandler, id)
	}
	for i := len(r.middleware) - 1; i >= 0; i-- {
		h = r.middleware[i](id, h)
	}
	return h, nil
}

// Enroll resolves id and enrolls user. Errors from the handler are returned
// as the handler produced them.
func (r *Registry) Enroll(ctx context.Context, id ID, user string) error {
	h, err := r.Resolve(id)
	if err != nil {
		log.Warn(log.CatRegistry, "resolve failed", "program", id, "error", err)
		return err
	}
	return h.Enroll(ctx, user)
}

// Programs returns the registered ids, sorted.
func (r *Registry) Programs() []ID {
	return slices.Sorted(maps.Keys(r.factories))
}

// IsRegistered reports whether id has a factory.
func (r *Registry) IsRegistered(id ID) bool {
	_, ok := r.factories[id]
	return ok
}
