package widget

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/BrandonKowalski/telly/pkg/telly"
)

// ModuleLoader resolves a module name to the factory of its component.
// Load may block; it is always called off the event loop.
type ModuleLoader interface {
	Load(ctx context.Context, module string) (ComponentFactory, error)
}

// ModuleLoaderFunc adapts a function to ModuleLoader.
type ModuleLoaderFunc func(ctx context.Context, module string) (ComponentFactory, error)

func (f ModuleLoaderFunc) Load(ctx context.Context, module string) (ComponentFactory, error) {
	return f(ctx, module)
}

// Registry caches loaded components by module name and shares them between
// every ComponentContainer it is handed to. Concurrent loads of one module
// share a single ModuleLoader call.
//
// Containers Acquire the registry when created and Release it when
// destroyed; the cache is cleared when the last reference is released.
type Registry struct {
	mu         sync.Mutex
	components map[string]*Component
	refs       int
	loader     ModuleLoader
	group      singleflight.Group
}

// NewRegistry creates an empty registry resolving modules with loader.
func NewRegistry(loader ModuleLoader) *Registry {
	return &Registry{
		components: make(map[string]*Component),
		loader:     loader,
	}
}

// SetLoader replaces the module loader.
func (r *Registry) SetLoader(loader ModuleLoader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loader = loader
}

// Acquire adds a reference and returns r.
func (r *Registry) Acquire() *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs++
	return r
}

// Release drops a reference, clearing the cache when none remain.
func (r *Registry) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs == 0 {
		return
	}
	r.refs--
	if r.refs == 0 {
		clear(r.components)
	}
}

// Refs returns the number of live references.
func (r *Registry) Refs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs
}

// Get returns the cached component for module.
func (r *Registry) Get(module string) (*Component, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.components[module]
	return c, ok
}

// Has reports whether module is cached.
func (r *Registry) Has(module string) bool {
	_, ok := r.Get(module)
	return ok
}

// Put caches component under module. If the module is already cached the
// existing component is kept and returned.
func (r *Registry) Put(module string, component *Component) *Component {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.components[module]; ok {
		return existing
	}
	component.module = module
	r.components[module] = component
	return component
}

// Len returns the number of cached components.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.components)
}

// Modules returns the cached module names, sorted.
func (r *Registry) Modules() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	modules := make([]string, 0, len(r.components))
	for m := range r.components {
		modules = append(modules, m)
	}
	slices.Sort(modules)
	return modules
}

// Clear empties the cache. Components currently shown stay attached to
// their containers but will be reloaded next time they are shown.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.components)
}

// Resolve returns the factory for module. Callers asking for a module that
// is already being resolved wait for the same load. The load itself is not
// cancelled with ctx since other callers may share it; Resolve just stops
// waiting.
func (r *Registry) Resolve(ctx context.Context, module string) (ComponentFactory, error) {
	r.mu.Lock()
	loader := r.loader
	r.mu.Unlock()

	if loader == nil {
		return nil, telly.NewLoadError(module, telly.ErrModuleNotFound)
	}

	ch := r.group.DoChan(module, func() (any, error) {
		return loader.Load(context.WithoutCancel(ctx), module)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		factory, _ := res.Val.(ComponentFactory)
		if factory == nil {
			return nil, telly.NewLoadError(module, telly.ErrModuleNotFound)
		}
		return factory, nil
	}
}
