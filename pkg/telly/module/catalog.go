package module

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/widget"
)

// Catalog is a widget.ModuleLoader backed by registered component factories.
// Applications register every screen up front and hand the catalog to the
// application or a registry:
//
//	catalog := module.New().
//	    Register("home", newHome).
//	    Register("detail", newDetail)
//
//	app := widget.NewApplication(dev, widget.WithLoader(catalog))
type Catalog struct {
	mu        sync.RWMutex
	factories map[string]widget.ComponentFactory
	latency   time.Duration
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{
		factories: make(map[string]widget.ComponentFactory),
	}
}

// Register adds a module. Registering a name again replaces its factory.
func (c *Catalog) Register(name string, factory widget.ComponentFactory) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = factory
	return c
}

// WithLatency delays every Load by d, to mimic modules fetched over the
// network.
func (c *Catalog) WithLatency(d time.Duration) *Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latency = d
	return c
}

// Has reports whether name is registered.
func (c *Catalog) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.factories[name]
	return ok
}

// Modules returns the registered names, sorted.
func (c *Catalog) Modules() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Load returns the factory registered under name.
func (c *Catalog) Load(ctx context.Context, name string) (widget.ComponentFactory, error) {
	c.mu.RLock()
	factory, ok := c.factories[name]
	latency := c.latency
	c.mu.RUnlock()

	if latency > 0 {
		timer := time.NewTimer(latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, telly.NewLoadError(name, ctx.Err())
		case <-timer.C:
		}
	}

	if !ok {
		return nil, telly.NewLoadError(name, telly.ErrModuleNotFound)
	}
	return factory, nil
}

var _ widget.ModuleLoader = (*Catalog)(nil)
