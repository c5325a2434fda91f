package widget

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/telly/pkg/telly"
)

func TestRegistryRefCounting(t *testing.T) {
	r := NewRegistry(nil)
	r.Put("a", NewComponent("a"))

	r.Acquire()
	r.Acquire()
	assert.Equal(t, 2, r.Refs())

	r.Release()
	assert.Equal(t, 1, r.Len())

	r.Release()
	assert.Zero(t, r.Refs())
	assert.Zero(t, r.Len())

	// Extra releases are ignored.
	r.Release()
	assert.Zero(t, r.Refs())
}

func TestRegistryPutKeepsFirst(t *testing.T) {
	r := NewRegistry(nil)
	first := NewComponent("first")
	second := NewComponent("second")

	assert.Same(t, first, r.Put("m", first))
	assert.Same(t, first, r.Put("m", second))
	assert.Equal(t, "m", first.Module())
	assert.Empty(t, second.Module())

	r.Put("b", NewComponent("b"))
	assert.Equal(t, []string{"b", "m"}, r.Modules())

	r.Clear()
	assert.False(t, r.Has("m"))
}

func TestRegistryResolveWithoutLoader(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.Resolve(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, telly.IsLoadError(err))
	assert.True(t, telly.IsModuleNotFound(err))
}

func TestRegistryResolveNilFactory(t *testing.T) {
	r := NewRegistry(ModuleLoaderFunc(func(ctx context.Context, module string) (ComponentFactory, error) {
		return nil, nil
	}))
	_, err := r.Resolve(context.Background(), "empty")
	assert.True(t, telly.IsModuleNotFound(err))
}

func TestRegistryResolveDeduplicates(t *testing.T) {
	loader := newGatedLoader(map[string]ComponentFactory{"x": screen("x")})
	r := NewRegistry(loader)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = r.Resolve(context.Background(), "x")
		}()
	}

	require.Eventually(t, func() bool { return loader.calls.Load() == 1 }, time.Second, time.Millisecond)
	// Give the remaining callers a moment to join the pending load.
	time.Sleep(20 * time.Millisecond)
	loader.release("x")
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(1), loader.calls.Load())
}

func TestRegistryResolveStopsWaitingOnCancel(t *testing.T) {
	loader := newGatedLoader(map[string]ComponentFactory{"x": screen("x")})
	r := NewRegistry(loader)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := r.Resolve(ctx, "x")
	assert.True(t, errors.Is(err, context.Canceled))

	loader.release("x")
}

func TestRegistrySetLoader(t *testing.T) {
	r := NewRegistry(nil)
	r.SetLoader(ModuleLoaderFunc(func(ctx context.Context, module string) (ComponentFactory, error) {
		return screen(module), nil
	}))

	f, err := r.Resolve(context.Background(), "late")
	require.NoError(t, err)
	assert.Equal(t, "late", f().ID())
}
