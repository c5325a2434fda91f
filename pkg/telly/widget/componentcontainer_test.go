package widget

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/config"
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
)

// screen returns a factory for a component holding one button, named
// module+"_btn".
func screen(module string) ComponentFactory {
	return func() *Component {
		c := NewComponent(module)
		c.AppendChildWidget(NewTextButton(module+"_btn", module))
		return c
	}
}

func modal(module string) ComponentFactory {
	return func() *Component {
		c := screen(module)()
		c.SetModal(true)
		return c
	}
}

// cached builds a registry with the modules already loaded.
func cached(factories map[string]ComponentFactory) *Registry {
	r := NewRegistry(nil)
	for module, f := range factories {
		r.Put(module, f())
	}
	return r
}

func runPosted(t *testing.T, app *testApp, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for range n {
		require.NoError(t, app.Loop().RunOne(ctx))
	}
}

func newContentApp(t *testing.T, reg *Registry) (*testApp, *ComponentContainer) {
	t.Helper()
	app := newTestApp(t)
	cc := NewComponentContainer("content", reg)
	app.root.AppendChildWidget(cc)
	return app, cc
}

func TestShowCachedComponent(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"home": screen("home")})
	app, cc := newContentApp(t, reg)

	var events []EventType
	for _, et := range []EventType{EventBeforeRender, EventBeforeShow, EventAfterShow, EventBeforeHide, EventAfterHide} {
		app.root.AddEventListener(et, func(ev *Event) {
			assert.Same(t, cc, ev.Container)
			events = append(events, ev.Type)
		})
	}

	cc.Show("home", ShowOptions{Args: Args{"id": 7}})

	require.NotNil(t, cc.Content())
	assert.Equal(t, "home", cc.CurrentModule())
	assert.Equal(t, Args{"id": 7}, cc.CurrentArguments())
	assert.Equal(t, "home", cc.Content().Module())
	assert.Equal(t, []EventType{EventBeforeRender, EventBeforeShow, EventAfterShow}, events)

	el := cc.Content().OutputElement()
	assert.Same(t, cc.OutputElement(), el.Parent)
	assert.True(t, el.Visible)
	assert.Equal(t, "home_btn", app.FocussedWidget().ID())
	assert.True(t, cc.HasClass(constants.ClassActive))

	// Showing the same module again still runs the full lifecycle.
	events = nil
	cc.Show("home", ShowOptions{})
	assert.Equal(t, []EventType{EventBeforeHide, EventAfterHide, EventBeforeRender, EventBeforeShow, EventAfterShow}, events)
	assert.Equal(t, "home_btn", app.FocussedWidget().ID())
	assert.Len(t, cc.OutputElement().Children, 1)
}

func TestShowFadesUnlessDisabled(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"home": screen("home")})
	app, cc := newContentApp(t, reg)
	cc.Show("home", ShowOptions{})
	assert.True(t, cc.Content().OutputElement().Animating())
	assert.Contains(t, app.surface.Root().Find("home").Classes, constants.ClassComponent)

	cfg := config.Default()
	cfg.Widgets.ComponentContainer.Fade = config.Bool(false)
	noFade := newTestAppWithConfig(t, cfg)
	cc2 := NewComponentContainer("content", cached(map[string]ComponentFactory{"home": screen("home")}))
	noFade.root.AppendChildWidget(cc2)
	cc2.Show("home", ShowOptions{})

	el := cc2.Content().OutputElement()
	assert.False(t, el.Animating())
	assert.Equal(t, 1.0, el.Opacity)
}

func TestPreventedBeforeShowSkipsAnimation(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"home": screen("home")})
	_, cc := newContentApp(t, reg)
	cc.AddEventListener(EventBeforeShow, func(ev *Event) { ev.PreventDefault() })

	cc.Show("home", ShowOptions{})
	el := cc.Content().OutputElement()
	assert.False(t, el.Visible)
	assert.Same(t, cc.OutputElement(), el.Parent)
	assert.Same(t, cc.Content(), cc.ActiveChildWidget())
}

func TestShowShowBackRestoresPrevious(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"a": screen("a"), "b": screen("b")})
	app := newTestApp(t)
	menu := newMenu(app, "menu", Vertical, "m1", "m2")
	cc := NewComponentContainer("content", reg)
	app.root.AppendChildWidget(cc)

	m2 := menu.ChildWidget("m2").(*Button)
	cc.Show("a", ShowOptions{Args: Args{"x": 1}, Focus: m2})
	cc.Show("b", ShowOptions{Args: Args{"y": 2}, KeepHistory: true})

	require.Equal(t, 1, cc.HistoryLen())
	entry := cc.History()[0]
	assert.Equal(t, "a", entry.Module)
	assert.Same(t, m2, entry.PreviousFocus())
	assert.Nil(t, cc.PreviousFocus())

	cc.Back()
	assert.Equal(t, "a", cc.CurrentModule())
	assert.Equal(t, Args{"x": 1}, cc.CurrentArguments())
	assert.Same(t, m2, cc.PreviousFocus())
	assert.Zero(t, cc.HistoryLen())
}

func TestHistoryRoundTrip(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"m": screen("m"), "n": screen("n")})
	app, cc := newContentApp(t, reg)

	m, _ := reg.Get("m")
	m.SetStateFunc(func() State { return State{"scroll": 3} })

	var shown []Args
	var states []State
	var fromBack []bool
	m.OnShow(func(args Args, state State, back bool) {
		shown = append(shown, args)
		states = append(states, state)
		fromBack = append(fromBack, back)
	})

	cc.PushComponent("m", Args{"a": 1})
	cc.PushComponent("n", nil)
	assert.Equal(t, "n_btn", app.FocussedWidget().ID())
	cc.Back()

	assert.Equal(t, Args{"a": 1}, cc.CurrentArguments())
	require.Len(t, shown, 2)
	assert.Equal(t, Args{"a": 1}, shown[1])
	assert.Equal(t, State{"scroll": 3}, states[1])
	assert.Equal(t, []bool{false, true}, fromBack)
	assert.Equal(t, "m_btn", app.FocussedWidget().ID())
}

func TestShowWithoutHistoryClearsStack(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"a": screen("a"), "b": screen("b"), "c": screen("c")})
	_, cc := newContentApp(t, reg)

	cc.Show("a", ShowOptions{})
	cc.PushComponent("b", nil)
	require.Equal(t, 1, cc.HistoryLen())

	cc.Show("c", ShowOptions{})
	assert.Zero(t, cc.HistoryLen())
}

func TestBackWithEmptyHistoryHides(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"a": screen("a")})
	_, cc := newContentApp(t, reg)

	// Nothing shown: safe no-op.
	assert.NotPanics(t, cc.Back)

	cc.Show("a", ShowOptions{})
	el := cc.Content().OutputElement()

	assert.NotPanics(t, cc.Back)
	assert.Nil(t, cc.Content())
	assert.Empty(t, cc.CurrentModule())
	assert.Zero(t, cc.ChildWidgetCount())
	assert.Nil(t, el.Parent)
}

func TestPreventedBeforeHideRetainsElement(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"a": screen("a")})
	_, cc := newContentApp(t, reg)
	cc.Show("a", ShowOptions{})
	component := cc.Content()

	cc.AddEventListener(EventBeforeHide, func(ev *Event) { ev.PreventDefault() })
	cc.Hide(HideOptions{})

	assert.Nil(t, cc.Content())
	assert.False(t, cc.HasChildWidget("a"))
	assert.Nil(t, component.Parent())
	assert.Same(t, cc.OutputElement(), component.OutputElement().Parent)
}

func TestHideFocusToComponent(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"a": screen("a")})
	app := newTestApp(t)
	cc := NewComponentContainer("content", reg)
	app.root.AppendChildWidget(cc)
	sidebar := NewList("sidebar", Vertical)
	sidebar.AppendChildWidget(NewButton("s1"))
	app.root.AppendChildWidget(sidebar)

	cc.Show("a", ShowOptions{})
	assert.Equal(t, "s1", app.FocussedWidget().ID())
	require.True(t, cc.Content().ChildWidget("a_btn").(*Button).Focus())
	require.Equal(t, "a_btn", app.FocussedWidget().ID())

	cc.Hide(HideOptions{FocusToComponent: "sidebar"})
	assert.Equal(t, "s1", app.FocussedWidget().ID())
}

func TestModalRestoresFocus(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"settings": modal("settings")})
	app := newTestApp(t)
	menu := newMenu(app, "menu", Vertical, "m1", "m2")
	cc := NewComponentContainer("overlay", reg)
	app.root.AppendChildWidget(cc)

	m2 := menu.ChildWidget("m2").(*Button)
	require.True(t, m2.Focus())

	cc.Show("settings", ShowOptions{Focus: m2})
	require.True(t, cc.Content().IsModal())
	// Showing does not steal focus from outside the container.
	assert.Same(t, m2, app.FocussedWidget())

	require.True(t, cc.Content().ChildWidget("settings_btn").(*Button).Focus())
	assert.Equal(t, "settings_btn", app.FocussedWidget().ID())

	app.HandleKey(constants.VirtualButtonBack)
	assert.Equal(t, "settings", cc.CurrentModule(), "no history, back key is not routed")

	cc.Back()
	assert.Nil(t, cc.Content())
	assert.Same(t, m2, app.FocussedWidget())
}

func TestBackKeyRoutesToComponentContainer(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"a": screen("a"), "b": screen("b")})
	app, cc := newContentApp(t, reg)

	cc.Show("a", ShowOptions{})
	cc.PushComponent("b", nil)

	assert.True(t, app.HandleKey(constants.VirtualButtonBack))
	assert.Equal(t, "a", cc.CurrentModule())
	assert.False(t, app.HandleKey(constants.VirtualButtonBack))
}

func TestShowOnDetachedContainerWarns(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"a": screen("a")})
	cc := NewComponentContainer("content", reg)
	assert.NotPanics(t, func() { cc.Show("a", ShowOptions{}) })
	assert.Nil(t, cc.Content())
}

// gatedLoader resolves modules once their gate is closed.
type gatedLoader struct {
	mu        sync.Mutex
	gates     map[string]chan struct{}
	factories map[string]ComponentFactory
	calls     *atomic.Int64
}

func newGatedLoader(factories map[string]ComponentFactory) *gatedLoader {
	return &gatedLoader{
		gates:     make(map[string]chan struct{}),
		factories: factories,
		calls:     atomic.NewInt64(0),
	}
}

func (g *gatedLoader) gate(module string) chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	ch, ok := g.gates[module]
	if !ok {
		ch = make(chan struct{})
		g.gates[module] = ch
	}
	return ch
}

func (g *gatedLoader) release(module string) {
	close(g.gate(module))
}

func (g *gatedLoader) Load(ctx context.Context, module string) (ComponentFactory, error) {
	g.calls.Inc()
	select {
	case <-g.gate(module):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	f, ok := g.factories[module]
	if !ok {
		return nil, errors.New("no such module")
	}
	return f, nil
}

func TestAsyncLoad(t *testing.T) {
	loader := newGatedLoader(map[string]ComponentFactory{"home": screen("home")})
	app, cc := newContentApp(t, NewRegistry(loader))

	loaded := 0
	app.root.AddEventListener(EventLoad, func(ev *Event) {
		assert.Equal(t, "home", ev.Module)
		loaded++
	})

	cc.Show("home", ShowOptions{Args: Args{"q": "x"}})
	assert.Nil(t, cc.Content())
	assert.True(t, cc.IsLoading())
	assert.Equal(t, "home", cc.LoadingModule())
	assert.Equal(t, int64(1), app.Loading())

	loader.release("home")
	runPosted(t, app, 1)

	require.NotNil(t, cc.Content())
	assert.Equal(t, "home", cc.CurrentModule())
	assert.Equal(t, Args{"q": "x"}, cc.CurrentArguments())
	assert.False(t, cc.IsLoading())
	assert.Zero(t, app.Loading())
	assert.Equal(t, 1, loaded)
	assert.True(t, cc.Registry().Has("home"))
	assert.Equal(t, "home_btn", app.FocussedWidget().ID())

	// Cached now: no further load.
	cc.Show("home", ShowOptions{})
	assert.Equal(t, int64(1), loader.calls.Load())
	assert.Equal(t, 1, loaded)
}

func TestRapidShowsOfSameModule(t *testing.T) {
	built := atomic.NewInt64(0)
	loader := newGatedLoader(map[string]ComponentFactory{"x": func() *Component {
		built.Inc()
		return screen("x")()
	}})
	app, cc := newContentApp(t, NewRegistry(loader))

	cc.Show("x", ShowOptions{Args: Args{"n": 1}})
	cc.Show("x", ShowOptions{Args: Args{"n": 2}})

	// The first request was cancelled and its completion is posted first.
	runPosted(t, app, 1)
	assert.Nil(t, cc.Content())
	assert.True(t, cc.IsLoading())

	loader.release("x")
	runPosted(t, app, 1)

	require.NotNil(t, cc.Content())
	assert.Equal(t, Args{"n": 2}, cc.CurrentArguments())
	assert.Equal(t, int64(1), built.Load())
	assert.Equal(t, int64(1), loader.calls.Load())
	assert.Zero(t, app.Loading())
}

func TestLaterShowSupersedesSlowLoad(t *testing.T) {
	loader := newGatedLoader(map[string]ComponentFactory{"slow": screen("slow"), "fast": screen("fast")})
	app, cc := newContentApp(t, NewRegistry(loader))
	loader.release("fast")

	cc.Show("slow", ShowOptions{})
	cc.Show("fast", ShowOptions{})
	runPosted(t, app, 2)

	require.NotNil(t, cc.Content())
	assert.Equal(t, "fast", cc.CurrentModule())
	assert.False(t, cc.Registry().Has("slow"))

	loader.release("slow")
	assert.Zero(t, app.Loop().Pending())
	assert.Equal(t, "fast", cc.CurrentModule())
}

func TestLoadFailureIsLogged(t *testing.T) {
	loader := newGatedLoader(nil)
	app, cc := newContentApp(t, NewRegistry(loader))
	loader.release("missing")

	cc.Show("missing", ShowOptions{})
	runPosted(t, app, 1)

	assert.Nil(t, cc.Content())
	assert.False(t, cc.IsLoading())
	assert.Contains(t, app.logs.String(), "Failed to load component")
}

func TestDestroyedApplicationAbortsLoad(t *testing.T) {
	loader := newGatedLoader(map[string]ComponentFactory{"x": screen("x")})
	app, cc := newContentApp(t, NewRegistry(loader))

	cc.Show("x", ShowOptions{})
	app.Destroy()
	loader.release("x")
	runPosted(t, app, 1)

	assert.Nil(t, cc.Content())
	assert.False(t, cc.Registry().Has("x"))
	assert.Contains(t, app.logs.String(), "Discarding component load")
	assert.Contains(t, app.logs.String(), telly.ErrApplicationDestroyed.Error())

	cc.Show("x", ShowOptions{})
	assert.Nil(t, cc.Content())
	assert.Zero(t, app.Loading())
	assert.Contains(t, app.logs.String(), "Not showing component")
}

func TestContainersShareRegistry(t *testing.T) {
	reg := cached(map[string]ComponentFactory{"a": screen("a")})
	app := newTestApp(t, WithRegistry(reg))

	left := NewComponentContainer("left", nil)
	right := NewComponentContainer("right", nil)
	app.root.AppendChildWidget(left)
	app.root.AppendChildWidget(right)

	assert.Same(t, reg, left.Registry())
	assert.Same(t, reg, right.Registry())
	assert.Equal(t, 2, reg.Refs())

	left.Destroy()
	assert.True(t, reg.Has("a"))
	right.Destroy()
	assert.False(t, reg.Has("a"))
}
