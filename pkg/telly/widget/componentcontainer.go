package widget

import (
	"context"
	"weak"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
)

// ShowOptions controls how a ComponentContainer shows a module.
type ShowOptions struct {
	Args Args

	// KeepHistory pushes the outgoing component onto the history stack so
	// Back can return to it. Without it the history is cleared.
	KeepHistory bool

	// State is handed to the incoming component's show listeners. Back
	// passes the state the component reported when it was left.
	State State

	// FromBack marks a back navigation; nothing is pushed onto the history.
	FromBack bool

	// Focus is remembered as the widget to return focus to when a modal
	// component is hidden. On a back navigation it is focussed once the
	// component is shown.
	Focus *Button
}

// HideOptions controls how a ComponentContainer hides its component.
type HideOptions struct {
	// FocusToComponent is the id of a sibling of the container to make
	// active after hiding, if the container is focussed.
	FocusToComponent string

	Args        Args
	KeepHistory bool
	State       State
	FromBack    bool
}

// ComponentContainer shows one Component at a time, resolving module names
// through a Registry and keeping a navigation history.
//
// Showing a module that is not cached yet loads it in the background and
// returns immediately; the container stays empty until the load completes on
// the application's event loop. A later Show cancels a pending load, and a
// completion that is no longer the latest request is discarded.
type ComponentContainer struct {
	*Container

	registry *Registry

	loadingIndex  *atomic.Uint64
	loadingModule string
	cancelLoad    context.CancelFunc

	currentModule    string
	currentComponent *Component
	currentArgs      Args
	history          HistoryStack
	previousFocus    weak.Pointer[Button]
}

// NewComponentContainer creates an empty container sharing registry. With a
// nil registry the application's registry is used once the container is
// attached.
func NewComponentContainer(id string, registry *Registry) *ComponentContainer {
	c := &ComponentContainer{
		Container:    newContainer(id),
		loadingIndex: atomic.NewUint64(0),
	}
	c.Extend(c)
	c.AddClass(constants.ClassComponentContainer)
	if registry != nil {
		c.registry = registry.Acquire()
	}
	return c
}

// Registry returns the registry components are cached in, or nil if none
// was given and the container is not attached to an application.
func (c *ComponentContainer) Registry() *Registry {
	if c.registry == nil {
		if app := c.Application(); app != nil {
			c.registry = app.Registry().Acquire()
		}
	}
	return c.registry
}

// Content returns the component currently shown, or nil.
func (c *ComponentContainer) Content() *Component {
	return c.currentComponent
}

// CurrentModule returns the module currently shown, or "".
func (c *ComponentContainer) CurrentModule() string {
	return c.currentModule
}

// CurrentArguments returns the arguments the current module was shown with.
func (c *ComponentContainer) CurrentArguments() Args {
	return c.currentArgs
}

// PreviousFocus returns the button focus returns to when a modal component
// is hidden.
func (c *ComponentContainer) PreviousFocus() *Button {
	return c.previousFocus.Value()
}

// History returns the navigation history, oldest first.
func (c *ComponentContainer) History() []HistoryEntry {
	return c.history.Entries()
}

func (c *ComponentContainer) HistoryLen() int {
	return c.history.Len()
}

// IsLoading reports whether a module load is pending.
func (c *ComponentContainer) IsLoading() bool {
	return c.cancelLoad != nil
}

// LoadingModule returns the module being loaded, or "".
func (c *ComponentContainer) LoadingModule() string {
	return c.loadingModule
}

// PushComponent shows module, keeping the current one in the history.
func (c *ComponentContainer) PushComponent(module string, args Args) {
	c.Show(module, ShowOptions{Args: args, KeepHistory: true})
}

// Show replaces the current component with module's. Showing the module
// already shown still hides and shows it again so lifecycle events fire.
func (c *ComponentContainer) Show(module string, opts ShowOptions) {
	app := c.Application()
	if app == nil {
		c.logger().Warn("Cannot show component on detached container",
			"container", c.id, "module", module, "error", telly.ErrNoApplication)
		return
	}
	if app.Destroyed() {
		app.Logger().Debug("Not showing component", "container", c.id, "module", module,
			"error", telly.ErrApplicationDestroyed)
		return
	}

	reg := c.Registry()

	c.stopLoading()
	seq := c.loadingIndex.Inc()
	c.loadingModule = module

	if component, ok := reg.Get(module); ok {
		c.loadingModule = ""
		c.display(app, module, component, opts)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancelLoad = cancel
	app.loadStarted()

	go func() {
		factory, err := reg.Resolve(ctx, module)
		app.Post(func() {
			app.loadFinished()
			c.loadComplete(ctx, app, module, seq, factory, err, opts)
		})
	}()
}

// stopLoading cancels the pending load, if any.
func (c *ComponentContainer) stopLoading() {
	if c.cancelLoad != nil {
		c.cancelLoad()
		c.cancelLoad = nil
	}
	c.loadingModule = ""
}

func (c *ComponentContainer) loadComplete(
	ctx context.Context,
	app *Application,
	module string,
	seq uint64,
	factory ComponentFactory,
	err error,
	opts ShowOptions,
) {
	if app.Destroyed() {
		app.Logger().Debug("Discarding component load", "container", c.id, "module", module,
			"error", telly.ErrApplicationDestroyed)
		return
	}
	if c.Application() != app {
		return
	}

	if ctx.Err() != nil || c.loadingModule != module || c.loadingIndex.Load() != seq {
		app.Logger().Debug("Discarding stale component load", "container", c.id, "module", module)
		return
	}
	c.stopLoading()

	if err != nil {
		app.Logger().Error("Failed to load component", "container", c.id, "module", module, "error", err)
		return
	}

	component := factory()
	if component == nil {
		app.Logger().Error("Failed to load component", "container", c.id, "module", module,
			"error", telly.NewLoadError(module, telly.ErrModuleNotFound))
		return
	}

	if cached := c.Registry().Put(module, component); cached == component {
		c.bubbleDetached(component, NewComponentEvent(EventLoad, c, component, opts.Args, nil, false))
	}

	c.Show(module, opts)
}

// bubbleDetached bubbles ev from a component that is not a child of c, as
// if it were.
func (c *ComponentContainer) bubbleDetached(component *Component, ev *Event) {
	cb := component.base()
	cb.parent = c
	cb.BubbleEvent(ev)
	cb.parent = nil
}

func (c *ComponentContainer) display(app *Application, module string, component *Component, opts ShowOptions) {
	d := app.Device()

	focussed, _ := app.FocussedWidget().(*Button)
	if c.currentComponent != nil {
		c.hide(HideOptions{
			Args:        opts.Args,
			KeepHistory: opts.KeepHistory,
			State:       opts.State,
			FromBack:    opts.FromBack,
		})
	}

	c.currentModule = module
	c.currentComponent = component
	c.currentArgs = opts.Args
	if !opts.FromBack {
		c.previousFocus = weakButton(opts.Focus)
	}

	// A component cached while focussed keeps its focus flags; clear them
	// unless focus is coming back into it.
	if !c.focussed {
		for w := Widget(component); w != nil; {
			w.base().removeFocus()
			composite, ok := w.(Composite)
			if !ok {
				break
			}
			w = composite.ActiveChildWidget()
		}
	}

	c.bubbleDetached(component, NewComponentEvent(EventBeforeRender, c, component, opts.Args, opts.State, opts.FromBack))
	el := component.Render(d)
	d.HideElement(device.AnimOptions{El: el, SkipAnim: true})

	c.insertChildWidget(len(c.childWidgetOrder), component, attachExisting)

	ev := NewComponentEvent(EventBeforeShow, c, component, opts.Args, opts.State, opts.FromBack)
	component.BubbleEvent(ev)

	if focussed != nil && focussed.Application() == app {
		focussed.Focus()
	}

	if !ev.IsDefaultPrevented() {
		d.ShowElement(device.AnimOptions{El: el, SkipAnim: !app.Config().FadeEnabled()})
	}

	component.BubbleEvent(NewComponentEvent(EventAfterShow, c, component, opts.Args, opts.State, opts.FromBack))

	if !c.SetActiveChildWidget(component) {
		app.Logger().Warn("Active component is not currently focusable", "container", c.id, "module", module)
	}

	if opts.FromBack && opts.Focus != nil && opts.Focus.Application() == app {
		opts.Focus.Focus()
	}
}

// Hide removes the current component. Without KeepHistory the history is
// cleared, and hiding a modal returns focus to where it was before the modal
// was shown.
func (c *ComponentContainer) Hide(opts HideOptions) {
	if c.currentComponent != nil {
		c.hide(opts)
	}

	if c.focussed && opts.FocusToComponent != "" && c.parent != nil {
		p := c.parent
		p.SetActiveChildWidget(p.container().ChildWidget(opts.FocusToComponent))
	}
}

func (c *ComponentContainer) hide(opts HideOptions) {
	component := c.currentComponent

	ev := NewComponentEvent(EventBeforeHide, c, component, opts.Args, opts.State, opts.FromBack)
	component.BubbleEvent(ev)

	var state State
	if opts.KeepHistory {
		state = component.CurrentState()
	}

	if c.activeChildWidget == Widget(component) {
		c.SetActiveChildFocussed(false)
	}

	// A prevented beforehide keeps the element on screen.
	c.RemoveChildWidget(component, ev.IsDefaultPrevented())
	c.currentComponent = nil

	c.bubbleDetached(component, NewComponentEvent(EventAfterHide, c, component, opts.Args, opts.State, opts.FromBack))

	if opts.KeepHistory {
		if !opts.FromBack {
			c.history.Push(HistoryEntry{
				Module:        c.currentModule,
				Args:          c.currentArgs,
				State:         state,
				previousFocus: c.previousFocus,
			})
		}
	} else {
		if component.IsModal() && !opts.FromBack {
			c.restoreModalFocus()
		}
		c.history.Clear()
	}

	c.currentModule = ""
	c.currentArgs = nil
}

func (c *ComponentContainer) restoreModalFocus() {
	var target *Button
	if bottom := c.history.Bottom(); bottom != nil {
		target = bottom.PreviousFocus()
	} else {
		target = c.PreviousFocus()
	}
	if target != nil {
		target.Focus()
	}
}

// Back returns to the previous history entry, showing it with the arguments
// and state it was left with. With an empty history the current component
// is hidden.
func (c *ComponentContainer) Back() {
	var focus *Button
	if c.currentComponent != nil && c.currentComponent.IsModal() {
		focus = c.PreviousFocus()
	}

	last := c.history.Pop()
	if last == nil {
		c.Hide(HideOptions{})
		return
	}

	c.previousFocus = last.previousFocus
	c.Show(last.Module, ShowOptions{
		Args:        last.Args,
		KeepHistory: true,
		State:       last.State,
		FromBack:    true,
		Focus:       focus,
	})
}

// Destroy cancels any pending load and releases the registry.
func (c *ComponentContainer) Destroy() {
	c.stopLoading()
	c.loadingIndex.Inc()
	if c.registry != nil {
		c.registry.Release()
		c.registry = nil
	}
}
