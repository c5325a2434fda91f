package widget

import (
	"log/slog"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/config"
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
)

// Application owns the root widget, the device it renders to, and the event
// loop all widget mutation happens on.
type Application struct {
	device    device.Device
	root      Composite
	scheduler Scheduler
	registry  *Registry
	localizer Localizer
	logger    *slog.Logger

	destroyed *atomic.Bool
	loading   *atomic.Int64
}

// Option configures an Application.
type Option func(*Application)

// WithScheduler sets the event loop completions are posted to. The default
// is a new Loop, available through Loop().
func WithScheduler(s Scheduler) Option {
	return func(a *Application) {
		a.scheduler = s
	}
}

// WithRegistry sets the component registry shared by containers created
// through NewComponentContainer with a nil registry.
func WithRegistry(r *Registry) Option {
	return func(a *Application) {
		a.registry = r
	}
}

// WithLoader creates the default registry with loader.
func WithLoader(loader ModuleLoader) Option {
	return func(a *Application) {
		a.registry = NewRegistry(loader)
	}
}

// WithLocalizer sets the localizer used by localised labels.
func WithLocalizer(l Localizer) Option {
	return func(a *Application) {
		a.localizer = l
	}
}

// WithLogger overrides the device logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Application) {
		a.logger = logger
	}
}

// NewApplication creates an application rendering to d.
func NewApplication(d device.Device, opts ...Option) *Application {
	a := &Application{
		device:    d,
		destroyed: atomic.NewBool(false),
		loading:   atomic.NewInt64(0),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.scheduler == nil {
		a.scheduler = NewLoop()
	}
	if a.registry == nil {
		a.registry = NewRegistry(nil)
	}
	if a.logger == nil {
		a.logger = d.Logger()
	}
	if a.logger == nil {
		a.logger = telly.GetLogger()
	}
	return a
}

func (a *Application) Device() device.Device {
	return a.device
}

func (a *Application) Logger() *slog.Logger {
	return a.logger
}

func (a *Application) Config() config.Config {
	return a.device.Config()
}

func (a *Application) Registry() *Registry {
	return a.registry
}

// Loop returns the default scheduler, or nil if WithScheduler replaced it.
func (a *Application) Loop() *Loop {
	l, _ := a.scheduler.(*Loop)
	return l
}

// Post runs fn on the event loop.
func (a *Application) Post(fn func()) {
	a.scheduler.Post(fn)
}

// Localize resolves a message id, returning the id itself without a
// localizer.
func (a *Application) Localize(messageID string, data map[string]any) string {
	if a.localizer == nil {
		return messageID
	}
	return a.localizer.Localize(messageID, data)
}

// RootWidget returns the root container.
func (a *Application) RootWidget() Composite {
	return a.root
}

// SetRootWidget attaches root to the application and the device's root
// element. The root is always focussed; focus flows down its active path.
func (a *Application) SetRootWidget(root Composite) {
	if a.root != nil {
		old := a.root.base()
		old.app = nil
		old.RemoveClass(constants.ClassRootWidget)
		if old.output != nil {
			a.device.RemoveElement(old.output)
		}
	}

	a.root = root
	rb := root.base()
	rb.app = a
	rb.AddClass(constants.ClassRootWidget)
	rb.markFocussed()

	a.device.AppendChildElement(a.device.Root(), root.Render(a.device))
	root.container().SetActiveChildFocussed(true)
}

// FocussedWidget returns the focusable leaf holding focus, or nil. It follows
// active children down from the root for as long as they are focussed.
func (a *Application) FocussedWidget() Widget {
	if a.root == nil || !a.root.base().focussed {
		return nil
	}

	var w Widget = a.root
	for {
		composite, ok := w.(Composite)
		if !ok {
			break
		}
		active := composite.ActiveChildWidget()
		if active == nil || !active.base().focussed {
			break
		}
		w = active
	}

	if _, ok := w.(Focusable); !ok {
		return nil
	}
	return w
}

// HandleKey delivers a remote key press. A keydown event bubbles from the
// focussed widget (or the root when nothing is focussed). Unless a listener
// prevents the default, Select fires the focussed button's select event and
// Back navigates the nearest component container with history.
// It returns true if the key was consumed.
func (a *Application) HandleKey(key constants.VirtualButton) bool {
	if a.root == nil || a.Destroyed() {
		return false
	}

	target := a.FocussedWidget()
	if target == nil {
		target = a.root
	}

	ev := NewKeyEvent(key, target)
	target.base().BubbleEvent(ev)
	if ev.IsDefaultPrevented() {
		return true
	}

	switch key {
	case constants.VirtualButtonSelect:
		if b, ok := target.(*Button); ok && b.CanFocus() {
			b.Select()
			return true
		}
	case constants.VirtualButtonBack:
		for w := Widget(target); w != nil; {
			if cc, ok := w.(*ComponentContainer); ok && cc.HistoryLen() > 0 {
				cc.Back()
				return true
			}
			p := w.base().parent
			if p == nil {
				break
			}
			w = p
		}
	}
	return false
}

// Loading reports how many module loads are in flight.
func (a *Application) Loading() int64 {
	return a.loading.Load()
}

func (a *Application) loadStarted() {
	a.loading.Inc()
}

func (a *Application) loadFinished() {
	a.loading.Dec()
}

// Destroy marks the application destroyed. In-flight module loads complete
// without touching the tree.
func (a *Application) Destroy() {
	a.destroyed.Store(true)
	a.device.StopMedia()
}

func (a *Application) Destroyed() bool {
	return a.destroyed.Load()
}
