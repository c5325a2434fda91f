// Package widget implements the telly widget tree: widgets, containers,
// focus management, event bubbling, and lazily loaded components.
//
// # Focus
//
// Widgets have two independent states: active and focussed. Every Container
// has at most one active child. A focussed widget is the focusable leaf
// (a Button) holding input focus, or any ancestor of it; following active
// children from the root through focussed widgets always ends at the
// application's focussed widget. Classes "active" and "focus" mirror these
// states on the output elements.
//
// # Threading
//
// The tree is not safe for concurrent use. All mutation happens on the
// application's event loop; background work such as module loading hands its
// result back through Application.Post.
package widget

import (
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/internal"
)

// Args are the arguments a component is shown with.
type Args map[string]any

// State is the serialisable state a component reports when navigated away
// from with history enabled.
type State map[string]any

// Widget is a node of the UI tree. Implementations embed *Base.
type Widget interface {
	ID() string
	Render(d device.Device) *device.Element
	base() *Base
}

// Focusable is implemented by selectable leaves. A leaf can receive focus
// when CanFocus returns true.
type Focusable interface {
	Widget
	CanFocus() bool
}

// Composite is implemented by widgets that own children.
type Composite interface {
	Widget
	ChildWidgets() []Widget
	ActiveChildWidget() Widget
	SetActiveChildWidget(w Widget) bool
	container() *Container
}

var widgetCounter atomic.Uint64

// Base holds the state shared by every widget.
type Base struct {
	id       string
	classes  []string
	parent   Composite
	focussed bool
	output   *device.Element
	device   device.Device
	handlers map[EventType][]*listener
	self     Widget
	app      *Application
}

type listener struct {
	fn Handler
}

// NewBase creates widget state with the given id, generating one if empty.
func NewBase(id string) *Base {
	if id == "" {
		id = fmt.Sprintf("#widget%d", widgetCounter.Add(1))
	}
	return &Base{id: id}
}

// Extend records the outermost widget value embedding this Base. Widget
// constructors call it so parents, events and focus see the full widget.
func (b *Base) Extend(self Widget) {
	b.self = self
}

func (b *Base) base() *Base {
	return b
}

func (b *Base) ID() string {
	return b.id
}

// Parent returns the container this widget is attached to.
func (b *Base) Parent() Composite {
	return b.parent
}

// OutputElement returns the element created by the last Render, if any.
func (b *Base) OutputElement() *device.Element {
	return b.output
}

// AddClass adds a class, keeping insertion order.
func (b *Base) AddClass(class string) {
	if slices.Contains(b.classes, class) {
		return
	}
	b.classes = append(b.classes, class)
	b.syncClasses()
}

func (b *Base) RemoveClass(class string) {
	i := slices.Index(b.classes, class)
	if i < 0 {
		return
	}
	b.classes = slices.Delete(b.classes, i, i+1)
	b.syncClasses()
}

func (b *Base) HasClass(class string) bool {
	return slices.Contains(b.classes, class)
}

// Classes returns a copy of the class list in insertion order.
func (b *Base) Classes() []string {
	return slices.Clone(b.classes)
}

func (b *Base) syncClasses() {
	if b.output != nil && b.device != nil {
		b.device.SetElementClasses(b.output, b.classes)
	}
}

// setOutput records the element and device used by Render.
func (b *Base) setOutput(el *device.Element, d device.Device) {
	b.output = el
	b.device = d
}

func (b *Base) IsFocussed() bool {
	return b.focussed
}

// IsFocusable reports whether this widget could take focus.
func (b *Base) IsFocusable() bool {
	return IsFocusable(b.self)
}

// IsFocusable reports whether w is an enabled selectable leaf, or a
// composite with at least one focusable descendant.
func IsFocusable(w Widget) bool {
	if isNilWidget(w) {
		return false
	}
	switch v := w.(type) {
	case Focusable:
		return v.CanFocus()
	case Composite:
		for _, child := range v.ChildWidgets() {
			if IsFocusable(child) {
				return true
			}
		}
	}
	return false
}

// isNilWidget reports whether w is nil or a nil pointer wrapped in the
// interface, such as the *Component of an empty ComponentContainer.
func isNilWidget(w Widget) bool {
	if w == nil {
		return true
	}
	v := reflect.ValueOf(w)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Application returns the application this widget's tree is attached to, or
// nil if the tree is detached.
func (b *Base) Application() *Application {
	var w Widget = b.self
	for w != nil {
		wb := w.base()
		if wb.app != nil {
			return wb.app
		}
		if wb.parent == nil {
			return nil
		}
		w = wb.parent
	}
	return nil
}

func (b *Base) logger() *slog.Logger {
	if app := b.Application(); app != nil {
		return app.Logger()
	}
	return internal.GetInternalLogger()
}

// Focus moves focus to this widget by making each ancestor's active child the
// path down to it. Returns false if some ancestor refused the path.
func (b *Base) Focus() bool {
	w := b.self
	for p := w.base().parent; p != nil; p = w.base().parent {
		if !p.SetActiveChildWidget(w) {
			return false
		}
		w = p
	}
	return true
}

func (b *Base) removeFocus() {
	b.focussed = false
	b.RemoveClass(constants.ClassFocus)
}

func (b *Base) markFocussed() {
	b.focussed = true
	b.AddClass(constants.ClassFocus)
}

// AddEventListener registers fn for events of type t reaching this widget.
// The returned func removes the listener.
func (b *Base) AddEventListener(t EventType, fn Handler) (remove func()) {
	if b.handlers == nil {
		b.handlers = make(map[EventType][]*listener)
	}
	l := &listener{fn: fn}
	b.handlers[t] = append(b.handlers[t], l)

	return func() {
		b.handlers[t] = slices.DeleteFunc(b.handlers[t], func(other *listener) bool {
			return other == l
		})
	}
}

// FireEvent runs this widget's listeners for ev without bubbling.
func (b *Base) FireEvent(ev *Event) {
	for _, l := range slices.Clone(b.handlers[ev.Type]) {
		l.fn(ev)
		if ev.propagationStopped {
			return
		}
	}
}

// BubbleEvent fires ev on this widget, then on each ancestor up to the root,
// stopping early if a listener calls StopPropagation.
func (b *Base) BubbleEvent(ev *Event) {
	if ev.Target == nil {
		ev.Target = b.self
	}
	var w Widget = b.self
	for w != nil {
		wb := w.base()
		wb.FireEvent(ev)
		if ev.propagationStopped || wb.parent == nil {
			return
		}
		w = wb.parent
	}
}
