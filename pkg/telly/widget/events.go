package widget

import "github.com/BrandonKowalski/telly/pkg/telly/constants"

// EventType names an event bubbled through the widget tree.
type EventType string

const (
	EventLoad         EventType = "load"
	EventBeforeRender EventType = "beforerender"
	EventBeforeShow   EventType = "beforeshow"
	EventAfterShow    EventType = "aftershow"
	EventBeforeHide   EventType = "beforehide"
	EventAfterHide    EventType = "afterhide"
	EventFocus        EventType = "focus"
	EventBlur         EventType = "blur"
	EventKeyDown      EventType = "keydown"
	EventSelect       EventType = "select"
)

// Event is bubbled from a target widget to the root. Which fields are set
// depends on Type: component lifecycle events carry the container, component
// and navigation details, key events carry the button pressed.
type Event struct {
	Type       EventType
	Target     Widget
	Cancelable bool

	Container *ComponentContainer
	Component *Component
	Module    string
	Args      Args
	State     State
	FromBack  bool

	Key constants.VirtualButton

	defaultPrevented   bool
	propagationStopped bool
}

// Handler receives bubbled events.
type Handler func(ev *Event)

// PreventDefault marks a cancelable event so the widget that fired it skips
// its default side effect (show animation, element removal, key handling).
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.defaultPrevented = true
	}
}

func (e *Event) IsDefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

func (e *Event) IsPropagationStopped() bool {
	return e.propagationStopped
}

// NewFocusEvent creates the event fired when target gains focus.
func NewFocusEvent(target Widget) *Event {
	return &Event{Type: EventFocus, Target: target}
}

// NewBlurEvent creates the event fired when target loses focus.
func NewBlurEvent(target Widget) *Event {
	return &Event{Type: EventBlur, Target: target}
}

// NewKeyEvent creates a cancelable key press event.
func NewKeyEvent(key constants.VirtualButton, target Widget) *Event {
	return &Event{Type: EventKeyDown, Target: target, Key: key, Cancelable: true}
}

// NewSelectEvent creates the event fired when a button is selected.
func NewSelectEvent(target Widget) *Event {
	return &Event{Type: EventSelect, Target: target}
}

// NewComponentEvent creates a component lifecycle event.
func NewComponentEvent(t EventType, container *ComponentContainer, component *Component, args Args, state State, fromBack bool) *Event {
	ev := &Event{
		Type:       t,
		Target:     component,
		Cancelable: true,
		Container:  container,
		Component:  component,
		Args:       args,
		State:      state,
		FromBack:   fromBack,
	}
	if component != nil {
		ev.Module = component.Module()
	}
	return ev
}
