package widget

import "github.com/BrandonKowalski/telly/pkg/telly/constants"

// ComponentFactory constructs the component for a module. It runs on the
// event loop once the module has been resolved.
type ComponentFactory func() *Component

// Component is a full screen (or modal) container shown by a
// ComponentContainer. Components are created once per module and cached in
// the container's Registry.
type Component struct {
	*Container

	module    string
	modal     bool
	stateFunc func() State
}

// NewComponent creates an empty component.
func NewComponent(id string) *Component {
	c := &Component{Container: newContainer(id)}
	c.Extend(c)
	c.AddClass(constants.ClassComponent)
	return c
}

// Module returns the module name the component was loaded as.
func (c *Component) Module() string {
	return c.module
}

// IsModal reports whether the component is a modal. Hiding a modal without
// history returns focus to the widget focussed before it was shown.
func (c *Component) IsModal() bool {
	return c.modal
}

func (c *Component) SetModal(modal bool) {
	c.modal = modal
	if modal {
		c.AddClass(constants.ClassModal)
	} else {
		c.RemoveClass(constants.ClassModal)
	}
}

// SetStateFunc registers the function reporting the component's state when
// it is navigated away from with history enabled.
func (c *Component) SetStateFunc(fn func() State) {
	c.stateFunc = fn
}

// CurrentState returns the component's state, or nil.
func (c *Component) CurrentState() State {
	if c.stateFunc == nil {
		return nil
	}
	return c.stateFunc()
}

// OnShow registers fn to run before the component is shown with the
// arguments and restored state.
func (c *Component) OnShow(fn func(args Args, state State, fromBack bool)) (remove func()) {
	return c.AddEventListener(EventBeforeShow, func(ev *Event) {
		if ev.Component == c {
			fn(ev.Args, ev.State, ev.FromBack)
		}
	})
}

// OnHide registers fn to run after the component was hidden.
func (c *Component) OnHide(fn func()) (remove func()) {
	return c.AddEventListener(EventAfterHide, func(ev *Event) {
		if ev.Component == c {
			fn()
		}
	})
}
