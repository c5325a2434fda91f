package widget

import (
	"slices"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
)

// Container is a widget holding an ordered set of child widgets, at most one
// of which is active.
type Container struct {
	*Base

	childWidgets       map[string]Widget
	childWidgetOrder   []Widget
	activeChildWidget  Widget
	autoRenderChildren bool
}

// NewContainer creates an empty container.
func NewContainer(id string) *Container {
	c := newContainer(id)
	c.Extend(c)
	return c
}

func newContainer(id string) *Container {
	c := &Container{
		Base:               NewBase(id),
		childWidgets:       make(map[string]Widget),
		autoRenderChildren: true,
	}
	c.AddClass(constants.ClassContainer)
	return c
}

func (c *Container) container() *Container {
	return c
}

func (c *Container) composite() Composite {
	return c.self.(Composite)
}

// SetAutoRenderChildren controls whether children appended after the first
// render are rendered and attached immediately.
func (c *Container) SetAutoRenderChildren(auto bool) {
	c.autoRenderChildren = auto
}

// HasChildWidget checks whether a widget with the id is a direct child.
func (c *Container) HasChildWidget(id string) bool {
	_, ok := c.childWidgets[id]
	return ok
}

// ChildWidget returns the direct child with the id, or nil.
func (c *Container) ChildWidget(id string) Widget {
	return c.childWidgets[id]
}

// ChildWidgets returns the children in insertion order.
func (c *Container) ChildWidgets() []Widget {
	return slices.Clone(c.childWidgetOrder)
}

// ChildWidgetCount returns the number of direct children.
func (c *Container) ChildWidgetCount() int {
	return len(c.childWidgetOrder)
}

// IndexOfChildWidget returns the position of w among the children, or -1.
func (c *Container) IndexOfChildWidget(w Widget) int {
	if isNilWidget(w) {
		return -1
	}
	return slices.Index(c.childWidgetOrder, w)
}

// ActiveChildWidget returns the active child, or nil.
func (c *Container) ActiveChildWidget() Widget {
	return c.activeChildWidget
}

// Render renders the container and its children to device output. The
// output element is created once; later calls clear and refill it.
func (c *Container) Render(d device.Device) *device.Element {
	if c.output == nil {
		c.setOutput(d.CreateContainer(c.id, c.classes), d)
	} else {
		d.ClearElement(c.output)
	}
	c.renderChildren(d)
	return c.output
}

func (c *Container) renderChildren(d device.Device) {
	for _, child := range c.childWidgetOrder {
		d.AppendChildElement(c.output, child.Render(d))
	}
}

// AppendChildWidget appends w and returns it. If a child with the same id
// already exists nothing happens and nil is returned.
//
// If there is no active child yet, w is made active when focusable.
func (c *Container) AppendChildWidget(w Widget) Widget {
	return c.InsertChildWidget(len(c.childWidgetOrder), w)
}

// InsertChildWidget inserts w at index (clamped to the child range).
func (c *Container) InsertChildWidget(index int, w Widget) Widget {
	mode := attachNone
	if c.autoRenderChildren {
		mode = attachRender
	}
	return c.insertChildWidget(index, w, mode)
}

// attachMode selects what happens to a new child's output element when the
// container is already rendered.
type attachMode int

const (
	attachNone     attachMode = iota
	attachRender              // render the child and insert its element
	attachExisting            // insert the child's current element as is
)

func (c *Container) insertChildWidget(index int, w Widget, mode attachMode) Widget {
	if isNilWidget(w) || c.HasChildWidget(w.ID()) {
		return nil
	}

	index = max(0, min(index, len(c.childWidgetOrder)))

	c.childWidgets[w.ID()] = w
	c.childWidgetOrder = slices.Insert(c.childWidgetOrder, index, w)
	w.base().parent = c.composite()

	if c.activeChildWidget == nil {
		c.SetActiveChildWidget(w)
	}

	if c.output != nil && c.device != nil {
		switch el := w.base().output; {
		case mode == attachRender:
			c.device.InsertChildElement(c.output, w.Render(c.device), index)
		case mode == attachExisting && el != nil:
			c.device.InsertChildElement(c.output, el, index)
		}
	}

	return w
}

// RemoveChildWidget removes a direct child. Unless retainElement is true the
// child's output element is detached from the device output too. Removing
// the focussed widget is allowed but logged.
func (c *Container) RemoveChildWidget(w Widget, retainElement bool) {
	if isNilWidget(w) {
		return
	}

	index := c.IndexOfChildWidget(w)
	if index < 0 {
		return
	}

	wb := w.base()
	if wb.focussed {
		c.logger().Warn("Removing widget that currently has focus", "widget", w.ID())
	}

	if !retainElement && wb.output != nil {
		d := c.device
		if d == nil {
			d = wb.device
		}
		if d != nil {
			d.RemoveElement(wb.output)
		}
	}

	c.childWidgetOrder = slices.Delete(c.childWidgetOrder, index, index+1)
	delete(c.childWidgets, w.ID())

	if c.activeChildWidget == w {
		wb.RemoveClass(constants.ClassActive)
		c.activeChildWidget = nil
	}

	wb.parent = nil
}

// RemoveChildWidgets removes every child.
func (c *Container) RemoveChildWidgets() {
	for _, child := range c.ChildWidgets() {
		c.RemoveChildWidget(child, false)
	}
}

// SetActiveChildWidget makes w the active child. It returns false, changing
// nothing, when w is nil, not a direct child, or not focusable.
//
// When nothing in the application holds focus, the path from the root down
// to this container is made active and focussed, establishing a default
// focus path. If this container is focussed, focus moves into w.
func (c *Container) SetActiveChildWidget(w Widget) bool {
	if isNilWidget(w) || c.childWidgets[w.ID()] != w || !IsFocusable(w) {
		return false
	}

	if c.activeChildWidget != nil && c.activeChildWidget != w {
		c.activeChildWidget.base().RemoveClass(constants.ClassActive)
		c.SetActiveChildFocussed(false)
	}
	w.base().AddClass(constants.ClassActive)
	c.activeChildWidget = w

	if app := c.Application(); app != nil && app.FocussedWidget() == nil {
		var it Widget = c.self
		for p := it.base().parent; p != nil; p = it.base().parent {
			pc := p.container()
			if pc.activeChildWidget != it {
				if pc.activeChildWidget != nil {
					pc.activeChildWidget.base().RemoveClass(constants.ClassActive)
					pc.SetActiveChildFocussed(false)
				}
				it.base().AddClass(constants.ClassActive)
				pc.activeChildWidget = it
			}
			it.base().markFocussed()
			it = p
		}
	}

	if c.focussed {
		c.SetActiveChildFocussed(true)
	}
	return true
}

// SetActiveChildFocussed flags the active child, and recursively its own
// active child, as focussed or blurred, bubbling focus or blur events.
func (c *Container) SetActiveChildFocussed(focus bool) {
	active := c.activeChildWidget
	if active == nil || active.base().focussed == focus {
		return
	}

	ab := active.base()
	if focus {
		ab.markFocussed()
		ab.BubbleEvent(NewFocusEvent(active))
	} else {
		ab.removeFocus()
		ab.BubbleEvent(NewBlurEvent(active))
	}

	if composite, ok := active.(Composite); ok {
		composite.container().SetActiveChildFocussed(focus)
	}
}

var _ Composite = (*Container)(nil)
