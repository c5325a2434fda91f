package widget

import "github.com/BrandonKowalski/telly/pkg/telly/constants"

// Orientation is the axis a List navigates along.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// List is a Container that moves its active child with the arrow keys along
// its orientation. Keys along the other axis bubble on to ancestors, so a
// vertical list of horizontal lists behaves like a grid.
type List struct {
	*Container

	orientation Orientation
	wrap        bool
}

// NewList creates an empty list.
func NewList(id string, orientation Orientation) *List {
	l := &List{Container: newContainer(id), orientation: orientation}
	l.Extend(l)
	l.AddClass(constants.ClassList)
	if orientation == Horizontal {
		l.AddClass(constants.ClassHorizontal)
	} else {
		l.AddClass(constants.ClassVertical)
	}
	l.AddEventListener(EventKeyDown, l.onKeyDown)
	return l
}

// SetWrap makes navigation past either end continue at the other.
func (l *List) SetWrap(wrap bool) {
	l.wrap = wrap
}

func (l *List) Orientation() Orientation {
	return l.orientation
}

func (l *List) onKeyDown(ev *Event) {
	var step int
	switch {
	case l.orientation == Vertical && ev.Key == constants.VirtualButtonUp,
		l.orientation == Horizontal && ev.Key == constants.VirtualButtonLeft:
		step = -1
	case l.orientation == Vertical && ev.Key == constants.VirtualButtonDown,
		l.orientation == Horizontal && ev.Key == constants.VirtualButtonRight:
		step = 1
	default:
		return
	}

	if l.move(step) {
		ev.PreventDefault()
		ev.StopPropagation()
	}
}

// SelectNext activates the next focusable child. Returns false at the end
// of a non wrapping list.
func (l *List) SelectNext() bool {
	return l.move(1)
}

// SelectPrevious activates the previous focusable child.
func (l *List) SelectPrevious() bool {
	return l.move(-1)
}

func (l *List) move(step int) bool {
	children := l.childWidgetOrder
	n := len(children)
	if n == 0 {
		return false
	}

	start := l.IndexOfChildWidget(l.activeChildWidget)
	if start < 0 {
		start = 0
		if step < 0 {
			start = n - 1
		}
		if IsFocusable(children[start]) {
			return l.SetActiveChildWidget(children[start])
		}
	}

	for i, idx := 1, start; i < n; i++ {
		idx += step
		if idx < 0 || idx >= n {
			if !l.wrap {
				return false
			}
			idx = (idx + n) % n
		}
		if IsFocusable(children[idx]) {
			return l.SetActiveChildWidget(children[idx])
		}
	}
	return false
}
