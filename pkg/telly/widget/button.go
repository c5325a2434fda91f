package widget

import (
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
)

// Button is the selectable leaf of the focus tree. It may hold children
// (usually a Label) but focus always stops at the button.
type Button struct {
	*Container

	disabled bool
}

// NewButton creates an enabled button.
func NewButton(id string) *Button {
	b := &Button{Container: newContainer(id)}
	b.Extend(b)
	b.AddClass(constants.ClassButton)
	return b
}

// NewTextButton creates a button holding a single label.
func NewTextButton(id, text string) *Button {
	b := NewButton(id)
	b.AppendChildWidget(NewLabel(id+"_label", text))
	return b
}

// CanFocus reports whether the button is enabled.
func (b *Button) CanFocus() bool {
	return !b.disabled
}

// SetDisabled enables or disables the button. Disabled buttons cannot be
// made active.
func (b *Button) SetDisabled(disabled bool) {
	b.disabled = disabled
	if disabled {
		b.AddClass(constants.ClassDisabled)
	} else {
		b.RemoveClass(constants.ClassDisabled)
	}
}

func (b *Button) IsDisabled() bool {
	return b.disabled
}

// Select fires a select event from the button, as if the remote's select
// key was pressed while it had focus.
func (b *Button) Select() {
	if b.disabled {
		return
	}
	b.BubbleEvent(NewSelectEvent(b))
}

// OnSelect registers fn for select events fired by this button.
func (b *Button) OnSelect(fn func()) (remove func()) {
	return b.AddEventListener(EventSelect, func(ev *Event) {
		if ev.Target == Widget(b) {
			fn()
		}
	})
}

func (b *Button) Render(d device.Device) *device.Element {
	if b.output == nil {
		b.setOutput(d.CreateButton(b.id, b.classes), d)
	} else {
		d.ClearElement(b.output)
	}
	b.renderChildren(d)
	return b.output
}

var _ Focusable = (*Button)(nil)
