package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
)

func newMenu(app *testApp, id string, orientation Orientation, ids ...string) *List {
	l := NewList(id, orientation)
	for _, bid := range ids {
		l.AppendChildWidget(NewTextButton(bid, bid))
	}
	app.root.AppendChildWidget(l)
	return l
}

func TestListNavigation(t *testing.T) {
	app := newTestApp(t)
	newMenu(app, "menu", Vertical, "a", "b", "c")

	tests := []struct {
		key      constants.VirtualButton
		consumed bool
		focussed string
	}{
		{constants.VirtualButtonDown, true, "b"},
		{constants.VirtualButtonDown, true, "c"},
		{constants.VirtualButtonDown, false, "c"},
		{constants.VirtualButtonLeft, false, "c"},
		{constants.VirtualButtonUp, true, "b"},
		{constants.VirtualButtonUp, true, "a"},
		{constants.VirtualButtonUp, false, "a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.consumed, app.HandleKey(tt.key), "key %s", tt.key.GetName())
		require.NotNil(t, app.FocussedWidget())
		assert.Equal(t, tt.focussed, app.FocussedWidget().ID())
	}
}

func TestListWrapAndSkipDisabled(t *testing.T) {
	app := newTestApp(t)
	menu := newMenu(app, "menu", Horizontal, "a", "b", "c")
	menu.SetWrap(true)
	menu.ChildWidget("b").(*Button).SetDisabled(true)

	assert.True(t, app.HandleKey(constants.VirtualButtonRight))
	assert.Equal(t, "c", app.FocussedWidget().ID())

	assert.True(t, app.HandleKey(constants.VirtualButtonRight))
	assert.Equal(t, "a", app.FocussedWidget().ID())

	assert.True(t, app.HandleKey(constants.VirtualButtonLeft))
	assert.Equal(t, "c", app.FocussedWidget().ID())

	assert.True(t, menu.SelectPrevious())
	assert.Equal(t, "a", app.FocussedWidget().ID())
}

func TestNestedListsFormGrid(t *testing.T) {
	app := newTestApp(t)
	rows := NewList("rows", Vertical)
	for _, r := range []string{"r1", "r2"} {
		row := NewList(r, Horizontal)
		for _, c := range []string{"c1", "c2"} {
			row.AppendChildWidget(NewButton(r + c))
		}
		rows.AppendChildWidget(row)
	}
	app.root.AppendChildWidget(rows)

	assert.Equal(t, "r1c1", app.FocussedWidget().ID())

	app.HandleKey(constants.VirtualButtonRight)
	assert.Equal(t, "r1c2", app.FocussedWidget().ID())

	// Down is not handled by the row and bubbles to the outer list.
	app.HandleKey(constants.VirtualButtonDown)
	assert.Equal(t, "r2c1", app.FocussedWidget().ID())
}

func TestHandleKeySelect(t *testing.T) {
	app := newTestApp(t)
	menu := newMenu(app, "menu", Vertical, "a", "b")

	var selected []string
	menu.ChildWidget("a").(*Button).OnSelect(func() { selected = append(selected, "a") })
	menu.ChildWidget("b").(*Button).OnSelect(func() { selected = append(selected, "b") })

	assert.True(t, app.HandleKey(constants.VirtualButtonSelect))
	app.HandleKey(constants.VirtualButtonDown)
	assert.True(t, app.HandleKey(constants.VirtualButtonSelect))
	assert.Equal(t, []string{"a", "b"}, selected)
}

func TestHandleKeyPreventDefault(t *testing.T) {
	app := newTestApp(t)
	menu := newMenu(app, "menu", Vertical, "a", "b")

	selected := false
	menu.ChildWidget("a").(*Button).OnSelect(func() { selected = true })
	app.root.AddEventListener(EventKeyDown, func(ev *Event) {
		if ev.Key == constants.VirtualButtonSelect {
			ev.PreventDefault()
		}
	})

	assert.True(t, app.HandleKey(constants.VirtualButtonSelect))
	assert.False(t, selected)
}

func TestHandleKeyAfterDestroy(t *testing.T) {
	app := newTestApp(t)
	newMenu(app, "menu", Vertical, "a", "b")

	app.Destroy()
	assert.True(t, app.Destroyed())
	assert.False(t, app.HandleKey(constants.VirtualButtonDown))
	assert.Equal(t, "a", app.FocussedWidget().ID())
}
