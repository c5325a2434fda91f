package term

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/theme"
)

type fakeApp struct {
	keys    []constants.VirtualButton
	loading int64
}

func (a *fakeApp) HandleKey(key constants.VirtualButton) bool {
	a.keys = append(a.keys, key)
	return true
}

func (a *fakeApp) Loading() int64 { return a.loading }

func button(d *Device, id, text string, classes ...string) *device.Element {
	b := d.CreateButton(id, append([]string{constants.ClassButton}, classes...))
	d.AppendChildElement(b, d.CreateLabel(id+"_label", []string{constants.ClassLabel}, text))
	return b
}

func TestRenderButtonsByState(t *testing.T) {
	d := New(theme.Dark())
	menu := d.CreateContainer("menu", []string{constants.ClassList})
	d.AppendChildElement(menu, button(d, "a", "Movies", constants.ClassActive, constants.ClassFocus))
	d.AppendChildElement(menu, button(d, "b", "Series"))
	d.AppendChildElement(menu, button(d, "c", "Settings", constants.ClassDisabled))
	d.AppendChildElement(d.Root(), menu)

	out := d.View()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], constants.FocusMarker+" Movies")
	assert.Contains(t, lines[1], "Series")
	assert.NotContains(t, lines[1], constants.FocusMarker)
	assert.Contains(t, lines[2], "Settings")
}

func TestRenderActiveUnfocussedButton(t *testing.T) {
	d := New(theme.Dark())
	d.AppendChildElement(d.Root(), button(d, "a", "Play", constants.ClassActive))

	assert.Contains(t, d.View(), constants.ActiveMarker+" Play")
}

func TestRenderHorizontalList(t *testing.T) {
	d := New(theme.Dark())
	row := d.CreateContainer("row", []string{constants.ClassList, constants.ClassHorizontal})
	d.AppendChildElement(row, button(d, "a", "One"))
	d.AppendChildElement(row, button(d, "b", "Two"))
	d.AppendChildElement(d.Root(), row)

	out := d.View()
	assert.NotContains(t, out, "\n")
	assert.Less(t, strings.Index(out, "One"), strings.Index(out, "Two"))
}

func TestRenderSkipsHiddenElements(t *testing.T) {
	d := New(theme.Dark())
	shown := d.CreateLabel("shown", nil, "visible")
	hidden := d.CreateLabel("hidden", nil, "invisible")
	d.AppendChildElement(d.Root(), shown)
	d.AppendChildElement(d.Root(), hidden)
	d.HideElement(device.AnimOptions{El: hidden, SkipAnim: true})

	out := d.View()
	assert.Contains(t, out, "visible")
	assert.NotContains(t, out, "invisible")
}

func TestRenderComponentAndModal(t *testing.T) {
	d := New(theme.Dark())
	comp := d.CreateContainer("settings", []string{constants.ClassComponent, constants.ClassModal})
	d.AppendChildElement(comp, d.CreateLabel("title", nil, "Settings"))
	d.AppendChildElement(comp, d.CreateImage("logo", nil, "assets/logo.svg", device.Size{}))
	d.AppendChildElement(d.Root(), comp)

	out := d.View()
	assert.Contains(t, out, constants.ModalGlyph)
	assert.Contains(t, out, "Settings")
	assert.Contains(t, out, constants.ImageGlyph+" logo.svg")
	assert.Greater(t, strings.Count(out, "\n"), 2, "component is boxed")
}

func TestButtonForKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want constants.VirtualButton
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, constants.VirtualButtonUp},
		{"vim down", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}, constants.VirtualButtonDown},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, constants.VirtualButtonLeft},
		{"vim right", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("l")}, constants.VirtualButtonRight},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, constants.VirtualButtonSelect},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, constants.VirtualButtonBack},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, constants.VirtualButtonBack},
		{"menu", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")}, constants.VirtualButtonMenu},
		{"unmapped", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")}, constants.VirtualButtonUnassigned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ButtonForKey(tt.msg))
		})
	}
}

func TestModelRoutesKeys(t *testing.T) {
	d := New(theme.Dark())
	app := &fakeApp{}
	m := newModel(d, app)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
	assert.Nil(t, cmd)
	assert.Equal(t, []constants.VirtualButton{constants.VirtualButtonDown}, app.keys)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModelDrainsPostedFuncs(t *testing.T) {
	d := New(theme.Dark())
	m := newModel(d, &fakeApp{})

	var order []int
	d.Post(func() { order = append(order, 1) })
	d.Post(func() {
		order = append(order, 2)
		d.Post(func() { order = append(order, 3) })
	})

	m.Update(drainMsg{})
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, 0, d.Drain())
}

func TestModelViewShowsLoadingAndMedia(t *testing.T) {
	d := New(theme.Dark())
	app := &fakeApp{}
	m := newModel(d, app)
	d.AppendChildElement(d.Root(), d.CreateLabel("l", nil, "Home"))

	assert.NotContains(t, m.View(), constants.LoadingGlyph)

	app.loading = 1
	require.NoError(t, d.PlayMedia("trailer.mp4"))
	out := m.View()
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, constants.LoadingGlyph)
	assert.Contains(t, out, constants.MediaGlyph+" trailer.mp4")
}

func TestRenderTruncatesLongLabels(t *testing.T) {
	d := New(theme.Dark())
	d.AppendChildElement(d.Root(), d.CreateLabel("l", nil, "Tears of Steel"))

	r := NewRenderer(NewStyles(theme.Dark()))
	assert.Contains(t, r.Render(d.Root()), "Tears of Steel")

	r.SetLabelWidth(8)
	out := r.Render(d.Root())
	assert.Contains(t, out, "Tears"+constants.EllipsisGlyph)
	assert.NotContains(t, out, "Steel")

	r.SetLabelWidth(-1)
	assert.Contains(t, r.Render(d.Root()), "Tears of Steel")
}

func TestModelResizeLimitsLabels(t *testing.T) {
	d := New(theme.Dark())
	m := newModel(d, &fakeApp{})
	d.AppendChildElement(d.Root(), d.CreateLabel("l", nil, "Big Buck Bunny"))

	m.Update(tea.WindowSizeMsg{Width: labelMargin + 6, Height: 10})
	out := m.View()
	assert.Contains(t, out, "Big"+constants.EllipsisGlyph)
	assert.NotContains(t, out, "Bunny")
}
