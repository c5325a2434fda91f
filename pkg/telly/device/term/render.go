package term

import (
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/theme"
)

// Styles are the lipgloss styles the renderer draws elements with.
type Styles struct {
	Button        lipgloss.Style
	ActiveButton  lipgloss.Style
	FocusButton   lipgloss.Style
	DisabledLabel lipgloss.Style
	Label         lipgloss.Style
	Image         lipgloss.Style
	Component     lipgloss.Style
	Modal         lipgloss.Style
	Fading        lipgloss.Style
	Status        lipgloss.Style
}

// NewStyles derives the styles from a theme.
func NewStyles(t theme.Theme) Styles {
	text := lipgloss.Color(t.TextColor.Hex())
	hint := lipgloss.Color(t.HintColor.Hex())
	accent := lipgloss.Color(t.AccentColor.Hex())

	return Styles{
		Button: lipgloss.NewStyle().
			Foreground(text).
			PaddingRight(1),
		ActiveButton: lipgloss.NewStyle().
			Foreground(accent).
			PaddingRight(1),
		FocusButton: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HighlightedTextColor.Hex())).
			Background(lipgloss.Color(t.HighlightColor.Hex())).
			Bold(true).
			PaddingRight(1),
		DisabledLabel: lipgloss.NewStyle().
			Foreground(hint).
			Strikethrough(true),
		Label: lipgloss.NewStyle().
			Foreground(text),
		Image: lipgloss.NewStyle().
			Foreground(hint),
		Component: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.HighlightColor.Hex())).
			Padding(0, 1),
		Fading: lipgloss.NewStyle().
			Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(hint).
			PaddingLeft(1),
	}
}

// Renderer draws a retained element tree as text.
type Renderer struct {
	styles     Styles
	labelWidth int
}

// NewRenderer creates a renderer using styles.
func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// SetLabelWidth limits label text to width cells, cutting longer text with
// an ellipsis. Zero or less removes the limit.
func (r *Renderer) SetLabelWidth(width int) {
	r.labelWidth = max(width, 0)
}

func (r *Renderer) truncate(text string) string {
	if r.labelWidth == 0 {
		return text
	}
	return runewidth.Truncate(text, r.labelWidth, constants.EllipsisGlyph)
}

// Render draws el and its visible descendants.
func (r *Renderer) Render(el *device.Element) string {
	if el == nil || !el.Visible {
		return ""
	}

	var out string
	switch el.Kind {
	case device.KindLabel:
		out = r.styles.Label.Render(r.truncate(el.Text))
	case device.KindImage:
		out = r.styles.Image.Render(constants.ImageGlyph + " " + path.Base(el.Src))
	case device.KindButton:
		out = r.renderButton(el)
	default:
		out = r.renderContainer(el)
	}

	if el.Opacity < 1 {
		out = r.styles.Fading.Render(out)
	}
	return out
}

func (r *Renderer) renderButton(el *device.Element) string {
	var text []string
	for _, child := range el.Children {
		if s := r.Render(child); s != "" {
			text = append(text, lipgloss.NewStyle().Inline(true).Render(s))
		}
	}
	label := strings.Join(text, " ")
	if label == "" {
		label = el.ID
	}

	switch {
	case el.HasClass(constants.ClassDisabled):
		return constants.InactiveMarker + " " + r.styles.DisabledLabel.Render(label)
	case el.HasClass(constants.ClassFocus):
		return r.styles.FocusButton.Render(constants.FocusMarker + " " + label)
	case el.HasClass(constants.ClassActive):
		return r.styles.ActiveButton.Render(constants.ActiveMarker + " " + label)
	default:
		return r.styles.Button.Render(constants.InactiveMarker + " " + label)
	}
}

func (r *Renderer) renderContainer(el *device.Element) string {
	var parts []string
	for _, child := range el.Children {
		if s := r.Render(child); s != "" {
			parts = append(parts, s)
		}
	}

	var body string
	if el.HasClass(constants.ClassHorizontal) {
		body = lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	switch {
	case el.HasClass(constants.ClassModal):
		return r.styles.Modal.Render(constants.ModalGlyph + " " + body)
	case el.HasClass(constants.ClassComponent):
		return r.styles.Component.Render(body)
	default:
		return body
	}
}
