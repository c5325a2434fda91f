// Package theme defines the colours shared by the telly device backends.
package theme

import (
	"fmt"

	"github.com/BrandonKowalski/telly/pkg/telly/config"
)

// Color is an 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// HexToColor converts 0xRRGGBB to an opaque Color.
func HexToColor(hex uint32) Color {
	return Color{
		R: uint8(hex >> 16 & 0xFF),
		G: uint8(hex >> 8 & 0xFF),
		B: uint8(hex & 0xFF),
		A: 0xFF,
	}
}

// Hex renders the colour as #rrggbb, the form lipgloss accepts.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Theme defines the visual appearance of rendered widgets.
type Theme struct {
	HighlightColor       Color  // Focussed button background
	AccentColor          Color  // Active button marker, component borders
	TextColor            Color  // Default text colour
	HighlightedTextColor Color  // Text on the focussed button
	HintColor            Color  // Disabled buttons, loading hints
	BackgroundColor      Color  // Screen background colour
	FontPath             string // Path to the primary UI font
}

// FromConfig resolves the preset named in cfg and applies colour overrides.
func FromConfig(cfg config.ThemeConfig) Theme {
	t := Preset(cfg.Preset)

	if cfg.HighlightColor != 0 {
		t.HighlightColor = HexToColor(cfg.HighlightColor)
	}
	if cfg.AccentColor != 0 {
		t.AccentColor = HexToColor(cfg.AccentColor)
	}
	if cfg.TextColor != 0 {
		t.TextColor = HexToColor(cfg.TextColor)
	}
	if cfg.Background != 0 {
		t.BackgroundColor = HexToColor(cfg.Background)
	}
	return t
}
