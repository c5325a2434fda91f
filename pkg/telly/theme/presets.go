package theme

import "strings"

// Dark is the default preset: light text on a near-black screen.
func Dark() Theme {
	return Theme{
		HighlightColor:       HexToColor(0xFFFFFF),
		AccentColor:          HexToColor(0x7D56F4),
		TextColor:            HexToColor(0xFFFFFF),
		HighlightedTextColor: HexToColor(0x000000),
		HintColor:            HexToColor(0x626262),
		BackgroundColor:      HexToColor(0x101014),
	}
}

// Teal is a high contrast preset with a teal accent.
func Teal() Theme {
	return Theme{
		HighlightColor:       HexToColor(0xFFFFFF),
		AccentColor:          HexToColor(0x008080),
		TextColor:            HexToColor(0xFFFFFF),
		HighlightedTextColor: HexToColor(0x000000),
		HintColor:            HexToColor(0x9E9E9E),
		BackgroundColor:      HexToColor(0x002B2B),
	}
}

// Preset returns the named preset, falling back to Dark.
func Preset(name string) Theme {
	switch strings.ToLower(name) {
	case "teal":
		return Teal()
	default:
		return Dark()
	}
}
