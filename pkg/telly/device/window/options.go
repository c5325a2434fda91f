package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
)

// Options controls the SDL window.
type Options struct {
	Title      string
	Width      int32
	Height     int32
	FontPath   string
	FontSize   int
	Borderless bool // Remove window decorations (SDL_WINDOW_BORDERLESS)
	Resizable  bool // Allow window resizing (SDL_WINDOW_RESIZABLE)
	Fullscreen bool // Fullscreen at desktop resolution (SDL_WINDOW_FULLSCREEN_DESKTOP)
	Hidden     bool // Start hidden (omits SDL_WINDOW_SHOWN)
}

// DefaultOptions returns a resizable 1280x720 window. Outside development
// mode the window is fullscreen, as on a TV.
func DefaultOptions() Options {
	return Options{
		Title:      "telly",
		Width:      1280,
		Height:     720,
		FontSize:   28,
		Resizable:  true,
		Fullscreen: !constants.IsDevMode(),
	}
}

func (o Options) flags() uint32 {
	var flags uint32

	if !o.Hidden {
		flags |= sdl.WINDOW_SHOWN
	}
	if o.Resizable {
		flags |= sdl.WINDOW_RESIZABLE
	}
	if o.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if o.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return flags
}
