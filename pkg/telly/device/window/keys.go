package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
)

// KeyMap maps SDL keycodes to remote buttons.
var KeyMap = map[sdl.Keycode]constants.VirtualButton{
	sdl.K_UP:        constants.VirtualButtonUp,
	sdl.K_DOWN:      constants.VirtualButtonDown,
	sdl.K_LEFT:      constants.VirtualButtonLeft,
	sdl.K_RIGHT:     constants.VirtualButtonRight,
	sdl.K_RETURN:    constants.VirtualButtonSelect,
	sdl.K_KP_ENTER:  constants.VirtualButtonSelect,
	sdl.K_SPACE:     constants.VirtualButtonSelect,
	sdl.K_ESCAPE:    constants.VirtualButtonBack,
	sdl.K_BACKSPACE: constants.VirtualButtonBack,
	sdl.K_AC_BACK:   constants.VirtualButtonBack,
	sdl.K_MENU:      constants.VirtualButtonMenu,
	sdl.K_m:         constants.VirtualButtonMenu,
	sdl.K_AUDIOPLAY: constants.VirtualButtonPlayPause,
	sdl.K_p:         constants.VirtualButtonPlayPause,
	sdl.K_i:         constants.VirtualButtonInfo,
}

// buttonForKey maps a key down event. Held keys only repeat the arrows.
func buttonForKey(e *sdl.KeyboardEvent) (constants.VirtualButton, bool) {
	if e.Type != sdl.KEYDOWN {
		return constants.VirtualButtonUnassigned, false
	}
	b, ok := KeyMap[e.Keysym.Sym]
	if !ok || (e.Repeat != 0 && !b.IsDirectional()) {
		return constants.VirtualButtonUnassigned, false
	}
	return b, true
}
