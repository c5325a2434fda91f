package term

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
)

// KeyMap maps bubbletea key names to remote buttons.
var KeyMap = map[string]constants.VirtualButton{
	"up":        constants.VirtualButtonUp,
	"k":         constants.VirtualButtonUp,
	"down":      constants.VirtualButtonDown,
	"j":         constants.VirtualButtonDown,
	"left":      constants.VirtualButtonLeft,
	"h":         constants.VirtualButtonLeft,
	"right":     constants.VirtualButtonRight,
	"l":         constants.VirtualButtonRight,
	"enter":     constants.VirtualButtonSelect,
	" ":         constants.VirtualButtonSelect,
	"esc":       constants.VirtualButtonBack,
	"backspace": constants.VirtualButtonBack,
	"m":         constants.VirtualButtonMenu,
	"p":         constants.VirtualButtonPlayPause,
	"i":         constants.VirtualButtonInfo,
}

// ButtonForKey returns the button for a key message, or
// VirtualButtonUnassigned.
func ButtonForKey(msg tea.KeyMsg) constants.VirtualButton {
	return KeyMap[msg.String()]
}

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+c", "q":
		return true
	}
	return false
}
