// Package constants defines shared constants, types, and configuration values
// used throughout the telly toolkit.
package constants

import (
	"os"
	"time"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by telly.
const (
	EnvironmentEnvVar = "ENVIRONMENT"
	ConfigPathEnvVar  = "TELLY_CONFIG"
	LogLevelEnvVar    = "TELLY_LOG_LEVEL"
	LocaleEnvVar      = "TELLY_LOCALE"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// VirtualButton represents an abstract remote control key, mapped from
// whatever input source the device backend reads.
type VirtualButton int

const (
	VirtualButtonUnassigned VirtualButton = iota
	VirtualButtonUp
	VirtualButtonDown
	VirtualButtonLeft
	VirtualButtonRight
	VirtualButtonSelect
	VirtualButtonBack
	VirtualButtonMenu
	VirtualButtonPlayPause
	VirtualButtonInfo
)

func (vb VirtualButton) GetName() string {
	switch vb {
	case VirtualButtonUnassigned:
		return "Unassigned"
	case VirtualButtonUp:
		return "Up"
	case VirtualButtonDown:
		return "Down"
	case VirtualButtonLeft:
		return "Left"
	case VirtualButtonRight:
		return "Right"
	case VirtualButtonSelect:
		return "Select"
	case VirtualButtonBack:
		return "Back"
	case VirtualButtonMenu:
		return "Menu"
	case VirtualButtonPlayPause:
		return "PlayPause"
	case VirtualButtonInfo:
		return "Info"
	default:
		return "Unknown"
	}
}

// IsDirectional reports whether the button is one of the four arrows.
func (vb VirtualButton) IsDirectional() bool {
	return vb >= VirtualButtonUp && vb <= VirtualButtonRight
}

// Class names applied to widgets and their output elements.
const (
	ClassContainer          = "container"
	ClassComponentContainer = "componentcontainer"
	ClassComponent          = "component"
	ClassButton             = "button"
	ClassLabel              = "label"
	ClassImage              = "image"
	ClassList               = "list"
	ClassHorizontal         = "horizontallist"
	ClassVertical           = "verticallist"
	ClassActive             = "active"
	ClassFocus              = "focus"
	ClassDisabled           = "disabled"
	ClassModal              = "modal"
	ClassRootWidget         = "rootwidget"
)

// Default timing constants.
const (
	DefaultFadeDuration   = 250 * time.Millisecond // Show/hide fade length when animation is enabled
	DefaultRepeatDelay    = 300 * time.Millisecond // Held arrow delay before the first repeat
	DefaultRepeatInterval = 80 * time.Millisecond  // Held arrow delay between repeats
	DefaultInputDelay     = 20 * time.Millisecond  // Debounce delay between input events
)
