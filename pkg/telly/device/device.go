// Package device defines the output surface widgets render to.
//
// Widgets never draw directly. They build a retained tree of Elements through
// a Device, and the backend (terminal, SDL, or the in-memory Surface used by
// tests) presents that tree. Show and hide transitions are requested through
// AnimOptions; how a backend animates them is its own business.
package device

import (
	"log/slog"
	"time"

	"github.com/BrandonKowalski/telly/pkg/telly/config"
)

// Device is the surface consumed by the widget tree.
type Device interface {
	CreateContainer(id string, classes []string) *Element
	CreateLabel(id string, classes []string, text string) *Element
	CreateButton(id string, classes []string) *Element
	CreateImage(id string, classes []string, src string, size Size) *Element

	AppendChildElement(parent, child *Element)
	InsertChildElement(parent, child *Element, index int)
	ClearElement(el *Element)
	RemoveElement(el *Element)

	SetElementClasses(el *Element, classes []string)
	SetElementContent(el *Element, text string)
	SetElementSize(el *Element, size Size)

	ShowElement(opts AnimOptions)
	HideElement(opts AnimOptions)

	PlayMedia(src string) error
	StopMedia()

	// Root is the top level element the application root widget is
	// attached to.
	Root() *Element
	Logger() *slog.Logger
	Config() config.Config
}

// AnimOptions describes a show or hide transition.
type AnimOptions struct {
	El         *Element
	SkipAnim   bool          // Apply the end state immediately
	Duration   time.Duration // Zero uses the backend default
	OnComplete func()        // Called once the end state is reached
}
