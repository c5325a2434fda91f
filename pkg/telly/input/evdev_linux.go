//go:build linux

package input

import (
	"context"
	"errors"
	"os"
	"strings"

	evdev "github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
)

// DefaultKeyMap maps the usual remote control and keyboard codes.
var DefaultKeyMap = map[evdev.EvCode]constants.VirtualButton{
	evdev.KEY_UP:        constants.VirtualButtonUp,
	evdev.KEY_DOWN:      constants.VirtualButtonDown,
	evdev.KEY_LEFT:      constants.VirtualButtonLeft,
	evdev.KEY_RIGHT:     constants.VirtualButtonRight,
	evdev.KEY_ENTER:     constants.VirtualButtonSelect,
	evdev.KEY_OK:        constants.VirtualButtonSelect,
	evdev.KEY_SELECT:    constants.VirtualButtonSelect,
	evdev.KEY_ESC:       constants.VirtualButtonBack,
	evdev.KEY_BACK:      constants.VirtualButtonBack,
	evdev.KEY_BACKSPACE: constants.VirtualButtonBack,
	evdev.KEY_MENU:      constants.VirtualButtonMenu,
	evdev.KEY_PLAYPAUSE: constants.VirtualButtonPlayPause,
	evdev.KEY_INFO:      constants.VirtualButtonInfo,
}

// EvdevSource reads key events from a Linux input device.
type EvdevSource struct {
	dev    *evdev.InputDevice
	keyMap map[evdev.EvCode]constants.VirtualButton
}

// OpenEvdev opens the input device at path, grabbing it so key presses do
// not also reach the console.
func OpenEvdev(path string) (*EvdevSource, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, telly.NewInfrastructureError("open_input", err)
	}
	if err := dev.Grab(); err != nil {
		telly.GetLogger().Warn("Unable to grab input device", "path", path, "error", err)
	}
	return &EvdevSource{dev: dev, keyMap: DefaultKeyMap}, nil
}

// FindEvdev opens the first input device whose name contains match.
func FindEvdev(match string) (*EvdevSource, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, telly.NewInfrastructureError("list_input", err)
	}
	for _, p := range paths {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(match)) {
			return OpenEvdev(p.Path)
		}
	}
	return nil, telly.NewInfrastructureError("find_input", os.ErrNotExist)
}

// SetKeyMap replaces the code to button mapping.
func (s *EvdevSource) SetKeyMap(m map[evdev.EvCode]constants.VirtualButton) {
	s.keyMap = m
}

// Translate maps a raw input event. Autorepeat events (value 2) are dropped
// since the Dispatcher does its own repeat timing.
func (s *EvdevSource) Translate(ev *evdev.InputEvent) (Event, bool) {
	return translate(s.keyMap, ev)
}

func translate(keyMap map[evdev.EvCode]constants.VirtualButton, ev *evdev.InputEvent) (Event, bool) {
	if ev == nil || ev.Type != evdev.EV_KEY || ev.Value > 1 {
		return Event{}, false
	}
	button, ok := keyMap[ev.Code]
	if !ok {
		return Event{}, false
	}
	return Event{Button: button, Pressed: ev.Value == 1}, true
}

// Run reads events until ctx is done. Closing the device unblocks the read.
func (s *EvdevSource) Run(ctx context.Context, events chan<- Event) error {
	go func() {
		<-ctx.Done()
		_ = s.dev.Close()
	}()

	for {
		raw, err := s.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, os.ErrClosed) {
				return nil
			}
			return telly.NewInfrastructureError("read_input", err)
		}

		ev, ok := s.Translate(raw)
		if !ok {
			continue
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Close releases the device.
func (s *EvdevSource) Close() error {
	_ = s.dev.Ungrab()
	return s.dev.Close()
}

// Open opens the evdev device at path, or the first device whose name
// contains path when it is not a device node.
func Open(path string) (Source, error) {
	if strings.HasPrefix(path, "/dev/") {
		return OpenEvdev(path)
	}
	return FindEvdev(path)
}
