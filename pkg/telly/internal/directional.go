package internal

import (
	"time"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
)

// DirectionalInput tracks the held arrow key and handles repeat timing.
// Input sources embed this to turn a held remote key into a stream of
// repeated presses.
type DirectionalInput struct {
	held           constants.VirtualButton
	lastRepeatTime time.Time
	repeatDelay    time.Duration
	repeatInterval time.Duration
	hasRepeated    bool
	now            func() time.Time
}

// NewDirectionalInput creates a DirectionalInput with default timing.
func NewDirectionalInput() DirectionalInput {
	return NewDirectionalInputWithTiming(constants.DefaultRepeatDelay, constants.DefaultRepeatInterval)
}

// NewDirectionalInputWithTiming creates a DirectionalInput with custom timing.
func NewDirectionalInputWithTiming(delay, interval time.Duration) DirectionalInput {
	return DirectionalInput{
		repeatDelay:    delay,
		repeatInterval: interval,
		lastRepeatTime: time.Now(),
		now:            time.Now,
	}
}

// SetClock replaces the time source. Used by tests.
func (d *DirectionalInput) SetClock(now func() time.Time) {
	d.now = now
	d.lastRepeatTime = now()
}

// SetHeld updates the held state for an arrow button.
// Returns true if the button was a directional button.
func (d *DirectionalInput) SetHeld(button constants.VirtualButton, held bool) bool {
	if !button.IsDirectional() {
		return false
	}

	switch {
	case held:
		d.held = button
		d.hasRepeated = false
		d.lastRepeatTime = d.now()
	case d.held == button:
		d.held = constants.VirtualButtonUnassigned
		d.hasRepeated = false
	}
	return true
}

// IsHeld returns true if any direction is currently held.
func (d *DirectionalInput) IsHeld() bool {
	return d.held != constants.VirtualButtonUnassigned
}

// Held returns the currently held arrow, or VirtualButtonUnassigned.
func (d *DirectionalInput) Held() constants.VirtualButton {
	return d.held
}

// Update checks if a repeat event should fire based on timing.
// Call this periodically. It returns the button that should be processed,
// or VirtualButtonUnassigned if no repeat should occur.
//
// The first repeat occurs after repeatDelay, subsequent repeats after repeatInterval.
func (d *DirectionalInput) Update() constants.VirtualButton {
	if !d.IsHeld() {
		d.lastRepeatTime = d.now()
		d.hasRepeated = false
		return constants.VirtualButtonUnassigned
	}

	timeSince := d.now().Sub(d.lastRepeatTime)

	threshold := d.repeatInterval
	if !d.hasRepeated {
		threshold = d.repeatDelay
	}

	if timeSince >= threshold {
		d.lastRepeatTime = d.now()
		d.hasRepeated = true
		return d.held
	}

	return constants.VirtualButtonUnassigned
}

// Reset clears the held direction and timing state.
func (d *DirectionalInput) Reset() {
	d.held = constants.VirtualButtonUnassigned
	d.hasRepeated = false
	d.lastRepeatTime = d.now()
}
