// Package input turns remote control key presses into calls to
// Application.HandleKey on the application's event loop.
package input

import (
	"context"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/internal"
)

// Event is a press or release of a virtual button.
type Event struct {
	Button  constants.VirtualButton
	Pressed bool
}

// Source produces input events until ctx is done or the source fails.
type Source interface {
	Run(ctx context.Context, events chan<- Event) error
}

// KeyHandler receives dispatched keys. *widget.Application implements it.
type KeyHandler interface {
	HandleKey(button constants.VirtualButton) bool
	Post(fn func())
}

// Dispatcher forwards events from a Source to a KeyHandler, repeating held
// arrow keys.
type Dispatcher struct {
	handler KeyHandler
	repeat  internal.DirectionalInput
	tick    time.Duration
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher with the default repeat timing.
func NewDispatcher(handler KeyHandler) *Dispatcher {
	return &Dispatcher{
		handler: handler,
		repeat:  internal.NewDirectionalInput(),
		tick:    constants.DefaultInputDelay,
		logger:  telly.GetLogger(),
	}
}

// SetClock replaces the repeat time source.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.repeat.SetClock(now)
}

// Run reads src until ctx is done or src returns.
func (d *Dispatcher) Run(ctx context.Context, src Source) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan Event, 16)
	errc := make(chan error, 1)
	go func() {
		errc <- src.Run(ctx, events)
	}()

	ticker := time.NewTicker(d.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errc:
			return err
		case ev := <-events:
			d.Handle(ev)
		case <-ticker.C:
			d.Tick()
		}
	}
}

// Handle dispatches a press and tracks held arrows.
func (d *Dispatcher) Handle(ev Event) {
	if ev.Button == constants.VirtualButtonUnassigned {
		return
	}
	d.repeat.SetHeld(ev.Button, ev.Pressed)
	if ev.Pressed {
		d.logger.Debug("Key pressed", "button", ev.Button.GetName())
		d.dispatch(ev.Button)
	}
}

// Tick dispatches a repeat of the held arrow when one is due.
func (d *Dispatcher) Tick() {
	if b := d.repeat.Update(); b != constants.VirtualButtonUnassigned {
		d.dispatch(b)
	}
}

func (d *Dispatcher) dispatch(b constants.VirtualButton) {
	d.handler.Post(func() {
		d.handler.HandleKey(b)
	})
}
