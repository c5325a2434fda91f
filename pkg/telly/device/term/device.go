// Package term presents a telly element tree in a terminal using Bubble Tea.
//
// The Device is also the application's Scheduler: posted funcs are delivered
// to the Bubble Tea event loop, so widget code, key handling and rendering
// all run on one goroutine.
package term

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/theme"
)

const (
	frameInterval = time.Second / 30

	// Columns taken by button markers and component borders around a label.
	labelMargin = 8
)

// App is the part of a widget application the terminal drives.
type App interface {
	HandleKey(key constants.VirtualButton) bool
	Loading() int64
}

type (
	drainMsg struct{}
	frameMsg time.Time
)

// Device is a Surface presented through a Bubble Tea program.
type Device struct {
	*device.Surface

	renderer *Renderer
	styles   Styles

	mu      sync.Mutex
	queue   []func()
	program *tea.Program
}

// New creates a terminal device drawing with t.
func New(t theme.Theme, opts ...device.SurfaceOption) *Device {
	styles := NewStyles(t)
	return &Device{
		Surface:  device.NewSurface(opts...),
		renderer: NewRenderer(styles),
		styles:   styles,
	}
}

// Post queues fn for the event loop. Funcs posted before Run starts are
// delivered once the program is up.
func (d *Device) Post(fn func()) {
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	p := d.program
	d.mu.Unlock()

	if p != nil {
		// Send blocks until the loop reads it, and Post may be called from
		// inside Update.
		go p.Send(drainMsg{})
	}
}

// Drain runs every queued func in order and returns how many ran.
func (d *Device) Drain() int {
	n := 0
	for {
		d.mu.Lock()
		if len(d.queue) == 0 {
			d.mu.Unlock()
			return n
		}
		fn := d.queue[0]
		d.queue[0] = nil
		d.queue = d.queue[1:]
		d.mu.Unlock()

		fn()
		n++
	}
}

// View renders the current element tree.
func (d *Device) View() string {
	return d.renderer.Render(d.Root())
}

// Run presents the device until the user quits or ctx is done.
func (d *Device) Run(ctx context.Context, app App) error {
	p := tea.NewProgram(newModel(d, app), tea.WithContext(ctx), tea.WithAltScreen())

	d.mu.Lock()
	d.program = p
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.program = nil
		d.mu.Unlock()
	}()

	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return telly.NewInfrastructureError("run_terminal", err)
	}
	return nil
}

type model struct {
	device  *Device
	app     App
	spinner spinner.Model
	width   int
	height  int
}

func newModel(d *Device, app App) model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = d.styles.Status
	return model{device: d, app: app, spinner: s}
}

func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return drainMsg{} },
		m.spinner.Tick,
		frame(),
	)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case drainMsg:
		m.device.Drain()
		return m, nil

	case tea.KeyMsg:
		if isQuit(msg) {
			return m, tea.Quit
		}
		if button := ButtonForKey(msg); button != constants.VirtualButtonUnassigned {
			m.app.HandleKey(button)
		}
		return m, nil

	case frameMsg:
		m.device.Tick()
		return m, frame()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.device.renderer.SetLabelWidth(msg.Width - labelMargin)
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	body := m.device.View()

	var status []string
	if m.app.Loading() > 0 {
		status = append(status, m.spinner.View()+constants.LoadingGlyph)
	}
	if media := m.device.Media(); media != "" {
		status = append(status, m.device.styles.Status.Render(constants.MediaGlyph+" "+media))
	}
	if len(status) == 0 {
		return body
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, lipgloss.JoinHorizontal(lipgloss.Top, status...))
}
