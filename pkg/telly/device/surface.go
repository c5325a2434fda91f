package device

import (
	"log/slog"
	"slices"
	"time"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/config"
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
)

// RootID is the id of the element every Surface starts with.
const RootID = "screen"

type animation struct {
	from, to   float64
	start      time.Time
	duration   time.Duration
	hide       bool
	onComplete func()
}

// Surface is the in-memory Device. It keeps the element tree, runs fade
// transitions when ticked, and records media playback. Backends embed it and
// only add presentation.
type Surface struct {
	root   *Element
	logger *slog.Logger
	cfg    config.Config
	now    func() time.Time

	animating []*Element
	media     string
}

// SurfaceOption configures a Surface.
type SurfaceOption func(*Surface)

// WithLogger sets the logger exposed to widgets.
func WithLogger(logger *slog.Logger) SurfaceOption {
	return func(s *Surface) {
		s.logger = logger
	}
}

// WithConfig sets the configuration exposed to widgets.
func WithConfig(cfg config.Config) SurfaceOption {
	return func(s *Surface) {
		s.cfg = cfg
	}
}

// WithClock replaces the animation time source.
func WithClock(now func() time.Time) SurfaceOption {
	return func(s *Surface) {
		s.now = now
	}
}

// NewSurface creates an empty surface with a single root element.
func NewSurface(opts ...SurfaceOption) *Surface {
	s := &Surface{
		root:   newElement(RootID, KindContainer, []string{constants.ClassContainer}),
		logger: telly.GetLogger(),
		cfg:    config.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Surface) Root() *Element {
	return s.root
}

func (s *Surface) Logger() *slog.Logger {
	return s.logger
}

func (s *Surface) Config() config.Config {
	return s.cfg
}

func (s *Surface) CreateContainer(id string, classes []string) *Element {
	return newElement(id, KindContainer, classes)
}

func (s *Surface) CreateLabel(id string, classes []string, text string) *Element {
	el := newElement(id, KindLabel, classes)
	el.Text = text
	return el
}

func (s *Surface) CreateButton(id string, classes []string) *Element {
	return newElement(id, KindButton, classes)
}

func (s *Surface) CreateImage(id string, classes []string, src string, size Size) *Element {
	el := newElement(id, KindImage, classes)
	el.Src = src
	el.Size = size
	return el
}

// AppendChildElement moves child to the end of parent's children.
func (s *Surface) AppendChildElement(parent, child *Element) {
	if parent == nil || child == nil {
		return
	}
	child.detach()
	child.Parent = parent
	parent.Children = append(parent.Children, child)
}

// InsertChildElement moves child to index within parent. Out of range
// indices append.
func (s *Surface) InsertChildElement(parent, child *Element, index int) {
	if parent == nil || child == nil {
		return
	}
	child.detach()
	child.Parent = parent
	if index < 0 || index >= len(parent.Children) {
		parent.Children = append(parent.Children, child)
		return
	}
	parent.Children = slices.Insert(parent.Children, index, child)
}

// ClearElement detaches every child of el.
func (s *Surface) ClearElement(el *Element) {
	if el == nil {
		return
	}
	for _, child := range el.Children {
		child.Parent = nil
	}
	el.Children = nil
}

// RemoveElement detaches el from its parent.
func (s *Surface) RemoveElement(el *Element) {
	if el == nil {
		return
	}
	el.detach()
}

func (s *Surface) SetElementClasses(el *Element, classes []string) {
	if el == nil {
		return
	}
	el.Classes = slices.Clone(classes)
}

func (s *Surface) SetElementContent(el *Element, text string) {
	if el == nil {
		return
	}
	el.Text = text
}

func (s *Surface) SetElementSize(el *Element, size Size) {
	if el == nil {
		return
	}
	el.Size = size
}

// ShowElement makes el visible, fading its opacity to 1 unless SkipAnim.
func (s *Surface) ShowElement(opts AnimOptions) {
	if opts.El == nil {
		return
	}
	opts.El.Visible = true
	s.transition(opts, 1, false)
}

// HideElement fades el out and marks it invisible once done.
func (s *Surface) HideElement(opts AnimOptions) {
	if opts.El == nil {
		return
	}
	s.transition(opts, 0, true)
}

func (s *Surface) transition(opts AnimOptions, to float64, hide bool) {
	el := opts.El
	s.cancel(el)

	duration := opts.Duration
	if duration == 0 {
		duration = constants.DefaultFadeDuration
	}

	if opts.SkipAnim || el.Opacity == to {
		el.Opacity = to
		if hide {
			el.Visible = false
		}
		if opts.OnComplete != nil {
			opts.OnComplete()
		}
		return
	}

	el.anim = &animation{
		from:       el.Opacity,
		to:         to,
		start:      s.now(),
		duration:   duration,
		hide:       hide,
		onComplete: opts.OnComplete,
	}
	s.animating = append(s.animating, el)
}

// cancel drops a running transition on el, leaving opacity where it is.
func (s *Surface) cancel(el *Element) {
	if el.anim == nil {
		return
	}
	el.anim = nil
	if i := slices.Index(s.animating, el); i >= 0 {
		s.animating = slices.Delete(s.animating, i, i+1)
	}
}

// Tick advances running transitions to the current time. It returns true
// while any transition is still running.
func (s *Surface) Tick() bool {
	now := s.now()
	var done []*animation

	running := s.animating[:0]
	for _, el := range s.animating {
		a := el.anim
		progress := float64(now.Sub(a.start)) / float64(a.duration)
		if progress >= 1 {
			el.Opacity = a.to
			if a.hide {
				el.Visible = false
			}
			el.anim = nil
			done = append(done, a)
			continue
		}
		el.Opacity = a.from + (a.to-a.from)*progress
		running = append(running, el)
	}
	s.animating = running

	for _, a := range done {
		if a.onComplete != nil {
			a.onComplete()
		}
	}
	return len(s.animating) > 0
}

// PlayMedia records src as the playing media. Surface has no audio output;
// backends that do override this.
func (s *Surface) PlayMedia(src string) error {
	s.media = src
	s.logger.Debug("media playback", "src", src)
	return nil
}

func (s *Surface) StopMedia() {
	s.media = ""
}

// Media returns the source passed to the last PlayMedia, if not stopped.
func (s *Surface) Media() string {
	return s.media
}

var _ Device = (*Surface)(nil)
