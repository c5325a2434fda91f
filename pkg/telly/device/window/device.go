// Package window presents a telly element tree in an SDL2 window.
//
// SDL must be driven from the thread that initialised it, so Run owns the
// frame loop and the Device doubles as the application's Scheduler: posted
// funcs run between frames.
package window

import (
	"context"
	"runtime"
	"sync"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/telly/pkg/telly"
	"github.com/BrandonKowalski/telly/pkg/telly/config"
	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/internal"
	"github.com/BrandonKowalski/telly/pkg/telly/theme"
)

const textureCacheSize = 256

// App is the part of a widget application the window drives.
type App interface {
	HandleKey(key constants.VirtualButton) bool
	Loading() int64
}

// Device is a Surface presented in an SDL window.
type Device struct {
	*device.Surface

	theme    theme.Theme
	window   *sdl.Window
	renderer *sdl.Renderer
	font     *ttf.Font
	textures *internal.LRU[string, *sdl.Texture]
	padding  internal.Padding
	spacing  int32

	hasVSync        bool
	lastPresentTime uint64

	mu    sync.Mutex
	queue []func()
}

// OptionsFromConfig builds window options from the device section of cfg.
func OptionsFromConfig(cfg config.DeviceConfig, t theme.Theme) Options {
	opts := DefaultOptions()
	if cfg.Width > 0 && cfg.Height > 0 {
		opts.Width, opts.Height = cfg.Width, cfg.Height
	}
	if cfg.FontSize > 0 {
		opts.FontSize = cfg.FontSize
	}
	opts.FontPath = cfg.FontPath
	if opts.FontPath == "" {
		opts.FontPath = t.FontPath
	}
	return opts
}

// New opens the window. It must be called from the goroutine that will
// call Run.
func New(opts Options, t theme.Theme, surfaceOpts ...device.SurfaceOption) (*Device, error) {
	runtime.LockOSThread()

	if opts.FontPath == "" {
		return nil, telly.NewInfrastructureError("open_font", telly.ErrNoFont)
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, telly.NewInfrastructureError("init_sdl", err)
	}
	if err := ttf.Init(); err != nil {
		sdl.Quit()
		return nil, telly.NewInfrastructureError("init_ttf", err)
	}
	_ = img.Init(img.INIT_PNG | img.INIT_JPG | img.INIT_WEBP)

	d := &Device{
		Surface: device.NewSurface(surfaceOpts...),
		theme:   t,
		padding: internal.Padding{Top: 8, Right: 16, Bottom: 8, Left: 16},
		spacing: 8,
	}
	d.textures = internal.NewLRU[string, *sdl.Texture](textureCacheSize, func(_ string, tex *sdl.Texture) {
		_ = tex.Destroy()
	})

	var err error
	if d.window, err = sdl.CreateWindow(opts.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		opts.Width, opts.Height, opts.flags()); err != nil {
		d.Close()
		return nil, telly.NewInfrastructureError("create_window", err)
	}

	if d.renderer, err = sdl.CreateRenderer(d.window, -1,
		sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC); err != nil {
		d.Close()
		return nil, telly.NewInfrastructureError("create_renderer", err)
	}
	_ = d.renderer.SetLogicalSize(opts.Width, opts.Height)
	_ = d.renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	info, err := d.renderer.GetInfo()
	d.hasVSync = err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	if d.font, err = ttf.OpenFont(opts.FontPath, opts.FontSize); err != nil {
		d.Close()
		return nil, telly.NewInfrastructureError("open_font", err)
	}

	d.Logger().Debug("SDL window opened", "width", opts.Width, "height", opts.Height, "vsync", d.hasVSync)
	return d, nil
}

// Post queues fn to run before the next frame.
func (d *Device) Post(fn func()) {
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	d.mu.Unlock()
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

// Run pumps SDL events into app and draws frames until the window is
// closed or ctx is done.
func (d *Device) Run(ctx context.Context, app App) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
			switch e := ev.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if b, ok := buttonForKey(e); ok {
					app.HandleKey(b)
				}
			}
		}

		d.Drain()
		d.Tick()
		d.frame(app)
	}
}

// Close releases every SDL resource.
func (d *Device) Close() {
	if d.textures != nil {
		d.textures.Purge()
	}
	if d.font != nil {
		d.font.Close()
	}
	if d.renderer != nil {
		_ = d.renderer.Destroy()
	}
	if d.window != nil {
		_ = d.window.Destroy()
	}
	img.Quit()
	ttf.Quit()
	sdl.Quit()
}

func (d *Device) frame(app App) {
	bg := d.theme.BackgroundColor
	_ = d.renderer.SetDrawColor(bg.R, bg.G, bg.B, 0xFF)
	_ = d.renderer.Clear()

	root := d.Root()
	d.draw(root, d.padding.Left, d.padding.Top, paint{fg: d.theme.TextColor, alpha: 1})

	if app.Loading() > 0 {
		d.drawStatus(constants.LoadingGlyph)
	} else if media := d.Media(); media != "" {
		d.drawStatus(constants.MediaGlyph + " " + media)
	}

	d.present()
}

// present swaps buffers, holding roughly 60fps when VSync is unavailable.
func (d *Device) present() {
	d.renderer.Present()
	if !d.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - d.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		d.lastPresentTime = sdl.GetTicks64()
	}
}
