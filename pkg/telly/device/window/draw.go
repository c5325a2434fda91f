package window

import (
	"fmt"
	"path/filepath"
	"strings"
	"unsafe"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/telly/pkg/telly/constants"
	"github.com/BrandonKowalski/telly/pkg/telly/device"
	"github.com/BrandonKowalski/telly/pkg/telly/device/icon"
	"github.com/BrandonKowalski/telly/pkg/telly/theme"
)

// paint is inherited down the tree while drawing.
type paint struct {
	fg    theme.Color
	alpha float64
}

func (p paint) sdl() sdl.Color {
	return sdl.Color{R: p.fg.R, G: p.fg.G, B: p.fg.B, A: 0xFF}
}

func (p paint) alphaMod() uint8 {
	return uint8(p.alpha * 0xFF)
}

// measure returns the size el occupies, without drawing.
func (d *Device) measure(el *device.Element) (int32, int32) {
	if el == nil || !el.Visible {
		return 0, 0
	}

	switch el.Kind {
	case device.KindLabel:
		w, h, err := d.font.SizeUTF8(el.Text)
		if err != nil {
			return 0, 0
		}
		return int32(w), int32(h)

	case device.KindImage:
		if el.Size.Width > 0 && el.Size.Height > 0 {
			return el.Size.Width, el.Size.Height
		}
		if tex := d.imageTexture(el); tex != nil {
			_, _, w, h, err := tex.Query()
			if err == nil {
				return w, h
			}
		}
		return 0, 0

	case device.KindButton:
		w, h := d.measureChildren(el, true)
		return w + d.padding.Horizontal(), h + d.padding.Vertical()

	default:
		w, h := d.measureChildren(el, el.HasClass(constants.ClassHorizontal))
		if el.HasClass(constants.ClassComponent) {
			w += d.padding.Horizontal()
			h += d.padding.Vertical()
		}
		return w, h
	}
}

func (d *Device) measureChildren(el *device.Element, horizontal bool) (int32, int32) {
	var w, h int32
	n := 0
	for _, child := range el.Children {
		cw, ch := d.measure(child)
		if cw == 0 && ch == 0 {
			continue
		}
		if horizontal {
			w += cw
			h = max(h, ch)
		} else {
			w = max(w, cw)
			h += ch
		}
		n++
	}
	if n > 1 {
		gap := d.spacing * int32(n-1)
		if horizontal {
			w += gap
		} else {
			h += gap
		}
	}
	return w, h
}

// draw renders el with its top left corner at x, y.
func (d *Device) draw(el *device.Element, x, y int32, p paint) {
	if el == nil || !el.Visible {
		return
	}
	p.alpha *= el.Opacity

	switch el.Kind {
	case device.KindLabel:
		d.drawText(el.Text, x, y, p)

	case device.KindImage:
		tex := d.imageTexture(el)
		if tex == nil {
			return
		}
		w, h := d.measure(el)
		_ = tex.SetAlphaMod(p.alphaMod())
		_ = d.renderer.Copy(tex, nil, &sdl.Rect{X: x, Y: y, W: w, H: h})

	case device.KindButton:
		d.drawButton(el, x, y, p)

	default:
		if el.HasClass(constants.ClassComponent) {
			w, h := d.measure(el)
			border := d.theme.AccentColor
			if el.HasClass(constants.ClassModal) {
				border = d.theme.HighlightColor
				bg := d.theme.BackgroundColor
				_ = d.renderer.SetDrawColor(bg.R, bg.G, bg.B, p.alphaMod())
				_ = d.renderer.FillRect(&sdl.Rect{X: x, Y: y, W: w, H: h})
			}
			_ = d.renderer.SetDrawColor(border.R, border.G, border.B, p.alphaMod())
			_ = d.renderer.DrawRect(&sdl.Rect{X: x, Y: y, W: w, H: h})
			x += d.padding.Left
			y += d.padding.Top
		}
		d.drawChildren(el, x, y, el.HasClass(constants.ClassHorizontal), p)
	}
}

func (d *Device) drawChildren(el *device.Element, x, y int32, horizontal bool, p paint) {
	for _, child := range el.Children {
		w, h := d.measure(child)
		if w == 0 && h == 0 {
			continue
		}
		d.draw(child, x, y, p)
		if horizontal {
			x += w + d.spacing
		} else {
			y += h + d.spacing
		}
	}
}

func (d *Device) drawButton(el *device.Element, x, y int32, p paint) {
	w, h := d.measure(el)
	rect := &sdl.Rect{X: x, Y: y, W: w, H: h}

	switch {
	case el.HasClass(constants.ClassDisabled):
		p.fg = d.theme.HintColor
	case el.HasClass(constants.ClassFocus):
		c := d.theme.HighlightColor
		_ = d.renderer.SetDrawColor(c.R, c.G, c.B, p.alphaMod())
		_ = d.renderer.FillRect(rect)
		p.fg = d.theme.HighlightedTextColor
	case el.HasClass(constants.ClassActive):
		c := d.theme.AccentColor
		_ = d.renderer.SetDrawColor(c.R, c.G, c.B, p.alphaMod())
		_ = d.renderer.DrawRect(rect)
	}

	d.drawChildren(el, x+d.padding.Left, y+d.padding.Top, true, p)
}

func (d *Device) drawText(text string, x, y int32, p paint) {
	if text == "" {
		return
	}
	key := fmt.Sprintf("text:%s:%s", p.fg.Hex(), text)
	tex, ok := d.textures.Get(key)
	if !ok {
		surface, err := d.font.RenderUTF8Blended(text, p.sdl())
		if err != nil {
			d.Logger().Debug("Failed to render text", "text", text, "error", err)
			return
		}
		tex, err = d.renderer.CreateTextureFromSurface(surface)
		surface.Free()
		if err != nil {
			d.Logger().Debug("Failed to create text texture", "error", err)
			return
		}
		d.textures.Set(key, tex)
	}

	_, _, w, h, err := tex.Query()
	if err != nil {
		return
	}
	_ = tex.SetAlphaMod(p.alphaMod())
	_ = d.renderer.Copy(tex, nil, &sdl.Rect{X: x, Y: y, W: w, H: h})
}

func (d *Device) drawStatus(text string) {
	_, h := d.window.GetSize()
	d.drawText(text, d.padding.Left, h-d.padding.Bottom-int32(d.font.Height()), paint{fg: d.theme.HintColor, alpha: 1})
}

// imageTexture loads el's source once. SVGs are rasterized at the element
// size; other formats go through SDL_image.
func (d *Device) imageTexture(el *device.Element) *sdl.Texture {
	key := fmt.Sprintf("image:%s:%dx%d", el.Src, el.Size.Width, el.Size.Height)
	if tex, ok := d.textures.Get(key); ok {
		return tex
	}

	var (
		tex *sdl.Texture
		err error
	)
	if strings.EqualFold(filepath.Ext(el.Src), ".svg") {
		tex, err = d.svgTexture(el.Src, int(el.Size.Width), int(el.Size.Height))
	} else {
		tex, err = img.LoadTexture(d.renderer, el.Src)
	}
	if err != nil {
		d.Logger().Warn("Failed to load image", "src", el.Src, "error", err)
		return nil
	}
	d.textures.Set(key, tex)
	return tex
}

func (d *Device) svgTexture(path string, w, h int) (*sdl.Texture, error) {
	rgba, err := icon.RasterizeFile(path, w, h)
	if err != nil {
		return nil, err
	}
	b := rgba.Bounds()
	surface, err := sdl.CreateRGBSurfaceWithFormatFrom(unsafe.Pointer(&rgba.Pix[0]),
		int32(b.Dx()), int32(b.Dy()), 32, int32(rgba.Stride), sdl.PIXELFORMAT_ABGR8888)
	if err != nil {
		return nil, err
	}
	defer surface.Free()

	tex, err := d.renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, err
	}
	_ = tex.SetBlendMode(sdl.BLENDMODE_BLEND)
	return tex, nil
}
