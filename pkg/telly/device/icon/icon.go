// Package icon rasterizes SVG images for backends that draw pixels.
package icon

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"math"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterize draws the SVG read from r into a w by h image. A zero width or
// height takes the size from the SVG view box, keeping its aspect ratio when
// only one side is given.
func Rasterize(r io.Reader, w, h int) (*image.RGBA, error) {
	svg, err := oksvg.ReadIconStream(r)
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}

	w, h = fit(svg.ViewBox.W, svg.ViewBox.H, w, h)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("svg has no size: %vx%v", svg.ViewBox.W, svg.ViewBox.H)
	}

	svg.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	svg.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	return img, nil
}

// RasterizeFile reads and rasterizes the SVG at path.
func RasterizeFile(path string, w, h int) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read svg %s: %w", path, err)
	}
	return Rasterize(bytes.NewReader(data), w, h)
}

func fit(vw, vh float64, w, h int) (int, int) {
	switch {
	case w > 0 && h > 0:
		return w, h
	case w > 0 && vw > 0:
		return w, int(math.Round(float64(w) * vh / vw))
	case h > 0 && vh > 0:
		return int(math.Round(float64(h) * vw / vh)), h
	default:
		return int(math.Ceil(vw)), int(math.Ceil(vh))
	}
}
