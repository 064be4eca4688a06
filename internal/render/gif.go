package render

import (
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"os"

	"github.com/botarena/battlesim/internal/engine"
)

// RenderGIF rasterizes every frameSkip-th frame and writes an animated GIF
// to outPath. frameSkip values below 1 are treated as 1.
func (r *Renderer) RenderGIF(res *engine.Result, outPath string, frameSkip int) error {
	if len(res.Frames) == 0 {
		return fmt.Errorf("render: no frames to encode")
	}
	if frameSkip < 1 {
		frameSkip = 1
	}
	ros := buildRoster(res)

	// GIF delay is in centiseconds per frame.
	delay := 100 * frameSkip / r.opts.FPS
	if delay < 2 {
		delay = 2
	}

	anim := &gif.GIF{}
	rendered := 0
	for i := 0; i < len(res.Frames); i += frameSkip {
		img := r.drawFrame(res.Frames[i], ros)
		anim.Image = append(anim.Image, palettize(img))
		anim.Delay = append(anim.Delay, delay)
		rendered++
		if r.opts.ShowProgress && rendered%50 == 0 {
			r.opts.Logger.Info("GIF render progress",
				"rendered", rendered,
				"total", (len(res.Frames)+frameSkip-1)/frameSkip)
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating gif file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := gif.EncodeAll(f, anim); err != nil {
		return fmt.Errorf("encoding gif: %w", err)
	}
	r.opts.Logger.Debug("GIF written", "path", outPath, "frames", rendered)
	return nil
}

// palettize converts a rendered frame to a 256-color paletted image.
func palettize(img image.Image) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(b, palette.Plan9)
	draw.Draw(p, b, img, b.Min, draw.Src)
	return p
}
