package render

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// loadBackground resolves the arena background image, most specific first:
// the campaign/mission image, then the default arena image, then nil
// (procedural background). Missing or unreadable files are logged and
// skipped, never surfaced.
func (r *Renderer) loadBackground() image.Image {
	var candidates []string
	if r.opts.Campaign != "" && r.opts.Mission != "" {
		candidates = append(candidates, filepath.Join(
			r.opts.AssetsDir, "backgrounds",
			fmt.Sprintf("%s_%s.png", r.opts.Campaign, r.opts.Mission),
		))
	}
	candidates = append(candidates, filepath.Join(r.opts.AssetsDir, "backgrounds", "default.png"))

	for _, path := range candidates {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		img, err := gg.LoadImage(path)
		if err != nil {
			r.opts.Logger.Warn("Unreadable background image, skipping", "path", path, "error", err)
			continue
		}
		r.opts.Logger.Debug("Using background image", "path", path)
		return img
	}
	return nil
}

// drawBackground paints the background image scaled to the canvas, or a
// procedural arena floor with grid lines when no image is available.
func (r *Renderer) drawBackground(dc *gg.Context) {
	if r.background != nil {
		b := r.background.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			dc.Push()
			dc.Scale(float64(r.w)/float64(b.Dx()), float64(r.h)/float64(b.Dy()))
			dc.DrawImage(r.background, 0, 0)
			dc.Pop()
			return
		}
	}

	dc.SetRGB(0.12, 0.14, 0.12)
	dc.Clear()

	// Grid every 100 arena units.
	step := 100 * r.opts.Scale
	if step < 4 {
		return
	}
	dc.SetRGBA(1, 1, 1, 0.06)
	dc.SetLineWidth(1)
	for x := step; x < float64(r.w); x += step {
		dc.DrawLine(x, 0, x, float64(r.h))
	}
	for y := step; y < float64(r.h); y += step {
		dc.DrawLine(0, y, float64(r.w), y)
	}
	dc.Stroke()
}
