package render

import (
	"math"

	"github.com/fogleman/gg"

	"github.com/botarena/battlesim/internal/parts"
)

// drawSprite draws a chassis sprite centered at the origin, facing +X.
// The caller has already translated/rotated the context. Unknown shapes
// fall back to the placeholder octagon — a missing asset must never abort
// a render.
func drawSprite(dc *gg.Context, shape parts.SpriteShape, radius float64, hexColor string) {
	dc.SetHexColor(hexColor)

	switch shape {
	case parts.SpriteBox:
		dc.DrawRectangle(-radius, -radius*0.8, radius*2, radius*1.6)
		dc.Fill()

	case parts.SpriteWedge:
		dc.MoveTo(radius, 0)
		dc.LineTo(-radius, -radius*0.7)
		dc.LineTo(-radius*0.6, 0)
		dc.LineTo(-radius, radius*0.7)
		dc.ClosePath()
		dc.Fill()

	case parts.SpriteDome:
		dc.DrawCircle(0, 0, radius)
		dc.Fill()
		dc.SetRGBA(1, 1, 1, 0.25)
		dc.DrawCircle(-radius*0.2, -radius*0.2, radius*0.55)
		dc.Fill()

	case parts.SpriteTracked:
		dc.DrawRectangle(-radius, -radius, radius*2, radius*2)
		dc.Fill()
		dc.SetRGBA(0, 0, 0, 0.4)
		dc.DrawRectangle(-radius, -radius, radius*2, radius*0.3)
		dc.DrawRectangle(-radius, radius*0.7, radius*2, radius*0.3)
		dc.Fill()

	default:
		// Placeholder: octagon with a hollow center.
		drawOctagon(dc, radius)
		dc.Fill()
		dc.SetRGBA(0, 0, 0, 0.5)
		dc.DrawCircle(0, 0, radius*0.35)
		dc.Fill()
	}
}

func drawOctagon(dc *gg.Context, radius float64) {
	const steps = 8
	for i := 0; i < steps; i++ {
		angle := float64(i) * 2 * math.Pi / steps
		x := radius * math.Cos(angle)
		y := radius * math.Sin(angle)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.ClosePath()
}
