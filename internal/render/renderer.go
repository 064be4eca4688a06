// Package render rasterizes a battle's frame history into an animated GIF
// or an ffmpeg-encoded MP4.
//
// Rendering is cosmetic, not authoritative: missing background or sprite
// assets degrade to procedural placeholders and never fail a battle. The
// only recoverable rendering error callers are expected to branch on is
// ErrEncoderUnavailable from RenderMP4.
package render

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/botarena/battlesim/internal/engine"
	"github.com/botarena/battlesim/internal/parts"
)

// Options configures a Renderer for one battle.
type Options struct {
	Width  float64 // arena units
	Height float64
	Scale  float64 // canvas pixels per arena unit
	FPS    int     // simulation fps; MP4 uses it, GIF divides it down

	Team1Color string // hex, e.g. "#3b78ff"
	Team2Color string

	Registry  *parts.Registry
	AssetsDir string
	Campaign  string // with Mission, selects a background image
	Mission   string

	FFmpegPath   string
	ShowProgress bool
	Logger       *slog.Logger
}

// Renderer draws battle frames. Construct with New; the zero value is not
// usable.
type Renderer struct {
	opts       Options
	w, h       int         // canvas pixels
	background image.Image // nil means procedural background
}

// New creates a renderer, resolving the background image once up front.
func New(opts Options) *Renderer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Registry == nil {
		opts.Registry = parts.DefaultRegistry()
	}
	if opts.Scale <= 0 {
		opts.Scale = 0.5
	}
	if opts.FPS < 1 {
		opts.FPS = 30
	}

	r := &Renderer{
		opts: opts,
		w:    max(1, int(opts.Width*opts.Scale)),
		h:    max(1, int(opts.Height*opts.Scale)),
	}
	r.background = r.loadBackground()
	return r
}

// FrameSkip returns how many simulation frames each GIF frame should
// advance so the GIF plays near targetFPS. Never returns less than 1.
func FrameSkip(fps, targetFPS int) int {
	if targetFPS < 1 {
		return 1
	}
	skip := fps / targetFPS
	if skip < 1 {
		return 1
	}
	return skip
}

// roster indexes the result's bot descriptors for per-frame drawing.
type roster map[int]engine.RosterEntry

func buildRoster(res *engine.Result) roster {
	m := make(roster, len(res.Roster))
	for _, e := range res.Roster {
		m[e.ID] = e
	}
	return m
}

// drawFrame rasterizes one frame to a canvas-sized image.
func (r *Renderer) drawFrame(f engine.Frame, ros roster) image.Image {
	dc := gg.NewContext(r.w, r.h)
	r.drawBackground(dc)

	// Wrecks first so live bots draw over them.
	for _, bf := range f.Bots {
		if !bf.Alive {
			r.drawWreck(dc, bf)
		}
	}
	for _, s := range f.Shots {
		r.drawShot(dc, s)
	}
	for _, bf := range f.Bots {
		if bf.Alive {
			r.drawBot(dc, bf, ros[bf.ID])
		}
	}

	r.drawHUD(dc, f)
	return dc.Image()
}

func (r *Renderer) teamColor(team int) string {
	if team == 2 {
		return r.opts.Team2Color
	}
	return r.opts.Team1Color
}

func (r *Renderer) drawBot(dc *gg.Context, bf engine.BotFrame, entry engine.RosterEntry) {
	chassis := r.opts.Registry.ChassisByName(entry.Chassis)
	x := bf.Pos.X * r.opts.Scale
	y := bf.Pos.Y * r.opts.Scale
	radius := chassis.Radius * r.opts.Scale

	// Hull.
	dc.Push()
	dc.Translate(x, y)
	dc.Rotate(bf.Heading)
	drawSprite(dc, chassis.Sprite, radius, r.teamColor(entry.Team))
	dc.Pop()

	// Turret barrel.
	dc.Push()
	dc.Translate(x, y)
	dc.Rotate(bf.TurretHeading)
	dc.SetRGB(0.15, 0.15, 0.15)
	dc.SetLineWidth(max(1, radius/4))
	dc.DrawLine(0, 0, radius*1.4, 0)
	dc.Stroke()
	dc.Pop()

	r.drawHealthBar(dc, x, y-radius-6, radius*2, bf, entry)

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0.95, 0.95, 0.95)
	dc.DrawStringAnchored(entry.Name, x, y+radius+8, 0.5, 0.5)
}

func (r *Renderer) drawHealthBar(dc *gg.Context, cx, cy, width float64, bf engine.BotFrame, entry engine.RosterEntry) {
	frac := 0.0
	if entry.MaxHealth > 0 {
		frac = bf.Health / entry.MaxHealth
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	const barH = 3
	dc.SetRGBA(0, 0, 0, 0.6)
	dc.DrawRectangle(cx-width/2, cy, width, barH)
	dc.Fill()

	// Green above 50%, amber to 25%, red below.
	switch {
	case frac > 0.5:
		dc.SetRGB(0.2, 0.8, 0.2)
	case frac > 0.25:
		dc.SetRGB(0.9, 0.7, 0.1)
	default:
		dc.SetRGB(0.9, 0.2, 0.2)
	}
	dc.DrawRectangle(cx-width/2, cy, width*frac, barH)
	dc.Fill()
}

func (r *Renderer) drawWreck(dc *gg.Context, bf engine.BotFrame) {
	x := bf.Pos.X * r.opts.Scale
	y := bf.Pos.Y * r.opts.Scale
	s := 5 * r.opts.Scale

	dc.SetRGBA(0.25, 0.22, 0.2, 0.8)
	dc.SetLineWidth(2)
	dc.DrawLine(x-s, y-s, x+s, y+s)
	dc.DrawLine(x-s, y+s, x+s, y-s)
	dc.Stroke()
}

func (r *Renderer) drawShot(dc *gg.Context, s engine.ShotFrame) {
	seq := s.Path.Coordinates()
	if seq.Length() < 2 {
		return
	}
	from := seq.GetXY(0)
	to := seq.GetXY(seq.Length() - 1)

	switch {
	case s.Healing:
		dc.SetRGBA(0.3, 0.95, 0.45, 0.9)
		dc.SetLineWidth(1.5)
	case s.Projectile == "beam":
		dc.SetRGBA(0.95, 0.3, 0.3, 0.9)
		dc.SetLineWidth(1.5)
	case s.Projectile == "missile":
		dc.SetRGBA(0.95, 0.6, 0.15, 0.9)
		dc.SetLineWidth(2.5)
	default:
		dc.SetRGBA(0.95, 0.9, 0.4, 0.9)
		dc.SetLineWidth(1)
	}
	dc.DrawLine(
		from.X*r.opts.Scale, from.Y*r.opts.Scale,
		to.X*r.opts.Scale, to.Y*r.opts.Scale,
	)
	dc.Stroke()
}

func (r *Renderer) drawHUD(dc *gg.Context, f engine.Frame) {
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGBA(1, 1, 1, 0.7)
	dc.DrawString(fmt.Sprintf("frame %d", f.Index), 4, 13)
}
