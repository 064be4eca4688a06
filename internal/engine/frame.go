package engine

import "github.com/peterstace/simplefeatures/geom"

// Frame is one tick's snapshot of every bot. Frames are appended to the
// engine's history in strictly increasing tick order and never mutated
// afterwards; the renderer borrows them read-only.
type Frame struct {
	Index int
	Bots  []BotFrame
	Shots []ShotFrame
}

// BotFrame is one bot's state within a frame. Destroyed bots stay in the
// record with Alive=false so the renderer can draw wrecks.
type BotFrame struct {
	ID            int
	Pos           geom.XY
	Heading       float64
	TurretHeading float64
	Health        float64
	Alive         bool
}

// ShotFrame records one weapon discharge resolved during the frame's tick.
// Path runs from the attacker's muzzle to the target's position.
type ShotFrame struct {
	AttackerID int
	TargetID   int
	Path       geom.LineString
	Projectile string
	Healing    bool
}

// shotPath builds the muzzle-to-target flight path as a line string.
// A degenerate path (coincident muzzle and target) yields the empty line
// string, which the renderer skips.
func shotPath(from, to geom.XY) geom.LineString {
	seq := geom.NewSequence([]float64{from.X, from.Y, to.X, to.Y}, geom.DimXY)
	ls, err := geom.NewLineString(seq)
	if err != nil {
		return geom.LineString{}
	}
	return ls
}
