package engine

import (
	"strings"

	"github.com/peterstace/simplefeatures/geom"
)

// Behavior is a bot's movement/engagement policy.
type Behavior string

const (
	BehaviorAggressive Behavior = "aggressive"
	BehaviorDefensive  Behavior = "defensive"
	BehaviorTactical   Behavior = "tactical"
)

// ParseBehavior normalizes a behavior string. Unrecognized or missing
// values degrade to tactical.
func ParseBehavior(s string) Behavior {
	switch Behavior(strings.ToLower(strings.TrimSpace(s))) {
	case BehaviorAggressive:
		return BehaviorAggressive
	case BehaviorDefensive:
		return BehaviorDefensive
	case BehaviorTactical:
		return BehaviorTactical
	default:
		return BehaviorTactical
	}
}

// TargetPriority is a bot's rule for selecting which enemy to engage.
type TargetPriority string

// PriorityClosest is the only live priority. The legacy "strongest" and
// "furthest" values still appear in old battle requests and must degrade
// to it without erroring.
const PriorityClosest TargetPriority = "closest"

// ParseTargetPriority normalizes a target priority string.
func ParseTargetPriority(s string) TargetPriority {
	switch TargetPriority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityClosest:
		return PriorityClosest
	default:
		return PriorityClosest
	}
}

// BotParams is the fully-defaulted, immutable description of one combatant.
// Construction from untrusted request JSON (and the defaulting that implies)
// happens once in the request package; the engine only clamps out values
// that would break the simulation.
type BotParams struct {
	ID   int
	Name string
	Team int // 1 or 2

	// Render metadata only.
	Chassis   string
	Plating   string
	Component string

	MaxHealth           float64
	Speed               float64 // arena units per second
	RotationSpeed       float64 // radians per second
	TurretRotationSpeed float64 // radians per second
	Intelligence        float64
	DamagePerShot       float64 // negative heals
	ShotsPerMinute      float64
	MinRange            float64
	MaxRange            float64
	Agility             float64

	Behavior Behavior
	Priority TargetPriority

	Projectile   string
	MuzzleOffset float64
}

// IsHealer reports whether the bot's weapon heals instead of harms.
func (p BotParams) IsHealer() bool {
	return p.DamagePerShot < 0
}

// bot is the mutable runtime state of one combatant. Everything outside
// this struct's runtime fields is frozen at AddBot time.
type bot struct {
	BotParams

	pos      geom.XY
	heading  float64
	turret   float64
	health   float64
	cooldown int // ticks until the weapon may fire again
	alive    bool

	target        int // current target bot id, or noTarget
	ticksOnTarget int

	stats BotStats
}

const noTarget = -1

// fireInterval returns the cooldown in ticks derived from shots-per-minute,
// or 0 when the bot cannot fire at all.
func (b *bot) fireInterval(fps int) int {
	if b.ShotsPerMinute <= 0 {
		return 0
	}
	interval := int(float64(fps)*60.0/b.ShotsPerMinute + 0.5)
	if interval < 1 {
		interval = 1
	}
	return interval
}

// distanceTo returns the distance from this bot to another.
func (b *bot) distanceTo(o *bot) float64 {
	return o.pos.Sub(b.pos).Length()
}
