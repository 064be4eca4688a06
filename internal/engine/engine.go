// Package engine runs the deterministic, tick-based battle simulation.
//
// The engine owns all bot state for the duration of one Run call. It does
// no I/O: callers register bots, call Run once, and receive an immutable
// Result whose frame history feeds the renderer. Two runs over identical
// input produce byte-identical frame histories — nothing in the tick loop
// reads the clock or unseeded randomness.
package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/botarena/battlesim/internal/util"
)

// Config is the immutable arena setup for one battle.
type Config struct {
	Width       float64
	Height      float64
	FPS         int
	MaxDuration float64 // simulated seconds
	Seed        int64
}

// withDefaults clamps config values that would break the tick loop.
func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = 1000
	}
	if c.Height <= 0 {
		c.Height = 1000
	}
	if c.FPS < 1 {
		c.FPS = 30
	}
	if c.MaxDuration <= 0 {
		c.MaxDuration = 60
	}
	return c
}

// ErrAlreadyRun is returned when Run is called twice on one engine.
var ErrAlreadyRun = errors.New("engine: battle already run")

// Engine simulates one battle between two teams of bots.
type Engine struct {
	cfg    Config
	logger *slog.Logger
	rng    *rand.Rand

	bots   []*bot // sorted by id at Run
	byID   map[int]*bot
	frames []Frame
	ran    bool
}

// New creates an engine for the given arena config.
func New(cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Engine{
		cfg:    cfg,
		logger: logger,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
		byID:   map[int]*bot{},
	}
}

// AddBot registers one combatant. Malformed numeric stats are clamped to
// zero rather than rejected — the request comes from untrusted JSON and a
// lame bot is better than a failed battle. Only structurally impossible
// registrations (bad team, duplicate id) error.
func (e *Engine) AddBot(p BotParams) error {
	if e.ran {
		return ErrAlreadyRun
	}
	if p.Team != 1 && p.Team != 2 {
		return fmt.Errorf("engine: bot %d has invalid team %d", p.ID, p.Team)
	}
	if _, dup := e.byID[p.ID]; dup {
		return fmt.Errorf("engine: duplicate bot id %d", p.ID)
	}

	p.MaxHealth = math.Max(0, p.MaxHealth)
	p.Speed = math.Max(0, p.Speed)
	p.RotationSpeed = math.Max(0, p.RotationSpeed)
	p.TurretRotationSpeed = math.Max(0, p.TurretRotationSpeed)
	p.Intelligence = util.Clamp(p.Intelligence, 0, 100)
	p.ShotsPerMinute = math.Max(0, p.ShotsPerMinute)
	p.MinRange = math.Max(0, p.MinRange)
	p.MaxRange = math.Max(p.MinRange, p.MaxRange)
	p.Agility = math.Max(0, p.Agility)
	p.MuzzleOffset = math.Max(0, p.MuzzleOffset)

	b := &bot{
		BotParams: p,
		health:    p.MaxHealth,
		alive:     p.MaxHealth > 0,
		target:    noTarget,
		stats: BotStats{
			Name:  p.Name,
			Team:  p.Team,
			Alive: p.MaxHealth > 0,
		},
	}
	e.bots = append(e.bots, b)
	e.byID[p.ID] = b
	return nil
}

// Run executes the tick loop until one side is eliminated, both are
// eliminated in the same tick (draw), or the tick budget derived from
// MaxDuration elapses. On timeout the team with the greater total remaining
// health wins; an exact tie is a draw.
func (e *Engine) Run() (*Result, error) {
	if e.ran {
		return nil, ErrAlreadyRun
	}
	e.ran = true

	sort.Slice(e.bots, func(i, j int) bool { return e.bots[i].ID < e.bots[j].ID })
	e.spawn()

	dt := 1.0 / float64(e.cfg.FPS)
	maxTicks := int(math.Ceil(e.cfg.MaxDuration * float64(e.cfg.FPS)))
	if maxTicks < 1 {
		maxTicks = 1
	}

	e.logger.Debug("Battle starting",
		"bots", len(e.bots),
		"tickBudget", maxTicks,
		"fps", e.cfg.FPS)

	winner := -1
	for tick := 0; tick < maxTicks; tick++ {
		shots := e.step(tick, dt)
		e.frames = append(e.frames, e.snapshot(tick, shots))

		alive1, alive2 := e.aliveCounts()
		if alive1 == 0 && alive2 == 0 {
			winner = 0
			break
		}
		if alive2 == 0 {
			winner = 1
			break
		}
		if alive1 == 0 {
			winner = 2
			break
		}
	}

	if winner < 0 {
		winner = e.timeoutWinner()
		e.logger.Debug("Battle hit tick budget", "winner", winner)
	}

	res := e.buildResult(winner, dt)
	e.logger.Debug("Battle finished",
		"winner", res.WinnerTeam,
		"frames", res.TotalFrames,
		"duration", res.Duration)
	return res, nil
}

// spawn places team 1 along the left edge and team 2 along the right edge,
// evenly spaced vertically and facing each other. The seeded RNG is used
// only to separate bots that would otherwise occupy the same point.
func (e *Engine) spawn() {
	var team1, team2 []*bot
	for _, b := range e.bots {
		if b.Team == 1 {
			team1 = append(team1, b)
		} else {
			team2 = append(team2, b)
		}
	}

	place := func(team []*bot, x, heading float64) {
		for i, b := range team {
			y := e.cfg.Height * float64(i+1) / float64(len(team)+1)
			b.pos = geom.XY{X: x, Y: y}
			b.heading = heading
			b.turret = heading
		}
	}
	place(team1, 0.1*e.cfg.Width, 0)
	place(team2, 0.9*e.cfg.Width, math.Pi)

	// Degenerate arenas can still collapse spawn points together. Jitter
	// symmetrically so a bot clamped into a corner can move back out, and
	// bound the retries: sub-ulp arenas may not have enough distinct
	// positions, and an overlap is survivable (the behavior code sidesteps
	// coincident bots).
	seen := map[geom.XY]bool{}
	for _, b := range e.bots {
		for attempt := 0; seen[b.pos] && attempt < 32; attempt++ {
			b.pos = geom.XY{
				X: util.Clamp(b.pos.X+e.rng.Float64()-0.5, 0, e.cfg.Width),
				Y: util.Clamp(b.pos.Y+e.rng.Float64()-0.5, 0, e.cfg.Height),
			}
		}
		seen[b.pos] = true
	}
}

// step advances every live bot by one tick in ascending id order and
// returns the shots resolved during the tick.
func (e *Engine) step(tick int, dt float64) []ShotFrame {
	var shots []ShotFrame
	for _, b := range e.bots {
		if !b.alive {
			continue
		}
		if b.cooldown > 0 {
			b.cooldown--
		}

		target := e.selectTarget(b)

		// Healers with nothing to heal hold position but keep the hull
		// pointed at the nearest threat.
		navTarget := target
		if navTarget == nil && b.IsHealer() {
			navTarget = e.closestEnemy(b)
		}

		dir, move := desiredMove(b, target)
		if move {
			b.heading = util.StepAngle(b.heading, math.Atan2(dir.Y, dir.X), b.RotationSpeed*dt)
		} else if navTarget != nil {
			aim := navTarget.pos.Sub(b.pos)
			b.heading = util.StepAngle(b.heading, math.Atan2(aim.Y, aim.X), b.RotationSpeed*dt)
		}
		if target != nil {
			aim := target.pos.Sub(b.pos)
			b.turret = util.StepAngle(b.turret, math.Atan2(aim.Y, aim.X), b.TurretRotationSpeed*dt)
		}

		if shot, ok := e.resolveFire(b, target); ok {
			shots = append(shots, shot)
		}

		if move {
			step := b.Speed * dt
			if b.Agility > 0 {
				step *= 1 + b.Agility/100
			}
			b.pos = geom.XY{
				X: util.Clamp(b.pos.X+math.Cos(b.heading)*step, 0, e.cfg.Width),
				Y: util.Clamp(b.pos.Y+math.Sin(b.heading)*step, 0, e.cfg.Height),
			}
		}
	}
	return shots
}

// resolveFire fires b's weapon at target when the cooldown has elapsed and
// the target sits inside the weapon's range band. Damage (or healing, for
// negative damage-per-shot) applies immediately; there is no projectile
// travel time in the simulation, only in the rendered tracer.
func (e *Engine) resolveFire(b *bot, target *bot) (ShotFrame, bool) {
	if target == nil || b.cooldown > 0 {
		return ShotFrame{}, false
	}
	interval := b.fireInterval(e.cfg.FPS)
	if interval == 0 {
		return ShotFrame{}, false
	}
	dist := b.distanceTo(target)
	if dist < b.MinRange || dist > b.MaxRange {
		return ShotFrame{}, false
	}

	b.cooldown = interval
	b.stats.ShotsFired++

	if b.IsHealer() {
		amount := -b.DamagePerShot
		applied := math.Min(amount, target.MaxHealth-target.health)
		target.health += applied
		b.stats.HealingDone += applied
	} else {
		applied := math.Min(b.DamagePerShot, target.health)
		target.health -= b.DamagePerShot
		b.stats.DamageDealt += applied
		target.stats.DamageTaken += applied
		if target.health <= 0 {
			target.health = 0
			target.alive = false
			target.stats.Alive = false
			b.stats.Kills++
			e.logger.Debug("Bot destroyed",
				"victim", target.ID,
				"attacker", b.ID)
		}
	}

	muzzle := b.pos.Add(geom.XY{
		X: math.Cos(b.turret) * b.MuzzleOffset,
		Y: math.Sin(b.turret) * b.MuzzleOffset,
	})
	return ShotFrame{
		AttackerID: b.ID,
		TargetID:   target.ID,
		Path:       shotPath(muzzle, target.pos),
		Projectile: b.Projectile,
		Healing:    b.IsHealer(),
	}, true
}

// snapshot records every bot's state for the tick. Bots appear in
// ascending id order.
func (e *Engine) snapshot(tick int, shots []ShotFrame) Frame {
	f := Frame{
		Index: tick,
		Bots:  make([]BotFrame, 0, len(e.bots)),
		Shots: shots,
	}
	for _, b := range e.bots {
		f.Bots = append(f.Bots, BotFrame{
			ID:            b.ID,
			Pos:           b.pos,
			Heading:       b.heading,
			TurretHeading: b.turret,
			Health:        b.health,
			Alive:         b.alive,
		})
	}
	return f
}

func (e *Engine) aliveCounts() (team1, team2 int) {
	for _, b := range e.bots {
		if !b.alive {
			continue
		}
		if b.Team == 1 {
			team1++
		} else {
			team2++
		}
	}
	return team1, team2
}

// timeoutWinner resolves a battle that hit the tick budget with live bots
// on both sides: the team with more total remaining health wins, an exact
// tie is a draw. Health is summed in bot-id order so the comparison is
// reproducible.
func (e *Engine) timeoutWinner() int {
	var h1, h2 float64
	for _, b := range e.bots {
		if !b.alive {
			continue
		}
		if b.Team == 1 {
			h1 += b.health
		} else {
			h2 += b.health
		}
	}
	switch {
	case h1 > h2:
		return 1
	case h2 > h1:
		return 2
	default:
		return 0
	}
}

func (e *Engine) buildResult(winner int, dt float64) *Result {
	res := &Result{
		WinnerTeam:     winner,
		TotalFrames:    len(e.frames),
		Duration:       float64(len(e.frames)) * dt,
		Team1Survivors: []int{},
		Team2Survivors: []int{},
		BotStats:       make(map[int]*BotStats, len(e.bots)),
		Frames:         e.frames,
	}
	for _, b := range e.bots {
		stats := b.stats
		res.BotStats[b.ID] = &stats
		res.Roster = append(res.Roster, RosterEntry{
			ID:         b.ID,
			Name:       b.Name,
			Team:       b.Team,
			Chassis:    b.Chassis,
			Plating:    b.Plating,
			Component:  b.Component,
			MaxHealth:  b.MaxHealth,
			Projectile: b.Projectile,
		})
		if !b.alive {
			continue
		}
		if b.Team == 1 {
			res.Team1Survivors = append(res.Team1Survivors, b.ID)
		} else {
			res.Team2Survivors = append(res.Team2Survivors, b.ID)
		}
	}
	return res
}
