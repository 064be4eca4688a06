// Package request parses the external battle request JSON.
//
// The request arrives from an untrusted caller, so everything here is
// tolerant: missing fields take documented defaults, malformed nested
// blocks collapse to their zero values, and unknown fields are ignored.
// All defaulting happens exactly once, in Normalize — the engine receives
// fully-populated immutable BotParams and never touches raw JSON.
package request

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/botarena/battlesim/internal/engine"
	"github.com/botarena/battlesim/internal/parts"
	"github.com/botarena/battlesim/internal/util"
)

// maxNameLen caps display names drawn onto the render canvas.
const maxNameLen = 24

// Request is the top-level battle request.
type Request struct {
	Config ConfigSpec `json:"config"`
	Team1  []BotSpec  `json:"team1"`
	Team2  []BotSpec  `json:"team2"`
}

// ConfigSpec is the request's config block. Pointer fields distinguish
// "omitted" from "explicit zero"; the runner fills omissions from the
// configured defaults.
type ConfigSpec struct {
	ArenaWidth  *float64 `json:"arena_width"`
	ArenaHeight *float64 `json:"arena_height"`
	FPS         *int     `json:"fps"`
	MaxDuration *float64 `json:"max_duration"`
	Scale       *float64 `json:"scale"`
	Team1Color  string   `json:"team1_color"`
	Team2Color  string   `json:"team2_color"`
	Campaign    string   `json:"campaign"`
	Mission     string   `json:"mission"`
	Seed        *int64   `json:"seed"`
}

// PartSpec is a chassis or plating block. Callers sometimes send a bare
// string instead of an object; both shapes are accepted and anything else
// collapses to the zero value.
type PartSpec struct {
	Name      string   `json:"name"`
	Shielding *float64 `json:"shielding"`
}

// UnmarshalJSON accepts an object, a bare name string, or garbage (which
// yields the zero value).
func (p *PartSpec) UnmarshalJSON(data []byte) error {
	type plain PartSpec
	var obj plain
	if err := json.Unmarshal(data, &obj); err == nil {
		*p = PartSpec(obj)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*p = PartSpec{Name: name}
		return nil
	}
	*p = PartSpec{}
	return nil
}

// WeaponSpec is the component block carrying the weapon's combat numbers.
type WeaponSpec struct {
	Name           string   `json:"name"`
	DamagePerShot  *float64 `json:"damage_per_shot"`
	ShotsPerMinute *float64 `json:"shots_per_minute"`
	MinRange       *float64 `json:"min_range"`
	MaxRange       *float64 `json:"max_range"`
	ProjectileType string   `json:"projectile_type"`
	MuzzleOffset   *float64 `json:"muzzle_offset"`
}

// UnmarshalJSON mirrors PartSpec's tolerance for non-object shapes.
func (w *WeaponSpec) UnmarshalJSON(data []byte) error {
	type plain WeaponSpec
	var obj plain
	if err := json.Unmarshal(data, &obj); err == nil {
		*w = WeaponSpec(obj)
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*w = WeaponSpec{Name: name}
		return nil
	}
	*w = WeaponSpec{}
	return nil
}

// BotSpec is one combatant's block within a team list.
type BotSpec struct {
	Name                string     `json:"name"`
	Chassis             PartSpec   `json:"chassis"`
	Plating             PartSpec   `json:"plating"`
	Component           WeaponSpec `json:"component"`
	Speed               *float64   `json:"speed"`
	RotationSpeed       *float64   `json:"rotation_speed"`
	TurretRotationSpeed *float64   `json:"turret_rotation_speed"`
	Intelligence        *float64   `json:"intelligence"`
	Agility             *float64   `json:"agility"`
	MovementStance      string     `json:"movement_stance"`
	TargetPriority      string     `json:"target_priority"`
}

// ParseFile reads and decodes a battle request. Read failures and JSON
// decode failures stay distinguishable through the wrapped error text.
func ParseFile(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input file %s: %w", path, err)
	}
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing input JSON: %w", err)
	}
	return &req, nil
}

// Normalize converts one bot spec into engine params. id and team are
// assigned by the caller; every default is applied here and nowhere else.
//
// Max health is the sum of chassis and plating shielding. Shielding comes
// from the request when present, otherwise from the registry definition of
// the named part, otherwise zero.
func (s BotSpec) Normalize(reg *parts.Registry, team, id int) engine.BotParams {
	chassisDef := reg.ChassisByName(s.Chassis.Name)
	platingDef := reg.PlatingByName(s.Plating.Name)
	weaponDef := reg.WeaponByName(s.Component.Name)

	name := util.SanitizeName(s.Name, maxNameLen)
	if name == "" {
		name = fmt.Sprintf("Bot %d", id)
	}

	projectile := s.Component.ProjectileType
	if projectile == "" {
		projectile = weaponDef.Projectile
	}

	return engine.BotParams{
		ID:        id,
		Name:      name,
		Team:      team,
		Chassis:   chassisDef.Name,
		Plating:   platingDef.Name,
		Component: weaponDef.Name,

		MaxHealth: orDefault(s.Chassis.Shielding, chassisDef.Shielding) +
			orDefault(s.Plating.Shielding, platingDef.Shielding),
		Speed:               orDefault(s.Speed, 0),
		RotationSpeed:       orDefault(s.RotationSpeed, 0),
		TurretRotationSpeed: orDefault(s.TurretRotationSpeed, 0),
		Intelligence:        orDefault(s.Intelligence, 0),
		DamagePerShot:       orDefault(s.Component.DamagePerShot, 0),
		ShotsPerMinute:      orDefault(s.Component.ShotsPerMinute, 0),
		MinRange:            orDefault(s.Component.MinRange, 0),
		MaxRange:            orDefault(s.Component.MaxRange, 0),
		Agility:             orDefault(s.Agility, 0),

		Behavior: engine.ParseBehavior(s.MovementStance),
		Priority: engine.ParseTargetPriority(s.TargetPriority),

		Projectile:   projectile,
		MuzzleOffset: orDefault(s.Component.MuzzleOffset, weaponDef.MuzzleOffset),
	}
}

// Bots normalizes both team lists, assigning ids in request order:
// team 1 first, then team 2.
func (r *Request) Bots(reg *parts.Registry) []engine.BotParams {
	out := make([]engine.BotParams, 0, len(r.Team1)+len(r.Team2))
	id := 1
	for _, s := range r.Team1 {
		out = append(out, s.Normalize(reg, 1, id))
		id++
	}
	for _, s := range r.Team2 {
		out = append(out, s.Normalize(reg, 2, id))
		id++
	}
	return out
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
