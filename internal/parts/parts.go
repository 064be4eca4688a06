// Package parts holds the static chassis/plating/weapon definitions.
//
// The registry only feeds rendering metadata (sprite shapes, display names)
// and the shielding values summed into a bot's max health. It is pure data:
// lookups never fail, unknown names resolve to a placeholder definition so a
// battle with unrecognized part names still simulates and renders.
package parts

import "strings"

// SpriteShape selects the procedural sprite drawn for a chassis.
type SpriteShape string

const (
	SpriteBox     SpriteShape = "box"
	SpriteWedge   SpriteShape = "wedge"
	SpriteDome    SpriteShape = "dome"
	SpriteTracked SpriteShape = "tracked"
	SpriteUnknown SpriteShape = "unknown"
)

// Chassis is a hull definition.
type Chassis struct {
	Name        string
	DisplayName string
	Shielding   float64
	Sprite      SpriteShape
	Radius      float64 // draw radius in arena units
}

// Plating is an armor definition; its shielding adds to max health.
type Plating struct {
	Name        string
	DisplayName string
	Shielding   float64
}

// Weapon is a weapon definition; only render metadata lives here, the
// combat numbers travel in the battle request.
type Weapon struct {
	Name         string
	DisplayName  string
	Projectile   string
	MuzzleOffset float64 // distance from hull center in arena units
}

// Registry is a static lookup of part definitions.
type Registry struct {
	chassis map[string]Chassis
	plating map[string]Plating
	weapons map[string]Weapon
}

// placeholderChassis is returned for unknown chassis names.
var placeholderChassis = Chassis{
	Name:        "unknown",
	DisplayName: "Unknown Chassis",
	Shielding:   0,
	Sprite:      SpriteUnknown,
	Radius:      12,
}

// placeholderPlating is returned for unknown plating names.
var placeholderPlating = Plating{
	Name:        "unknown",
	DisplayName: "Unknown Plating",
	Shielding:   0,
}

// placeholderWeapon is returned for unknown weapon names.
var placeholderWeapon = Weapon{
	Name:         "unknown",
	DisplayName:  "Unknown Weapon",
	Projectile:   "bullet",
	MuzzleOffset: 10,
}

// ChassisByName looks up a chassis definition, falling back to the
// placeholder for unknown names.
func (r *Registry) ChassisByName(name string) Chassis {
	if c, ok := r.chassis[normalize(name)]; ok {
		return c
	}
	return placeholderChassis
}

// PlatingByName looks up a plating definition, falling back to the
// placeholder for unknown names.
func (r *Registry) PlatingByName(name string) Plating {
	if p, ok := r.plating[normalize(name)]; ok {
		return p
	}
	return placeholderPlating
}

// WeaponByName looks up a weapon definition, falling back to the
// placeholder for unknown names.
func (r *Registry) WeaponByName(name string) Weapon {
	if w, ok := r.weapons[normalize(name)]; ok {
		return w
	}
	return placeholderWeapon
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// DefaultRegistry returns the built-in part set.
func DefaultRegistry() *Registry {
	r := &Registry{
		chassis: map[string]Chassis{},
		plating: map[string]Plating{},
		weapons: map[string]Weapon{},
	}

	for _, c := range []Chassis{
		{Name: "scout", DisplayName: "Scout Frame", Shielding: 40, Sprite: SpriteWedge, Radius: 10},
		{Name: "standard", DisplayName: "Standard Frame", Shielding: 80, Sprite: SpriteBox, Radius: 12},
		{Name: "heavy", DisplayName: "Heavy Frame", Shielding: 140, Sprite: SpriteTracked, Radius: 16},
		{Name: "support", DisplayName: "Support Frame", Shielding: 60, Sprite: SpriteDome, Radius: 12},
	} {
		r.chassis[c.Name] = c
	}

	for _, p := range []Plating{
		{Name: "none", DisplayName: "No Plating", Shielding: 0},
		{Name: "light", DisplayName: "Light Plating", Shielding: 20},
		{Name: "composite", DisplayName: "Composite Plating", Shielding: 50},
		{Name: "reactive", DisplayName: "Reactive Plating", Shielding: 80},
	} {
		r.plating[p.Name] = p
	}

	for _, w := range []Weapon{
		{Name: "autocannon", DisplayName: "Autocannon", Projectile: "bullet", MuzzleOffset: 14},
		{Name: "laser", DisplayName: "Laser Array", Projectile: "beam", MuzzleOffset: 12},
		{Name: "missile_rack", DisplayName: "Missile Rack", Projectile: "missile", MuzzleOffset: 16},
		{Name: "repair_beam", DisplayName: "Repair Beam", Projectile: "beam", MuzzleOffset: 12},
	} {
		r.weapons[w.Name] = w
	}

	return r
}
