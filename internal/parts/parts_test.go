package parts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChassisByName(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name       string
		lookup     string
		wantName   string
		wantShield float64
	}{
		{"known chassis", "heavy", "heavy", 140},
		{"case insensitive", "HEAVY", "heavy", 140},
		{"surrounding space", " scout ", "scout", 40},
		{"unknown falls back to placeholder", "hoverboard", "unknown", 0},
		{"empty name", "", "unknown", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := r.ChassisByName(tt.lookup)
			assert.Equal(t, tt.wantName, c.Name)
			assert.Equal(t, tt.wantShield, c.Shielding)
		})
	}
}

func TestPlatingByName(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, 50.0, r.PlatingByName("composite").Shielding)
	assert.Equal(t, "unknown", r.PlatingByName("cardboard").Name)
	assert.Equal(t, 0.0, r.PlatingByName("cardboard").Shielding)
}

func TestWeaponByName(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, "missile", r.WeaponByName("missile_rack").Projectile)

	w := r.WeaponByName("trebuchet")
	assert.Equal(t, "unknown", w.Name)
	assert.NotZero(t, w.MuzzleOffset, "placeholder weapon still renders a muzzle")
}

func TestPlaceholderSpriteIsUnknown(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, SpriteUnknown, r.ChassisByName("nope").Sprite)
}
