package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gunner builds a plain combat bot with sane stats; tests override fields
// as needed.
func gunner(id, team int) BotParams {
	return BotParams{
		ID:                  id,
		Name:                "bot",
		Team:                team,
		Chassis:             "standard",
		MaxHealth:           100,
		Speed:               40,
		RotationSpeed:       6,
		TurretRotationSpeed: 10,
		Intelligence:        100,
		DamagePerShot:       10,
		ShotsPerMinute:      120,
		MinRange:            0,
		MaxRange:            2000,
		Behavior:            BehaviorAggressive,
		Priority:            PriorityClosest,
		Projectile:          "bullet",
		MuzzleOffset:        10,
	}
}

func testConfig() Config {
	return Config{Width: 400, Height: 200, FPS: 30, MaxDuration: 30, Seed: 1}
}

func TestRun_UncontestedBattle(t *testing.T) {
	e := New(testConfig(), nil)
	require.NoError(t, e.AddBot(gunner(1, 1)))

	res, err := e.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, res.WinnerTeam)
	assert.Equal(t, 1, res.TotalFrames, "no opposing fire possible, should settle in one tick")
	assert.Equal(t, []int{1}, res.Team1Survivors)
	assert.Empty(t, res.Team2Survivors)
}

func TestRun_NoBotsIsADraw(t *testing.T) {
	e := New(testConfig(), nil)
	res, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, res.WinnerTeam)
}

func TestRun_StrongerBotWins(t *testing.T) {
	e := New(testConfig(), nil)
	strong := gunner(1, 1)
	strong.DamagePerShot = 50
	weak := gunner(2, 2)
	weak.DamagePerShot = 1
	require.NoError(t, e.AddBot(strong))
	require.NoError(t, e.AddBot(weak))

	res, err := e.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, res.WinnerTeam)
	assert.Equal(t, []int{1}, res.Team1Survivors)
	assert.Empty(t, res.Team2Survivors)
	assert.Equal(t, 1, res.BotStats[1].Kills)
	assert.False(t, res.BotStats[2].Alive)
	assert.Equal(t, 100.0, res.BotStats[2].DamageTaken)
}

func TestRun_TickBudgetBound(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDuration = 2.5
	e := New(cfg, nil)

	// Two pacifists: nothing ever dies, the loop must still terminate.
	pacifist := gunner(1, 1)
	pacifist.ShotsPerMinute = 0
	other := pacifist
	other.ID = 2
	other.Team = 2
	require.NoError(t, e.AddBot(pacifist))
	require.NoError(t, e.AddBot(other))

	res, err := e.Run()
	require.NoError(t, err)

	// ceil(2.5 * 30) = 75
	assert.Equal(t, 75, res.TotalFrames)
	assert.InDelta(t, 2.5, res.Duration, 1e-9)
}

func TestRun_TimeoutWinnerByRemainingHealth(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDuration = 1
	e := New(cfg, nil)

	// Both immobile and out of range; team 2 fields more total health.
	small := gunner(1, 1)
	small.Speed = 0
	small.MaxRange = 10
	small.MaxHealth = 50
	big := gunner(2, 2)
	big.Speed = 0
	big.MaxRange = 10
	big.MaxHealth = 200
	require.NoError(t, e.AddBot(small))
	require.NoError(t, e.AddBot(big))

	res, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, res.WinnerTeam)
	assert.Equal(t, []int{1}, res.Team1Survivors, "timeout keeps both sides' survivors")
	assert.Equal(t, []int{2}, res.Team2Survivors)
}

func TestRun_TimeoutEqualHealthIsADraw(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDuration = 1
	e := New(cfg, nil)

	a := gunner(1, 1)
	a.Speed = 0
	a.MaxRange = 10
	b := gunner(2, 2)
	b.Speed = 0
	b.MaxRange = 10
	require.NoError(t, e.AddBot(a))
	require.NoError(t, e.AddBot(b))

	res, err := e.Run()
	require.NoError(t, err)
	assert.Equal(t, 0, res.WinnerTeam)
}

func TestRun_HealthMonotonicWithoutHealers(t *testing.T) {
	e := New(testConfig(), nil)
	require.NoError(t, e.AddBot(gunner(1, 1)))
	require.NoError(t, e.AddBot(gunner(2, 2)))

	res, err := e.Run()
	require.NoError(t, err)

	last := map[int]float64{}
	for _, f := range res.Frames {
		for _, bf := range f.Bots {
			assert.LessOrEqual(t, bf.Health, 100.0, "health must never exceed max")
			assert.GreaterOrEqual(t, bf.Health, 0.0)
			if prev, ok := last[bf.ID]; ok {
				assert.LessOrEqual(t, bf.Health, prev, "health must be non-increasing without healers")
			}
			last[bf.ID] = bf.Health
		}
	}
}

func TestRun_HealerNeverOverheals(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDuration = 10
	e := New(cfg, nil)

	tank := gunner(1, 1)
	tank.MaxHealth = 150
	tank.DamagePerShot = 2
	healer := gunner(3, 1)
	healer.DamagePerShot = -20
	// Heal slower than the incoming damage so the tank's health visibly
	// dips and recovers across frames.
	healer.ShotsPerMinute = 30
	enemy := gunner(2, 2)
	enemy.DamagePerShot = 5
	require.NoError(t, e.AddBot(tank))
	require.NoError(t, e.AddBot(healer))
	require.NoError(t, e.AddBot(enemy))

	res, err := e.Run()
	require.NoError(t, err)

	healed := false
	var prev map[int]float64
	for _, f := range res.Frames {
		cur := map[int]float64{}
		for _, bf := range f.Bots {
			cur[bf.ID] = bf.Health
			if bf.ID == 1 {
				assert.LessOrEqual(t, bf.Health, 150.0, "healer must not raise ally above max health")
			}
		}
		if prev != nil && cur[1] > prev[1] {
			healed = true
		}
		prev = cur
	}
	assert.True(t, healed, "healer should have healed the tank at least once")
	assert.Greater(t, res.BotStats[3].HealingDone, 0.0)
}

func TestRun_Deterministic(t *testing.T) {
	build := func() *Engine {
		e := New(Config{Width: 1000, Height: 1000, FPS: 30, MaxDuration: 20, Seed: 7}, nil)
		a := gunner(1, 1)
		a.Behavior = BehaviorAggressive
		b := gunner(2, 1)
		b.Behavior = BehaviorTactical
		b.MinRange = 50
		b.MaxRange = 300
		c := gunner(3, 2)
		c.Behavior = BehaviorDefensive
		c.MaxRange = 250
		d := gunner(4, 2)
		d.Behavior = BehaviorTactical
		d.MinRange = 40
		d.MaxRange = 350
		for _, p := range []BotParams{a, b, c, d} {
			if err := e.AddBot(p); err != nil {
				t.Fatal(err)
			}
		}
		return e
	}

	res1, err := build().Run()
	require.NoError(t, err)
	res2, err := build().Run()
	require.NoError(t, err)

	assert.Equal(t, res1.WinnerTeam, res2.WinnerTeam)
	assert.Equal(t, res1.TotalFrames, res2.TotalFrames)
	assert.Equal(t, res1.Frames, res2.Frames, "identical input must replay identically")
}

func TestRun_MinRangeBlocksFire(t *testing.T) {
	cfg := testConfig()
	cfg.MaxDuration = 1
	e := New(cfg, nil)

	// Spawn distance on the 400-wide arena is 320; min range beyond that
	// and zero speed means nobody can ever fire.
	a := gunner(1, 1)
	a.Speed = 0
	a.MinRange = 500
	a.MaxRange = 600
	b := gunner(2, 2)
	b.Speed = 0
	b.MinRange = 500
	b.MaxRange = 600
	require.NoError(t, e.AddBot(a))
	require.NoError(t, e.AddBot(b))

	res, err := e.Run()
	require.NoError(t, err)
	assert.Zero(t, res.BotStats[1].ShotsFired)
	assert.Zero(t, res.BotStats[2].ShotsFired)
}

func TestAddBot_Validation(t *testing.T) {
	e := New(testConfig(), nil)

	bad := gunner(1, 3)
	assert.Error(t, e.AddBot(bad), "team outside 1..2 is rejected")

	require.NoError(t, e.AddBot(gunner(1, 1)))
	assert.Error(t, e.AddBot(gunner(1, 2)), "duplicate id is rejected")
}

func TestAddBot_ClampsMalformedStats(t *testing.T) {
	e := New(testConfig(), nil)
	p := gunner(1, 1)
	p.MaxHealth = -50
	p.Speed = -10
	p.MinRange = 300
	p.MaxRange = 100
	require.NoError(t, e.AddBot(p))

	b := e.byID[1]
	assert.Equal(t, 0.0, b.MaxHealth)
	assert.False(t, b.alive, "zero max health spawns destroyed")
	assert.Equal(t, 0.0, b.Speed)
	assert.Equal(t, 300.0, b.MaxRange, "max range is raised to min range")
}

func TestRun_SubUlpArenaSpawnTerminates(t *testing.T) {
	// On an arena one denormal wide, the spawn rows round onto at most two
	// distinct points per axis, so collisions clamp bots into the corners.
	// Spawning must still terminate even when every free corner is taken.
	cfg := Config{
		Width:       math.SmallestNonzeroFloat64,
		Height:      math.SmallestNonzeroFloat64,
		FPS:         30,
		MaxDuration: 0.1,
		Seed:        1,
	}
	e := New(cfg, nil)
	for id := 1; id <= 4; id++ {
		require.NoError(t, e.AddBot(gunner(id, 1)))
	}
	require.NoError(t, e.AddBot(gunner(5, 2)))

	res, err := e.Run()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.TotalFrames, 1)
	for _, bf := range res.Frames[0].Bots {
		assert.LessOrEqual(t, bf.Pos.X, cfg.Width)
		assert.GreaterOrEqual(t, bf.Pos.X, 0.0)
		assert.LessOrEqual(t, bf.Pos.Y, cfg.Height)
		assert.GreaterOrEqual(t, bf.Pos.Y, 0.0)
	}
}

func TestRun_Twice(t *testing.T) {
	e := New(testConfig(), nil)
	require.NoError(t, e.AddBot(gunner(1, 1)))
	_, err := e.Run()
	require.NoError(t, err)

	_, err = e.Run()
	assert.ErrorIs(t, err, ErrAlreadyRun)
}

func TestMostDamagedAlly(t *testing.T) {
	e := New(testConfig(), nil)
	healer := gunner(1, 1)
	healer.DamagePerShot = -10
	require.NoError(t, e.AddBot(healer))
	require.NoError(t, e.AddBot(gunner(2, 1)))
	require.NoError(t, e.AddBot(gunner(3, 1)))
	require.NoError(t, e.AddBot(gunner(4, 2)))

	e.byID[2].health = 60
	e.byID[3].health = 30

	picked := e.mostDamagedAlly(e.byID[1])
	require.NotNil(t, picked)
	assert.Equal(t, 3, picked.ID)

	// Full-health team leaves a healer with nothing to do.
	e.byID[2].health = 100
	e.byID[3].health = 100
	assert.Nil(t, e.mostDamagedAlly(e.byID[1]))
}
