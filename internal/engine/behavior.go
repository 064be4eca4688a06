package engine

import "github.com/peterstace/simplefeatures/geom"

// desiredMove translates a bot's behavior into a world-space movement
// direction for this tick. move is false when the policy is to hold
// position. dir is a unit vector when move is true.
//
// The range geometry is intentionally simple and fully deterministic:
//
//   - aggressive closes to just outside min range and parks there;
//   - defensive opens distance while inside 90% of max range and only
//     advances when the target slips out of weapon range entirely;
//   - tactical holds the middle of the [min,max] range band and orbits
//     the target while inside it, orbit direction fixed by bot id parity
//     so two tactical bots don't mirror each other indefinitely.
func desiredMove(b *bot, target *bot) (dir geom.XY, move bool) {
	if target == nil {
		return geom.XY{}, false
	}

	toTarget := target.pos.Sub(b.pos)
	dist := toTarget.Length()
	if dist == 0 {
		// Overlapping spawn guard; sidestep along +X.
		return geom.XY{X: 1, Y: 0}, true
	}
	forward := toTarget.Scale(1 / dist)
	away := forward.Scale(-1)

	switch b.Behavior {
	case BehaviorAggressive:
		stop := b.MinRange + 0.1*(b.MaxRange-b.MinRange)
		if dist < b.MinRange {
			return away, true
		}
		if dist > stop {
			return forward, true
		}
		return geom.XY{}, false

	case BehaviorDefensive:
		if dist > b.MaxRange {
			return forward, true
		}
		if dist < 0.9*b.MaxRange {
			return away, true
		}
		return geom.XY{}, false

	default: // BehaviorTactical
		if dist > b.MaxRange {
			return forward, true
		}
		if dist < b.MinRange {
			return away, true
		}
		// Inside the band: drift toward the band midpoint while orbiting.
		mid := (b.MinRange + b.MaxRange) / 2
		orbit := geom.XY{X: -forward.Y, Y: forward.X}
		if b.ID%2 == 1 {
			orbit = orbit.Scale(-1)
		}
		radial := geom.XY{}
		if dist > mid {
			radial = forward
		} else if dist < mid {
			radial = away
		}
		d := orbit.Scale(2).Add(radial)
		return d.Scale(1 / d.Length()), true
	}
}
