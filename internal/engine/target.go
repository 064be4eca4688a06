package engine

// selectTarget picks the bot b should engage this tick, honoring the
// retarget interval derived from intelligence. Returns nil when nothing
// qualifies.
//
// Combat bots pick the closest live enemy, ties broken by ascending bot id
// so that identical inputs replay identically. Healers pick the most
// damaged live ally instead (greatest missing health, same tie-break) and
// go idle when the whole team is at full health.
func (e *Engine) selectTarget(b *bot) *bot {
	// Dumber bots stay locked on longer. Interval is in ticks.
	if b.target != noTarget && b.ticksOnTarget < b.retargetInterval() {
		if cur, ok := e.byID[b.target]; ok && cur.alive && e.stillValidTarget(b, cur) {
			b.ticksOnTarget++
			return cur
		}
	}

	var picked *bot
	if b.IsHealer() {
		picked = e.mostDamagedAlly(b)
	} else {
		picked = e.closestEnemy(b)
	}

	if picked == nil {
		b.target = noTarget
		b.ticksOnTarget = 0
		return nil
	}
	if picked.ID != b.target {
		b.target = picked.ID
		b.ticksOnTarget = 0
	}
	b.ticksOnTarget++
	return picked
}

// retargetInterval maps intelligence to how often a bot re-evaluates its
// target: every tick at 100+, every 10 ticks at 0.
func (b *bot) retargetInterval() int {
	interval := 10 - int(b.Intelligence)/10
	if interval < 1 {
		interval = 1
	}
	return interval
}

// stillValidTarget reports whether a locked target still makes sense for b:
// healers drop allies that returned to full health, combat bots keep any
// live enemy.
func (e *Engine) stillValidTarget(b, t *bot) bool {
	if b.IsHealer() {
		return t.Team == b.Team && t.ID != b.ID && t.health < t.MaxHealth
	}
	return t.Team != b.Team
}

// closestEnemy returns the nearest live enemy, ties by ascending id.
// e.bots is sorted by id, so a strict less keeps the lowest id on ties.
func (e *Engine) closestEnemy(b *bot) *bot {
	var best *bot
	bestDist := 0.0
	for _, o := range e.bots {
		if !o.alive || o.Team == b.Team {
			continue
		}
		d := b.distanceTo(o)
		if best == nil || d < bestDist {
			best = o
			bestDist = d
		}
	}
	return best
}

// mostDamagedAlly returns the live teammate missing the most health,
// excluding the healer itself. Ties go to the lowest id.
func (e *Engine) mostDamagedAlly(b *bot) *bot {
	var best *bot
	bestMissing := 0.0
	for _, o := range e.bots {
		if !o.alive || o.Team != b.Team || o.ID == b.ID {
			continue
		}
		missing := o.MaxHealth - o.health
		if missing <= 0 {
			continue
		}
		if best == nil || missing > bestMissing {
			best = o
			bestMissing = missing
		}
	}
	return best
}
