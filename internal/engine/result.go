package engine

// BotStats accumulates one bot's combat statistics over a battle.
type BotStats struct {
	Name        string  `json:"name"`
	Team        int     `json:"team"`
	DamageDealt float64 `json:"damage_dealt"`
	DamageTaken float64 `json:"damage_taken"`
	HealingDone float64 `json:"healing_done"`
	ShotsFired  int     `json:"shots_fired"`
	Kills       int     `json:"kills"`
	Alive       bool    `json:"alive"`
}

// RosterEntry describes one registered bot for consumers of the frame
// history. The renderer uses it to pick sprites and scale health bars.
type RosterEntry struct {
	ID         int
	Name       string
	Team       int
	Chassis    string
	Plating    string
	Component  string
	MaxHealth  float64
	Projectile string
}

// Result is the terminal battle summary plus the full frame history. The
// runner strips Frames before serializing the outward payload; only the
// renderer consumes them.
type Result struct {
	// WinnerTeam is 1 or 2, or 0 for a draw.
	WinnerTeam     int
	TotalFrames    int
	Duration       float64 // simulated seconds
	Team1Survivors []int
	Team2Survivors []int
	BotStats       map[int]*BotStats
	Roster         []RosterEntry // ascending bot id
	Frames         []Frame
}
