package game

import (
	"math/rand"
	"time"
)

// Playfield constants. Goals sit on the top and bottom edges.
const (
	Width  = 400.0
	Height = 700.0

	PaddleRadius = 15.0
	BallRadius   = 12.0
	BaseSpeed    = 7.0

	// Depth of the goal line measured from each horizontal edge.
	GoalDepth = 20.0
	// The goal mouth can never be narrowed below this half-width.
	GoalWidthMin = 60.0
	// Mouth half-width ratio when no narrowing effect is active.
	DefaultGoalRatio = 0.5

	TickRate    = 60
	ServeJitter = 0.4 // radians
)

var TickInterval = time.Second / TickRate

type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// goalEffect narrows one side's goal mouth until Expiry. Zero value = none.
type goalEffect struct {
	Ratio  float64
	Expiry time.Time
}

func (e goalEffect) active(now time.Time) bool {
	return !e.Expiry.IsZero() && now.Before(e.Expiry)
}

// MatchState holds everything that changes during a match. It is owned by the
// room's runner goroutine; nothing mutates it from outside the run loop.
type MatchState struct {
	Ball    Vec
	Vel     Vec
	Paddles [2]Vec
	Scores  [2]int

	// Per side: armed skill (triggers on next collision), at most one active
	// skill, cooldown bookkeeping and the timed goal-narrowing record.
	Selected [2]int
	Active   [2]int

	loadouts   [2][]SkillDefinition
	lastUsed   [2]map[int]time.Time
	goalEffect [2]goalEffect

	rng *rand.Rand
}

func NewMatchState(top, bottom []SkillDefinition, rng *rand.Rand) *MatchState {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := &MatchState{
		Ball: Vec{X: Width / 2, Y: Height / 2},
		Paddles: [2]Vec{
			{X: Width / 2, Y: 30},
			{X: Width / 2, Y: Height - 30},
		},
		rng: rng,
	}
	m.loadouts[SideTop] = top
	m.loadouts[SideBottom] = bottom
	m.lastUsed[SideTop] = make(map[int]time.Time)
	m.lastUsed[SideBottom] = make(map[int]time.Time)
	return m
}

func (m *MatchState) skillDef(side Side, skillID int) (SkillDefinition, bool) {
	for _, def := range m.loadouts[side] {
		if def.ID == skillID {
			return def, true
		}
	}
	return SkillDefinition{}, false
}

// sideSnapshot mirrors the per-side block of the state broadcast.
type sideSnapshot struct {
	Active    int               `json:"active"`
	Selected  int               `json:"selected"`
	Available []SkillDefinition `json:"available"`
	Cooldowns map[int]float64   `json:"cooldowns"`
	GoalRatio float64           `json:"goal_ratio"`
}

// Snapshot builds the full-state payload broadcast after every tick.
func (m *MatchState) Snapshot(now time.Time) map[string]any {
	return map[string]any{
		"ball": m.Ball,
		"velocity": m.Vel,
		"paddles": map[string]Vec{
			"top":    m.Paddles[SideTop],
			"bottom": m.Paddles[SideBottom],
		},
		"scores": map[string]int{
			"top":    m.Scores[SideTop],
			"bottom": m.Scores[SideBottom],
		},
		"skills": map[string]sideSnapshot{
			"top":    m.sideSnapshot(SideTop, now),
			"bottom": m.sideSnapshot(SideBottom, now),
		},
	}
}

func (m *MatchState) sideSnapshot(side Side, now time.Time) sideSnapshot {
	cds := make(map[int]float64, len(m.loadouts[side]))
	for _, def := range m.loadouts[side] {
		cds[def.ID] = m.CooldownRemaining(side, def.ID, now).Seconds()
	}
	return sideSnapshot{
		Active:    m.Active[side],
		Selected:  m.Selected[side],
		Available: m.loadouts[side],
		Cooldowns: cds,
		GoalRatio: m.goalRatio(side, now),
	}
}

func (m *MatchState) goalRatio(side Side, now time.Time) float64 {
	if m.goalEffect[side].active(now) {
		return m.goalEffect[side].Ratio
	}
	return DefaultGoalRatio
}
