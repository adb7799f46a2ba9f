package game

import (
	"math"
	"time"
)

// StepResult reports what a single tick produced so the runner can emit the
// corresponding events and schedule the delayed serve.
type StepResult struct {
	Bounces []Side // paddle collisions, by paddle owner
	Goal    *GoalResult
}

type GoalResult struct {
	Scorer   Side
	Conceder Side
	// ServeDir is the vertical serve direction after the delay: -1 toward the
	// top goal, +1 toward the bottom goal (toward the non-scoring side).
	ServeDir float64
}

// Step advances the simulation by one tick. Order: integrate, goal-width
// resolution, side-wall bounce, paddle collisions, goal/boundary resolution.
// The broadcast that completes the tick is the runner's job.
func (m *MatchState) Step(now time.Time) StepResult {
	var res StepResult

	// 1. Integrate.
	m.Ball.X += m.Vel.X
	m.Ball.Y += m.Vel.Y

	// 2. Expire narrowing effects before the mouth widths are consulted.
	for side := SideTop; side <= SideBottom; side++ {
		if !m.goalEffect[side].Expiry.IsZero() && !now.Before(m.goalEffect[side].Expiry) {
			m.goalEffect[side] = goalEffect{}
		}
	}

	// 3. Side walls. Open at the goal mouths: no horizontal bounce while the
	// ball is inside a goal-mouth vertical band.
	if !m.inGoalBand() {
		if m.Ball.X-BallRadius <= 0 {
			m.Ball.X = BallRadius
			m.Vel.X = -m.Vel.X
		} else if m.Ball.X+BallRadius >= Width {
			m.Ball.X = Width - BallRadius
			m.Vel.X = -m.Vel.X
		}
	}

	// 4. Paddles, independently.
	for side := SideTop; side <= SideBottom; side++ {
		if m.collidePaddle(side, now) {
			res.Bounces = append(res.Bounces, side)
		}
	}

	// 5. Goals and the outer boundary.
	res.Goal = m.resolveGoals(now)

	return res
}

func (m *MatchState) inGoalBand() bool {
	return m.Ball.Y <= GoalDepth || m.Ball.Y >= Height-GoalDepth
}

// collidePaddle runs circle-vs-circle collision for one paddle: push the ball
// out along the center normal, reflect the velocity, then give the owner's
// skill machinery a chance to fire.
func (m *MatchState) collidePaddle(side Side, now time.Time) bool {
	p := m.Paddles[side]
	dx := m.Ball.X - p.X
	dy := m.Ball.Y - p.Y
	dist := math.Hypot(dx, dy)
	if dist > PaddleRadius+BallRadius || dist == 0 {
		return false
	}

	// Only the goal-facing half of the paddle is live, as in the reference
	// geometry: the top paddle cannot catch a ball already well behind it.
	if side == SideTop && m.Ball.Y >= p.Y+PaddleRadius {
		return false
	}
	if side == SideBottom && m.Ball.Y <= p.Y-PaddleRadius {
		return false
	}

	nx := dx / dist
	ny := dy / dist

	m.Ball.X = p.X + nx*(PaddleRadius+BallRadius)
	m.Ball.Y = p.Y + ny*(PaddleRadius+BallRadius)

	// v' = v - 2(v·n)n
	dot := m.Vel.X*nx + m.Vel.Y*ny
	m.Vel.X -= 2 * dot * nx
	m.Vel.Y -= 2 * dot * ny

	// An armed skill auto-activates on the collision; the armed slot clears
	// whether or not activation passes the cooldown gate.
	if m.Active[side] == 0 && m.Selected[side] != 0 {
		m.autoActivate(side, m.Selected[side], now)
		m.Selected[side] = 0
	}

	// A pending multiplier applies exactly once, then the active slot clears.
	if m.Active[side] != 0 {
		if def, ok := m.skillDef(side, m.Active[side]); ok && !def.IsNarrowing() {
			m.Vel.X *= def.Multiplier
			m.Vel.Y *= def.Multiplier
		}
		m.Active[side] = 0
	}

	return true
}

// resolveGoals checks both goal lines. Inside the effective mouth band the
// crossing scores; outside it the goal line is a solid wall.
func (m *MatchState) resolveGoals(now time.Time) *GoalResult {
	cx := Width / 2

	if m.Ball.Y-BallRadius <= GoalDepth {
		if m.Ball.Y+BallRadius < 0 {
			// Escaped the play area entirely: a true miss still concedes.
			return m.concede(SideTop)
		}
		if math.Abs(m.Ball.X-cx) <= m.EffectiveGoalHalfWidth(SideTop, now) {
			return m.concede(SideTop)
		}
		m.Ball.Y = GoalDepth + BallRadius
		m.Vel.Y = -m.Vel.Y
		return nil
	}

	if m.Ball.Y+BallRadius >= Height-GoalDepth {
		if m.Ball.Y-BallRadius > Height {
			return m.concede(SideBottom)
		}
		if math.Abs(m.Ball.X-cx) <= m.EffectiveGoalHalfWidth(SideBottom, now) {
			return m.concede(SideBottom)
		}
		m.Ball.Y = Height - GoalDepth - BallRadius
		m.Vel.Y = -m.Vel.Y
	}

	return nil
}

func (m *MatchState) concede(side Side) *GoalResult {
	scorer := side.Opponent()
	m.Scores[scorer]++

	// Phase one of the serve: ball parked at center, dead, until the runner's
	// delayed continuation fires phase two.
	m.Ball = Vec{X: Width / 2, Y: Height / 2}
	m.Vel = Vec{}

	dir := 1.0 // toward bottom
	if side == SideTop {
		dir = -1.0
	}
	return &GoalResult{Scorer: scorer, Conceder: side, ServeDir: dir}
}

// Serve is phase two of the ball reset: full speed toward the conceding side
// with a small random horizontal angle.
func (m *MatchState) Serve(dir float64) {
	theta := (m.rng.Float64()*2 - 1) * ServeJitter
	m.Vel.X = BaseSpeed * math.Sin(theta)
	m.Vel.Y = dir * BaseSpeed * math.Cos(theta)
}

// EffectiveGoalHalfWidth is the live half-width of one side's goal mouth.
func (m *MatchState) EffectiveGoalHalfWidth(side Side, now time.Time) float64 {
	return math.Max(GoalWidthMin, Width*m.goalRatio(side, now))
}

// MovePaddle applies a relative delta, clamped to the playfield.
func (m *MatchState) MovePaddle(side Side, dx, dy float64) {
	m.SetPaddle(side, m.Paddles[side].X+dx, m.Paddles[side].Y+dy)
}

// SetPaddle places a paddle center absolutely, clamped to the playfield.
func (m *MatchState) SetPaddle(side Side, x, y float64) {
	m.Paddles[side].X = clamp(x, PaddleRadius, Width-PaddleRadius)
	m.Paddles[side].Y = clamp(y, PaddleRadius, Height-PaddleRadius)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
