package game_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"airhockey/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSkills() []game.SkillDefinition {
	return []game.SkillDefinition{
		{ID: 1, Name: "Speed Boost", Multiplier: 1.5, Cooldown: 5 * time.Second},
		{ID: 3, Name: "Goal Shrink", NarrowRatio: 0.25, Cooldown: 10 * time.Second, Duration: 6 * time.Second},
		{ID: 4, Name: "Goal Wall", NarrowRatio: 0.15, Cooldown: 12 * time.Second, Duration: 4 * time.Second},
	}
}

func newTestState() *game.MatchState {
	rng := rand.New(rand.NewSource(42))
	return game.NewMatchState(testSkills(), testSkills(), rng)
}

func TestSetPaddleClamp(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"inside stays", 100, 100, 100, 100},
		{"left overflow clamps", -50, 100, game.PaddleRadius, 100},
		{"right overflow clamps", game.Width + 50, 100, game.Width - game.PaddleRadius, 100},
		{"top overflow clamps", 100, -5, 100, game.PaddleRadius},
		{"bottom overflow clamps", 100, game.Height + 5, 100, game.Height - game.PaddleRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestState()
			m.SetPaddle(game.SideTop, tt.x, tt.y)
			assert.Equal(t, tt.wantX, m.Paddles[game.SideTop].X)
			assert.Equal(t, tt.wantY, m.Paddles[game.SideTop].Y)
		})
	}
}

func TestMovePaddleClamp(t *testing.T) {
	m := newTestState()
	m.SetPaddle(game.SideBottom, 100, 600)

	m.MovePaddle(game.SideBottom, 20, -10)
	assert.Equal(t, game.Vec{X: 120, Y: 590}, m.Paddles[game.SideBottom])

	m.MovePaddle(game.SideBottom, -1000, 1000)
	assert.Equal(t, game.PaddleRadius, m.Paddles[game.SideBottom].X)
	assert.Equal(t, game.Height-game.PaddleRadius, m.Paddles[game.SideBottom].Y)
}

func TestStepIntegratesVelocity(t *testing.T) {
	m := newTestState()
	m.Vel = game.Vec{X: 5, Y: 5}

	now := time.Now()
	m.Step(now)
	m.Step(now.Add(game.TickInterval))

	assert.Equal(t, game.Vec{X: game.Width/2 + 10, Y: game.Height/2 + 10}, m.Ball)
}

func TestSideWallBounce(t *testing.T) {
	m := newTestState()
	m.Ball = game.Vec{X: game.BallRadius + 2, Y: game.Height / 2}
	m.Vel = game.Vec{X: -5, Y: 0}

	res := m.Step(time.Now())

	require.Nil(t, res.Goal)
	assert.Equal(t, game.BallRadius, m.Ball.X)
	assert.Equal(t, 5.0, m.Vel.X)
}

func TestGoalMouthOpensSideWall(t *testing.T) {
	// Inside the goal band the side wall does not reflect; with the default
	// mouth covering the full width the crossing concedes instead.
	m := newTestState()
	m.SetPaddle(game.SideTop, 350, 30)
	m.Ball = game.Vec{X: game.BallRadius + 2, Y: 15}
	m.Vel = game.Vec{X: -5, Y: 0}

	res := m.Step(time.Now())

	require.NotNil(t, res.Goal)
	assert.Equal(t, game.SideTop, res.Goal.Conceder)
	assert.Equal(t, game.SideBottom, res.Goal.Scorer)
}

func TestPaddleBouncePreservesSpeed(t *testing.T) {
	m := newTestState()
	m.Ball = game.Vec{X: 220, Y: 38}
	m.Vel = game.Vec{X: -3, Y: -4}

	res := m.Step(time.Now())

	require.Equal(t, []game.Side{game.SideTop}, res.Bounces)
	assert.InDelta(t, 5.0, math.Hypot(m.Vel.X, m.Vel.Y), 1e-9)

	// Ball pushed out along the normal so the circles no longer overlap.
	dist := math.Hypot(m.Ball.X-m.Paddles[game.SideTop].X, m.Ball.Y-m.Paddles[game.SideTop].Y)
	assert.InDelta(t, game.PaddleRadius+game.BallRadius, dist, 1e-9)
}

func TestMultiplierAppliesExactlyOnce(t *testing.T) {
	m := newTestState()
	now := time.Now()
	require.NoError(t, m.ActivateSkill(game.SideTop, 1, now))
	require.Equal(t, 1, m.Active[game.SideTop])

	m.Ball = game.Vec{X: 220, Y: 38}
	m.Vel = game.Vec{X: -3, Y: -4}
	res := m.Step(now)

	require.Equal(t, []game.Side{game.SideTop}, res.Bounces)
	assert.InDelta(t, 7.5, math.Hypot(m.Vel.X, m.Vel.Y), 1e-9)
	assert.Zero(t, m.Active[game.SideTop])

	// A second collision with the slot cleared leaves the speed alone.
	m.Ball = game.Vec{X: 220, Y: 38}
	m.Vel = game.Vec{X: -3, Y: -4}
	res = m.Step(now.Add(game.TickInterval))

	require.Equal(t, []game.Side{game.SideTop}, res.Bounces)
	assert.InDelta(t, 5.0, math.Hypot(m.Vel.X, m.Vel.Y), 1e-9)
}

func TestArmedSkillAutoActivatesOnCollision(t *testing.T) {
	m := newTestState()
	require.True(t, m.SelectSkill(game.SideTop, 1))

	m.Ball = game.Vec{X: 220, Y: 38}
	m.Vel = game.Vec{X: -3, Y: -4}
	res := m.Step(time.Now())

	require.Equal(t, []game.Side{game.SideTop}, res.Bounces)
	assert.Zero(t, m.Selected[game.SideTop], "armed slot clears on collision")
	assert.Zero(t, m.Active[game.SideTop], "effect consumed in the same collision")
	assert.InDelta(t, 7.5, math.Hypot(m.Vel.X, m.Vel.Y), 1e-9)
}

func TestNarrowingEffectAndExpiry(t *testing.T) {
	m := newTestState()
	now := time.Now()

	require.NoError(t, m.ActivateSkill(game.SideTop, 3, now))
	assert.Zero(t, m.Active[game.SideTop], "narrowing applies immediately, no active slot")

	assert.Equal(t, 100.0, m.EffectiveGoalHalfWidth(game.SideTop, now))
	assert.Equal(t, 100.0, m.EffectiveGoalHalfWidth(game.SideTop, now.Add(6*time.Second-time.Millisecond)))
	assert.Equal(t, 200.0, m.EffectiveGoalHalfWidth(game.SideTop, now.Add(6*time.Second)),
		"effect gone the instant expiry is reached")
	assert.Equal(t, 200.0, m.EffectiveGoalHalfWidth(game.SideBottom, now), "other side untouched")
}

func TestNarrowingFloorsAtMinimumWidth(t *testing.T) {
	m := newTestState()
	now := time.Now()

	require.NoError(t, m.ActivateSkill(game.SideBottom, 4, now))
	assert.Equal(t, game.GoalWidthMin, m.EffectiveGoalHalfWidth(game.SideBottom, now))
}

func TestGoalInsideMouthConcedes(t *testing.T) {
	m := newTestState()
	m.SetPaddle(game.SideTop, 350, 30)
	m.Ball = game.Vec{X: game.Width / 2, Y: 35}
	m.Vel = game.Vec{X: 0, Y: -10}

	res := m.Step(time.Now())

	require.NotNil(t, res.Goal)
	assert.Equal(t, game.SideTop, res.Goal.Conceder)
	assert.Equal(t, 1, m.Scores[game.SideBottom])
	assert.Equal(t, 0, m.Scores[game.SideTop])
	assert.Equal(t, -1.0, res.Goal.ServeDir)

	// Phase one of the reset: parked dead at center.
	assert.Equal(t, game.Vec{X: game.Width / 2, Y: game.Height / 2}, m.Ball)
	assert.Equal(t, game.Vec{}, m.Vel)
}

func TestGoalOutsideMouthBounces(t *testing.T) {
	m := newTestState()
	now := time.Now()
	m.SetPaddle(game.SideTop, 350, 30)
	require.NoError(t, m.ActivateSkill(game.SideTop, 4, now))

	m.Ball = game.Vec{X: 50, Y: 35}
	m.Vel = game.Vec{X: 0, Y: -10}

	res := m.Step(now)

	require.Nil(t, res.Goal, "outside the narrowed mouth the goal line is a wall")
	assert.Equal(t, 0, m.Scores[game.SideBottom])
	assert.Equal(t, game.GoalDepth+game.BallRadius, m.Ball.Y)
	assert.Equal(t, 10.0, m.Vel.Y)
}

func TestTrueMissConcedes(t *testing.T) {
	m := newTestState()
	now := time.Now()
	m.SetPaddle(game.SideTop, 350, 30)
	require.NoError(t, m.ActivateSkill(game.SideTop, 4, now))

	m.Ball = game.Vec{X: 50, Y: -20}
	m.Vel = game.Vec{X: 0, Y: -5}

	res := m.Step(now)

	require.NotNil(t, res.Goal)
	assert.Equal(t, game.SideTop, res.Goal.Conceder)
	assert.Equal(t, 1, m.Scores[game.SideBottom])
}

func TestServe(t *testing.T) {
	tests := []struct {
		name string
		dir  float64
	}{
		{"toward top goal", -1},
		{"toward bottom goal", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestState()
			m.Serve(tt.dir)

			assert.InDelta(t, game.BaseSpeed, math.Hypot(m.Vel.X, m.Vel.Y), 1e-9)
			if tt.dir < 0 {
				assert.Negative(t, m.Vel.Y)
			} else {
				assert.Positive(t, m.Vel.Y)
			}
			// Jitter is horizontal only and bounded.
			assert.LessOrEqual(t, math.Abs(m.Vel.X), game.BaseSpeed*math.Sin(game.ServeJitter)+1e-9)
		})
	}
}
