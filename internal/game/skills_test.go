package game_test

import (
	"testing"
	"time"

	"airhockey/internal/game"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSkill(t *testing.T) {
	m := newTestState()

	assert.False(t, m.SelectSkill(game.SideTop, 99), "unowned skill is rejected")
	assert.Zero(t, m.Selected[game.SideTop])

	assert.True(t, m.SelectSkill(game.SideTop, 1))
	assert.Equal(t, 1, m.Selected[game.SideTop])

	assert.True(t, m.SelectSkill(game.SideTop, 0), "zero clears the armed slot")
	assert.Zero(t, m.Selected[game.SideTop])
}

func TestActivateSkillNotOwned(t *testing.T) {
	m := newTestState()
	err := m.ActivateSkill(game.SideTop, 99, time.Now())
	assert.ErrorIs(t, err, game.ErrSkillNotOwned)
}

func TestActivateSkillOneConcurrentEffect(t *testing.T) {
	m := newTestState()
	now := time.Now()

	require.NoError(t, m.ActivateSkill(game.SideTop, 1, now))
	err := m.ActivateSkill(game.SideTop, 1, now)
	assert.ErrorIs(t, err, game.ErrSkillAlreadyActive)

	// The opponent's slot is independent.
	assert.NoError(t, m.ActivateSkill(game.SideBottom, 1, now))
}

func TestActivateSkillCooldown(t *testing.T) {
	m := newTestState()
	now := time.Now()

	// Narrowing skills leave the active slot empty, so a repeat hits the
	// cooldown gate rather than the concurrency gate.
	require.NoError(t, m.ActivateSkill(game.SideTop, 3, now))

	err := m.ActivateSkill(game.SideTop, 3, now.Add(time.Second))
	assert.ErrorIs(t, err, game.ErrSkillCoolingDown)

	assert.NoError(t, m.ActivateSkill(game.SideTop, 3, now.Add(10*time.Second)))
}

func TestCooldownRemaining(t *testing.T) {
	m := newTestState()
	now := time.Now()

	assert.Zero(t, m.CooldownRemaining(game.SideTop, 1, now), "never used")
	assert.Zero(t, m.CooldownRemaining(game.SideTop, 99, now), "unknown skill")

	require.NoError(t, m.ActivateSkill(game.SideTop, 3, now))
	assert.Equal(t, 7*time.Second, m.CooldownRemaining(game.SideTop, 3, now.Add(3*time.Second)))
	assert.Zero(t, m.CooldownRemaining(game.SideTop, 3, now.Add(10*time.Second)))
}
