package game

import (
	"errors"
	"time"
)

var (
	ErrSkillNotOwned      = errors.New("skill not owned")
	ErrSkillAlreadyActive = errors.New("skill already active")
	ErrSkillCoolingDown   = errors.New("skill cooling down")
)

// SelectSkill arms a skill; it will auto-activate on the side's next paddle
// collision. Silently ignores skills outside the side's loadout. skillID 0
// clears the armed slot.
func (m *MatchState) SelectSkill(side Side, skillID int) bool {
	if skillID == 0 {
		m.Selected[side] = 0
		return true
	}
	if _, ok := m.skillDef(side, skillID); !ok {
		return false
	}
	m.Selected[side] = skillID
	return true
}

// ActivateSkill uses a skill right now. Multiplier skills become the side's
// active skill and fire on the next collision; narrowing skills apply their
// goal effect immediately and leave the active slot empty. One concurrent
// effect per side; cooldowns are hard-enforced.
func (m *MatchState) ActivateSkill(side Side, skillID int, now time.Time) error {
	def, ok := m.skillDef(side, skillID)
	if !ok {
		return ErrSkillNotOwned
	}
	if m.Active[side] != 0 {
		return ErrSkillAlreadyActive
	}
	if m.CooldownRemaining(side, skillID, now) > 0 {
		return ErrSkillCoolingDown
	}

	m.lastUsed[side][skillID] = now
	if def.IsNarrowing() {
		m.goalEffect[side] = goalEffect{Ratio: def.NarrowRatio, Expiry: now.Add(def.Duration)}
		return nil
	}
	m.Active[side] = skillID
	return nil
}

// autoActivate is the collision-time path for an armed skill. Failures are
// silent: the collision itself still resolved normally.
func (m *MatchState) autoActivate(side Side, skillID int, now time.Time) {
	_ = m.ActivateSkill(side, skillID, now)
}

// CooldownRemaining reports how long until skillID may be used again.
func (m *MatchState) CooldownRemaining(side Side, skillID int, now time.Time) time.Duration {
	def, ok := m.skillDef(side, skillID)
	if !ok {
		return 0
	}
	used, ok := m.lastUsed[side][skillID]
	if !ok {
		return 0
	}
	if rem := def.Cooldown - now.Sub(used); rem > 0 {
		return rem
	}
	return 0
}
