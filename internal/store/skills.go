package store

import (
	"time"

	"airhockey/internal/db"
	"airhockey/internal/game"
)

// GetUserSkills returns the user's unlocked skill definitions, ascending by
// id. This is the loadout snapshotted into a room seat at join time.
func GetUserSkills(username string) ([]game.SkillDefinition, error) {
	rows, err := db.DB.Query(`
		SELECT s.id, s.name, s.multiplier, s.cooldown_seconds, s.narrow_ratio, s.effect_seconds
		FROM users u
		INNER JOIN user_skills us ON u.id = us.user_id
		INNER JOIN skills s ON us.skill_id = s.id
		WHERE u.username = ? AND us.unlocked = TRUE
		ORDER BY s.id
	`, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var skills []game.SkillDefinition
	for rows.Next() {
		var def game.SkillDefinition
		var cooldownSec, effectSec int
		if err := rows.Scan(&def.ID, &def.Name, &def.Multiplier, &cooldownSec, &def.NarrowRatio, &effectSec); err != nil {
			return nil, err
		}
		def.Cooldown = time.Duration(cooldownSec) * time.Second
		def.Duration = time.Duration(effectSec) * time.Second
		skills = append(skills, def)
	}
	return skills, rows.Err()
}
