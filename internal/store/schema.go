package store

import (
	"airhockey/internal/db"
	"airhockey/internal/logger"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users(
		id INT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(32) UNIQUE,
		pw_hash VARCHAR(255),
		created TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS skills(
		id INT PRIMARY KEY,
		name VARCHAR(50) NOT NULL,
		multiplier DECIMAL(3,1) NOT NULL,
		cooldown_seconds INT NOT NULL DEFAULT 0,
		narrow_ratio DECIMAL(3,2) NOT NULL DEFAULT 0,
		effect_seconds INT NOT NULL DEFAULT 0,
		description TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS user_skills(
		user_id INT,
		skill_id INT,
		unlocked BOOLEAN DEFAULT FALSE,
		usage_count INT DEFAULT 0,
		PRIMARY KEY (user_id, skill_id),
		FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE,
		FOREIGN KEY (skill_id) REFERENCES skills(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS rooms(
		id INT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(64) UNIQUE,
		owner VARCHAR(32),
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		is_playing BOOLEAN DEFAULT FALSE,
		current_players INT DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS matches(
		id INT AUTO_INCREMENT PRIMARY KEY,
		room_name VARCHAR(64),
		ts TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		top_score INT,
		bottom_score INT
	)`,
	// Reference catalog: 1-2 velocity multipliers, 3-4 goal narrowing.
	`INSERT IGNORE INTO skills (id, name, multiplier, cooldown_seconds, narrow_ratio, effect_seconds, description) VALUES
		(1, 'Speed Boost', 1.5, 5, 0, 0, 'Boosts ball speed on your next hit'),
		(2, 'Power Shot', 2.0, 8, 0, 0, 'Doubles ball speed on your next hit'),
		(3, 'Goal Shrink', 1.0, 10, 0.25, 6, 'Narrows your goal mouth for a while'),
		(4, 'Goal Wall', 1.0, 12, 0.15, 4, 'Narrows your goal mouth sharply for a short time')`,
}

// EnsureSchema creates the tables and seeds the skill catalog. Idempotent.
func EnsureSchema() {
	for _, stmt := range schemaStatements {
		if _, err := db.DB.Exec(stmt); err != nil {
			logger.Log.Fatalf("schema setup failed: %v", err)
		}
	}
	logger.Log.Info("MySQL schema ready")
}
