package store

import "airhockey/internal/db"

// SaveMatch archives a finished match's final score.
func SaveMatch(roomName string, topScore, bottomScore int) error {
	_, err := db.DB.Exec(`INSERT INTO matches(room_name, top_score, bottom_score) VALUES (?, ?, ?)`,
		roomName, topScore, bottomScore)
	return err
}
