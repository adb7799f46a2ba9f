package store

import (
	"time"

	"airhockey/internal/db"
)

// RoomRecord is one row of the lobby browser's room list.
type RoomRecord struct {
	Name           string    `json:"room_name"`
	Owner          string    `json:"owner"`
	CreatedAt      time.Time `json:"created_at"`
	IsPlaying      bool      `json:"is_playing"`
	CurrentPlayers int       `json:"current_players"`
}

func CreateRoomRecord(owner, name string) error {
	_, err := db.DB.Exec(`INSERT INTO rooms(name, owner) VALUES (?, ?)`, name, owner)
	return err
}

func ListRooms() ([]RoomRecord, error) {
	rows, err := db.DB.Query(`SELECT name, owner, created_at, is_playing, current_players FROM rooms ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RoomRecord
	for rows.Next() {
		var r RoomRecord
		if err := rows.Scan(&r.Name, &r.Owner, &r.CreatedAt, &r.IsPlaying, &r.CurrentPlayers); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func DeleteRoomRecord(name string) error {
	_, err := db.DB.Exec(`DELETE FROM rooms WHERE name = ?`, name)
	return err
}

func SetPlaying(name string, playing bool) error {
	_, err := db.DB.Exec(`UPDATE rooms SET is_playing = ? WHERE name = ?`, playing, name)
	return err
}

func SetCurrentPlayers(name string, count int) error {
	_, err := db.DB.Exec(`UPDATE rooms SET current_players = ? WHERE name = ?`, count, name)
	return err
}
