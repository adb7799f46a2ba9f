package store

import (
	"database/sql"
	"errors"

	"airhockey/internal/db"

	"github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
)

var ErrUsernameTaken = errors.New("username taken")

// CreateUser registers an account with a bcrypt-hashed password and grants
// the two starter skills.
func CreateUser(username, password string) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	tx, err := db.DB.Begin()
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.Exec(`INSERT INTO users(username, pw_hash) VALUES (?, ?)`, username, hash)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return 0, ErrUsernameTaken
		}
		return 0, err
	}

	uid64, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	userID := int(uid64)

	_, err = tx.Exec(`INSERT INTO user_skills(user_id, skill_id, unlocked) VALUES (?, 1, TRUE), (?, 2, TRUE)`, userID, userID)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return userID, nil
}

// VerifyUser checks credentials and returns the user id on success.
func VerifyUser(username, password string) (int, bool, error) {
	var id int
	var hash string
	err := db.DB.QueryRow(`SELECT id, pw_hash FROM users WHERE username = ?`, username).Scan(&id, &hash)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return 0, false, nil
	}
	return id, true, nil
}
