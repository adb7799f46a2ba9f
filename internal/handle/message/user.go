package message

import (
	"encoding/json"
	"errors"

	"airhockey/internal/auth"
	"airhockey/internal/logger"
	"airhockey/internal/session"
	"airhockey/internal/store"
	"airhockey/internal/types"
	"airhockey/internal/utils"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type ReLoginRequest struct {
	Token string `json:"token"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func HandleLogin(c *types.Client, incoming utils.IncomingMessage) {
	if c.User.ID != 0 {
		utils.SendError(c.Send, incoming.ID, "already_logged_in", "User already logged in")
		return
	}

	var req LoginRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil {
		utils.SendError(c.Send, incoming.ID, "invalid_payload", "Invalid login format")
		return
	}

	if req.Username == "" || req.Password == "" {
		utils.SendError(c.Send, incoming.ID, "missing_fields", "Username or password missing")
		return
	}

	id, ok, err := store.VerifyUser(req.Username, req.Password)
	if err != nil {
		logger.Log.Errorf("DB error: %v", err)
		utils.SendError(c.Send, incoming.ID, "server_error", "Database error")
		return
	}
	if !ok {
		utils.SendError(c.Send, incoming.ID, "invalid_credentials", "Invalid username or password")
		return
	}

	if session.Default().IsUserLoggedIn(id) {
		utils.SendError(c.Send, incoming.ID, "already_logged_in", "This account is already logged in on another device.")
		return
	}
	c.User.ID = id
	c.User.Username = req.Username

	token, err := auth.GenerateToken(id, req.Username)
	if err != nil {
		utils.SendError(c.Send, incoming.ID, "token_error", "Failed to generate token")
		return
	}

	utils.SendMessage(c.Send, incoming.ID, "login_success", LoginResponse{
		Token:    token,
		Username: req.Username,
	})
}

func HandleReLogin(c *types.Client, incoming utils.IncomingMessage) {
	if c.User.ID != 0 {
		utils.SendError(c.Send, incoming.ID, "already_logged_in", "User already logged in")
		return
	}

	var req ReLoginRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil {
		utils.SendError(c.Send, incoming.ID, "invalid_payload", "Invalid re_login format")
		return
	}

	if req.Token == "" {
		utils.SendError(c.Send, incoming.ID, "missing_fields", "Token missing")
		return
	}

	claims, err := auth.ValidateToken(req.Token)
	if err != nil {
		utils.SendError(c.Send, incoming.ID, "invalid_token", err.Error())
		return
	}

	if session.Default().IsUserLoggedIn(claims.ID) {
		utils.SendError(c.Send, incoming.ID, "already_logged_in", "This account is already logged in on another device.")
		return
	}

	c.User.ID = claims.ID
	c.User.Username = claims.Username

	utils.SendMessage(c.Send, incoming.ID, "login_success", LoginResponse{
		Token:    req.Token,
		Username: claims.Username,
	})
}

func HandleRegister(c *types.Client, incoming utils.IncomingMessage) {
	var req RegisterRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil {
		utils.SendError(c.Send, incoming.ID, "invalid_payload", "Invalid register format")
		return
	}

	if req.Username == "" || req.Password == "" {
		utils.SendError(c.Send, incoming.ID, "missing_fields", "Missing fields")
		return
	}
	if len(req.Password) < 6 {
		utils.SendError(c.Send, incoming.ID, "weak_password", "Password must be at least 6 characters")
		return
	}

	userID, err := store.CreateUser(req.Username, req.Password)
	if errors.Is(err, store.ErrUsernameTaken) {
		utils.SendError(c.Send, incoming.ID, "duplicate", "Username already exists")
		return
	}
	if err != nil {
		logger.Log.Errorf("register failed: %v", err)
		utils.SendError(c.Send, incoming.ID, "server_error", "Failed to create user")
		return
	}

	token, err := auth.GenerateToken(userID, req.Username)
	if err != nil {
		utils.SendError(c.Send, incoming.ID, "token_error", "Failed to generate token")
		return
	}

	c.User.ID = userID
	c.User.Username = req.Username

	utils.SendMessage(c.Send, incoming.ID, "register_success", LoginResponse{
		Token:    token,
		Username: req.Username,
	})
}

// HandleGetUserSkills returns the caller's unlocked skill list, for the lobby
// loadout screen.
func HandleGetUserSkills(c *types.Client, incoming utils.IncomingMessage) {
	if c.User.ID == 0 {
		utils.SendError(c.Send, incoming.ID, "unauthorized", "User not logged in")
		return
	}

	skills, err := store.GetUserSkills(c.User.Username)
	if err != nil {
		logger.Log.Errorf("get user skills: %v", err)
		utils.SendError(c.Send, incoming.ID, "server_error", "Failed to retrieve skills")
		return
	}

	utils.SendMessage(c.Send, incoming.ID, "user_skills", skills)
}
