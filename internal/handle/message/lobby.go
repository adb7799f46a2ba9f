package message

import (
	"encoding/json"
	"errors"

	"airhockey/internal/game"
	"airhockey/internal/logger"
	"airhockey/internal/session"
	"airhockey/internal/store"
	"airhockey/internal/types"
	"airhockey/internal/utils"
)

type RoomRequest struct {
	RoomName string `json:"room_name"`
	Side     string `json:"side,omitempty"`
}

func HandleCreateRoom(c *types.Client, incoming utils.IncomingMessage) {
	if c.User.ID == 0 {
		utils.SendError(c.Send, incoming.ID, "unauthorized", "User not logged in")
		return
	}

	var req RoomRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil || req.RoomName == "" {
		utils.SendError(c.Send, incoming.ID, "invalid_data", "Missing or invalid room name")
		return
	}

	reg := session.Default()
	if _, err := reg.CreateRoom(req.RoomName, c.User.Username); err != nil {
		if errors.Is(err, session.ErrDuplicateRoomName) {
			utils.SendError(c.Send, incoming.ID, "duplicate_room_name", "A room with this name already exists")
			return
		}
		utils.SendError(c.Send, incoming.ID, "server_error", "Could not create room")
		return
	}

	if err := store.CreateRoomRecord(c.User.Username, req.RoomName); err != nil {
		logger.Log.Errorf("room record %q: %v", req.RoomName, err)
		reg.RemoveIfEmpty(req.RoomName)
		utils.SendError(c.Send, incoming.ID, "server_error", "Could not persist room")
		return
	}

	logger.Log.Infof("room %q created by %s", req.RoomName, c.User.Username)
	utils.SendMessage(c.Send, incoming.ID, "room_create_success", map[string]string{
		"room_name": req.RoomName,
	})
	BroadcastRoomList(reg)
}

// HandleJoinLobby seats the caller in a lobby room: first free side, top/left
// before bottom/right, loadout snapshotted from the skill store.
func HandleJoinLobby(c *types.Client, incoming utils.IncomingMessage) {
	if c.User.ID == 0 {
		utils.SendError(c.Send, incoming.ID, "unauthorized", "User not logged in")
		return
	}

	var req RoomRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil || req.RoomName == "" {
		utils.SendError(c.Send, incoming.ID, "invalid_data", "Missing or invalid room name")
		return
	}

	reg := session.Default()
	room, ok := reg.Get(req.RoomName)
	if !ok {
		utils.SendError(c.Send, incoming.ID, "room_not_found", "Room no longer exists")
		return
	}

	skills, err := store.GetUserSkills(c.User.Username)
	if err != nil {
		logger.Log.Errorf("user skills for %s: %v", c.User.Username, err)
		utils.SendError(c.Send, incoming.ID, "server_error", "Failed to load skills")
		return
	}

	side, err := room.Join(c, c.User.Username, skills)
	if err != nil {
		utils.SendError(c.Send, incoming.ID, "room_full", "Room already has two players")
		return
	}
	c.Room = room.Name
	c.Side = side

	occ := room.Occupancy()
	if err := store.SetCurrentPlayers(room.Name, occ); err != nil {
		logger.Log.Errorf("update player count %q: %v", room.Name, err)
	}
	if occ == 2 {
		if err := store.SetPlaying(room.Name, true); err != nil {
			logger.Log.Errorf("set playing %q: %v", room.Name, err)
		}
	}

	snap := room.Snapshot()
	payload := map[string]any{
		"room_name":         snap.RoomName,
		"left_username":     snap.LeftUsername,
		"right_username":    snap.RightUsername,
		"left_ready":        snap.LeftReady,
		"right_ready":       snap.RightReady,
		"left_user_skills":  snap.LeftUserSkills,
		"right_user_skills": snap.RightUserSkills,
		"side":              side.LobbyLabel(),
	}
	room.Broadcast("join_loading_success", payload)
	BroadcastRoomList(reg)
	logger.Log.Infof("%s joined lobby %q as %s", c.User.Username, room.Name, side.LobbyLabel())
}

// HandleToggleReady flips a readiness flag; when both sides are ready it fires
// the start transition exactly once and spins up the match runner.
func HandleToggleReady(c *types.Client, incoming utils.IncomingMessage) {
	var req RoomRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil || req.RoomName == "" {
		utils.SendError(c.Send, incoming.ID, "invalid_data", "Missing or invalid room name")
		return
	}

	side, ok := game.ParseSide(req.Side)
	if !ok {
		utils.SendError(c.Send, incoming.ID, "invalid_data", "Unknown side")
		return
	}

	room, found := session.Default().Get(req.RoomName)
	if !found {
		// Late intent after teardown: drop.
		return
	}

	ready, bothReady := room.ToggleReady(side)
	room.Broadcast("join_loading_ready_toggle_success", map[string]any{
		"room_name": req.RoomName,
		"side":      side.LobbyLabel(),
		"ready":     ready,
	})

	if bothReady {
		startMatch(room)
	}
}

func startMatch(room *session.Room) {
	name := room.Name
	room.StartMatch(func(topScore, bottomScore int) {
		if err := store.SaveMatch(name, topScore, bottomScore); err != nil {
			logger.Log.Errorf("archive match %q: %v", name, err)
		}
		logger.Log.Infof("match %q finished %d:%d", name, topScore, bottomScore)
	})
	room.Broadcast("game_ready", map[string]string{"room_name": name})
	logger.Log.Infof("match %q started", name)
}

// HandleLeaveLobby unseats the caller. The room survives while the other side
// remains; an emptied room is torn down.
func HandleLeaveLobby(c *types.Client, incoming utils.IncomingMessage) {
	if c.Room == "" {
		utils.SendError(c.Send, incoming.ID, "invalid_data", "Not in a room")
		return
	}
	leaveLobbyRoom(c)
	utils.SendMessage(c.Send, incoming.ID, "lobby_left", map[string]string{})
}

func leaveLobbyRoom(c *types.Client) {
	reg := session.Default()
	room, ok := reg.Get(c.Room)
	if !ok {
		c.Room = ""
		return
	}

	remaining, wasFull := room.Leave(c.Side)
	c.Room = ""

	if err := store.SetCurrentPlayers(room.Name, remaining); err != nil {
		logger.Log.Errorf("update player count %q: %v", room.Name, err)
	}
	if wasFull {
		if err := store.SetPlaying(room.Name, false); err != nil {
			logger.Log.Errorf("set playing %q: %v", room.Name, err)
		}
	}

	if remaining == 0 {
		reg.RemoveIfEmpty(room.Name)
		if err := store.DeleteRoomRecord(room.Name); err != nil {
			logger.Log.Errorf("delete room record %q: %v", room.Name, err)
		}
	} else {
		snap := room.Snapshot()
		room.Broadcast("join_loading_success", map[string]any{
			"room_name":         snap.RoomName,
			"left_username":     snap.LeftUsername,
			"right_username":    snap.RightUsername,
			"left_ready":        snap.LeftReady,
			"right_ready":       snap.RightReady,
			"left_user_skills":  snap.LeftUserSkills,
			"right_user_skills": snap.RightUserSkills,
		})
	}
	BroadcastRoomList(reg)
}

// HandleListRooms answers with the current room list; the same payload is
// pushed to everyone whenever the list changes.
func HandleListRooms(c *types.Client, incoming utils.IncomingMessage) {
	records, err := store.ListRooms()
	if err != nil {
		logger.Log.Errorf("list rooms: %v", err)
		utils.SendError(c.Send, incoming.ID, "server_error", "Failed to list rooms")
		return
	}
	utils.SendMessage(c.Send, incoming.ID, "room_updated", records)
}

// BroadcastRoomList pushes the room list to every connected client, the lobby
// browser broadcast triggered by room churn.
func BroadcastRoomList(reg *session.Registry) {
	records, err := store.ListRooms()
	if err != nil {
		logger.Log.Errorf("list rooms: %v", err)
		return
	}
	reg.EachClient(func(c *types.Client) {
		utils.SendMessage(c.Send, "room_updated", "room_updated", records)
	})
}
