package message

import (
	"encoding/json"
	"errors"
	"time"

	"airhockey/internal/game"
	"airhockey/internal/logger"
	"airhockey/internal/session"
	"airhockey/internal/store"
	"airhockey/internal/types"
	"airhockey/internal/utils"
)

type PaddleMoveRequest struct {
	RoomName string  `json:"room_name"`
	Side     string  `json:"side"`
	DX       float64 `json:"dx"`
	DY       float64 `json:"dy"`
}

type PaddlePositionRequest struct {
	RoomName string  `json:"room_name"`
	Side     string  `json:"side"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type SkillRequest struct {
	RoomName string `json:"room_name"`
	Side     string `json:"side"`
	SkillID  int    `json:"skill_id"`
}

// matchFor resolves the live match for an inbound game intent. Nil means the
// room is gone or not yet playing; such intents are dropped without fuss.
func matchFor(roomName string) *game.Match {
	room, ok := session.Default().Get(roomName)
	if !ok {
		return nil
	}
	return room.Match()
}

// HandleJoinGame acknowledges the transition to the game screen and replies
// with the caller's canonical side.
func HandleJoinGame(c *types.Client, incoming utils.IncomingMessage) {
	if c.Room == "" {
		utils.SendError(c.Send, incoming.ID, "invalid_data", "Not in a room")
		return
	}
	if matchFor(c.Room) == nil {
		utils.SendError(c.Send, incoming.ID, "room_not_found", "Game is not running")
		return
	}
	utils.SendMessage(c.Send, incoming.ID, "joined", map[string]string{
		"room_name": c.Room,
		"side":      c.Side.String(),
	})
}

func HandlePaddleMove(c *types.Client, incoming utils.IncomingMessage) {
	var req PaddleMoveRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil {
		return
	}
	side, ok := game.ParseSide(req.Side)
	if !ok {
		return
	}
	if m := matchFor(req.RoomName); m != nil {
		m.Move(side, req.DX, req.DY)
	}
}

func HandlePaddlePosition(c *types.Client, incoming utils.IncomingMessage) {
	var req PaddlePositionRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil {
		return
	}
	side, ok := game.ParseSide(req.Side)
	if !ok {
		return
	}
	if m := matchFor(req.RoomName); m != nil {
		m.Place(side, req.X, req.Y)
	}
}

func HandleSelectSkill(c *types.Client, incoming utils.IncomingMessage) {
	var req SkillRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil {
		return
	}
	side, ok := game.ParseSide(req.Side)
	if !ok {
		return
	}
	if m := matchFor(req.RoomName); m != nil {
		m.Select(side, req.SkillID)
	}
}

// HandleActivateSkill queues the activation; the runner broadcasts
// skill_activated on success. Ownership failures stay silent, the rest go
// back to the requester only.
func HandleActivateSkill(c *types.Client, incoming utils.IncomingMessage) {
	var req SkillRequest
	if err := json.Unmarshal(incoming.Data, &req); err != nil {
		return
	}
	side, ok := game.ParseSide(req.Side)
	if !ok {
		return
	}
	m := matchFor(req.RoomName)
	if m == nil {
		return
	}

	send := c.Send
	msgID := incoming.ID
	m.Activate(side, req.SkillID, func(err error) {
		switch {
		case err == nil:
		case errors.Is(err, game.ErrSkillAlreadyActive):
			utils.SendError(send, msgID, "skill_already_active", "A skill is already active for this side")
		case errors.Is(err, game.ErrSkillCoolingDown):
			utils.SendError(send, msgID, "skill_cooldown", "Skill is still cooling down")
		case errors.Is(err, game.ErrSkillNotOwned):
			// Malicious or desynced client: no response at all.
		}
	})
}

// HandleDisconnect runs when a connection's pumps wind down. Lobby rooms
// revert the seat; active rooms notify the opponent and tear down once empty.
func HandleDisconnect(c *types.Client) {
	if c.Room == "" {
		return
	}

	reg := session.Default()
	room, ok := reg.Get(c.Room)
	if !ok {
		c.Room = ""
		return
	}

	if room.Phase() == session.PhaseLobby {
		leaveLobbyRoom(c)
		return
	}

	remaining, _ := room.Leave(c.Side)
	c.Room = ""

	if err := store.SetCurrentPlayers(room.Name, remaining); err != nil {
		logger.Log.Errorf("update player count %q: %v", room.Name, err)
	}

	if remaining > 0 {
		room.Broadcast("opponent_disconnected", map[string]any{
			"room_name": room.Name,
			"side":      c.Side.String(),
			"at":        time.Now().UnixMilli(),
		})
		return
	}

	// Leave already stopped the match when the room emptied.
	reg.RemoveIfEmpty(room.Name)
	if err := store.DeleteRoomRecord(room.Name); err != nil {
		logger.Log.Errorf("delete room record %q: %v", room.Name, err)
	}
	BroadcastRoomList(reg)
	logger.Log.Infof("room %q torn down after full disconnect", room.Name)
}
