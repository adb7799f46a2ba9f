// internal/websocket/control.go
package websocket

import (
	"airhockey/internal/handle/message"
	"airhockey/internal/logger"
	"airhockey/internal/types"
	"airhockey/internal/utils"
)

func handleGameMessage(c *types.Client, msg []byte) {
	var incoming utils.IncomingMessage
	err := utils.UnmarshalMessage(msg, &incoming)
	if err != nil {
		logger.Log.Debugf("Invalid JSON from %s: %v", c.Conn.RemoteAddr(), err)
		utils.SendError(c.Send, "", "invalid_json", "Malformed JSON")
		return
	}

	switch incoming.Type {

	case "login":
		message.HandleLogin(c, incoming)

	case "re_login":
		message.HandleReLogin(c, incoming)

	case "register":
		message.HandleRegister(c, incoming)

	case "get_user_skills":
		message.HandleGetUserSkills(c, incoming)

	case "room_create":
		message.HandleCreateRoom(c, incoming)

	case "room_list":
		message.HandleListRooms(c, incoming)

	case "join_loading":
		message.HandleJoinLobby(c, incoming)

	case "join_loading_ready_toggle":
		message.HandleToggleReady(c, incoming)

	case "leave_loading":
		message.HandleLeaveLobby(c, incoming)

	case "join":
		message.HandleJoinGame(c, incoming)

	case "paddle_move":
		message.HandlePaddleMove(c, incoming)

	case "paddle_position":
		message.HandlePaddlePosition(c, incoming)

	case "set_selected_skill":
		message.HandleSelectSkill(c, incoming)

	case "activate_skill":
		message.HandleActivateSkill(c, incoming)

	default:
		utils.SendError(c.Send, incoming.ID, "unknown_type", "Unknown message type")
	}
}
