// internal/utils/json.go
package utils

import (
	"encoding/json"

	"airhockey/internal/logger"
)

type IncomingMessage struct {
	ID   string          `json:"id"`
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type OutgoingMessage struct {
	ID   string      `json:"id"`
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func UnmarshalMessage(data []byte, target interface{}) error {
	return json.Unmarshal(data, target)
}

func SendJSON(send chan<- []byte, data interface{}) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		logger.Log.Errorf("Error marshaling JSON: %v", err)
		return
	}
	// Non-blocking so a saturated consumer never stalls a tick. Send channels
	// are never closed (see types.Client), so this cannot panic.
	select {
	case send <- jsonData:
	default:
		logger.Log.Warn("Send channel is full, dropping message.")
	}
}

func SendError(send chan<- []byte, id, errorType, message string) {
	if id == "" {
		id = "unknown"
	}
	SendJSON(send, OutgoingMessage{
		ID:   id,
		Type: "error",
		Data: map[string]string{
			"error":   errorType,
			"message": message,
		},
	})
}

func SendMessage(send chan<- []byte, id string, typ string, data interface{}) {
	msg := OutgoingMessage{
		ID:   id,
		Type: typ,
		Data: data,
	}
	SendJSON(send, msg)
}
