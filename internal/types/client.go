// internal/types/client.go
package types

import (
	"sync"

	"airhockey/internal/game"

	"github.com/gorilla/websocket"
)

type User struct {
	ID       int
	Username string
}

// Client is one websocket connection. Room/Side are set when the client is
// seated in a room and cleared on leave; Room == "" means unseated.
//
// Send is never closed: broadcasts race against teardown, and a send into a
// closed channel panics even inside a select. Teardown closes Done instead
// and the write pump drains out.
type Client struct {
	ConnID string
	Conn   *websocket.Conn
	Send   chan []byte
	Inbox  chan []byte
	Done   chan struct{}
	Once   sync.Once
	User   User
	Room   string
	Side   game.Side
}
