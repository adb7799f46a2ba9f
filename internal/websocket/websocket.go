// internal/websocket/websocket.go
package websocket

import (
	"net/http"

	"airhockey/internal/handle/message"
	"airhockey/internal/logger"
	"airhockey/internal/session"
	"airhockey/internal/types"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Errorf("WebSocket upgrade error: %v", err)
		return
	}

	client := &types.Client{
		ConnID: uuid.NewString(),
		Conn:   conn,
		Send:   make(chan []byte, 64),
		Inbox:  make(chan []byte, 64),
		Done:   make(chan struct{}),
	}

	session.Default().AddClient(client)

	logger.Log.Infof("Client connected: %s (%s)", conn.RemoteAddr(), client.ConnID)

	go readPump(client)
	go writePump(client)
	go processMessages(client)
}

// teardown runs exactly once per connection regardless of which pump dies
// first. Send is deliberately left open: a room broadcast or room-list push
// that snapshotted this client before teardown may still write to it, and a
// closed channel would panic the sender. The buffer just gets collected.
func teardown(c *types.Client) {
	c.Once.Do(func() {
		message.HandleDisconnect(c)
		session.Default().RemoveClient(c)
		close(c.Done)
		c.Conn.Close()
		logger.Log.Infof("Client disconnected: %s (%s)", c.Conn.RemoteAddr(), c.ConnID)
	})
}

func readPump(c *types.Client) {
	defer func() {
		teardown(c)
		// Only readPump writes to Inbox, so closing here lets
		// processMessages drain and exit.
		close(c.Inbox)
	}()

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			logger.Log.Debugf("Read error from %s: %v", c.Conn.RemoteAddr(), err)
			break
		}
		c.Inbox <- msg
	}
}

func writePump(c *types.Client) {
	defer teardown(c)

	for {
		select {
		case msg := <-c.Send:
			err := c.Conn.WriteMessage(websocket.TextMessage, msg)
			if err != nil {
				logger.Log.Debugf("Write error to %s: %v", c.Conn.RemoteAddr(), err)
				return
			}
		case <-c.Done:
			return
		}
	}
}

func processMessages(c *types.Client) {
	for msg := range c.Inbox {
		handleGameMessage(c, msg)
	}
}
