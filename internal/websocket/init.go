// internal/websocket/init.go
package websocket

import (
	"net/http"
	"strconv"

	"airhockey/internal/config"
	"airhockey/internal/logger"
)

func InitWebSocketServer() {
	mux := http.NewServeMux()
	RegisterWebSocketRoutes(mux)

	addr := config.Config.WSHost + ":" + strconv.Itoa(config.Config.WSPort)
	logger.Log.Infof("Server running on %s", addr)

	err := http.ListenAndServe(addr, mux)
	if err != nil {
		logger.Log.Fatalf("Server error: %v", err)
	}
}

func RegisterWebSocketRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", ServeWS)
}
