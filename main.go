package main

import (
	"airhockey/internal/config"
	"airhockey/internal/db"
	"airhockey/internal/logger"
	"airhockey/internal/store"
	"airhockey/internal/websocket"
)

func main() {
	logger.Init(config.Config.LogFile)
	defer logger.Sync()

	db.InitMySQL()
	db.InitMongo()
	defer func() {
		if err := db.DB.Close(); err != nil {
			logger.Log.Errorf("Error closing MySQL connection: %v", err)
		}
		db.CloseMongo()
	}()

	store.EnsureSchema()

	websocket.InitWebSocketServer()
}
