package db

import (
	"context"
	"time"

	"airhockey/internal/config"
	"airhockey/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
)

func InitMongo() {
	cfg := config.Config

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Log.Fatalf("MongoDB connection error: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Log.Fatalf("MongoDB ping error: %v", err)
	}

	MongoClient = client
	MongoDatabase = client.Database(cfg.MongoDB)

	logger.Log.Info("Connected to MongoDB")
}

func CloseMongo() {
	if MongoClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := MongoClient.Disconnect(ctx); err != nil {
		logger.Log.Errorf("Error closing MongoDB connection: %v", err)
	}
}
