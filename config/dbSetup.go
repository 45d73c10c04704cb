package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectDB() (*mongo.Client, error) {
	mongoURI := os.Getenv("MONGOURI")
	if mongoURI == "" {
		return nil, fmt.Errorf("MONGOURI not set in environment")
	}

	clientOptions := options.Client().ApplyURI(mongoURI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	logrus.Info("Connected to MongoDB")
	return client, nil
}

func Database(client *mongo.Client) *mongo.Database {
	dbName := os.Getenv("DB")
	if dbName == "" {
		dbName = "rental_marketplace"
	}
	return client.Database(dbName)
}

func CloseDBConnection(client *mongo.Client) {
	if err := client.Disconnect(context.TODO()); err != nil {
		logrus.Fatalf("Error closing database connection: %v", err)
	}
	logrus.Info("MongoDB connection closed")
}
