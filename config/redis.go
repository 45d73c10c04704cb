package config

import (
	"context"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	Ctx         = context.Background()
)

// InitRedis connects once and returns the shared client. A missing
// REDIS_ADD means caching is disabled; callers get nil and skip it.
func InitRedis() *redis.Client {
	redisOnce.Do(func() {
		addr := os.Getenv("REDIS_ADD")
		if addr == "" {
			logrus.Warn("REDIS_ADD not set, search caching disabled")
			return
		}

		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASS"),
			DB:       0,
		})

		if _, err := client.Ping(Ctx).Result(); err != nil {
			logrus.Fatalf("Failed to connect to Redis: %v", err)
		}
		logrus.Info("Connected to Redis")
		redisClient = client
	})
	return redisClient
}
