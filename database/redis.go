package database

import (
	"context"
	"fmt"
	"log"

	"api/config"

	"github.com/redis/go-redis/v9"
)

var REDIS *redis.Client

// InitRedis initializes the Redis client used for response caching
func InitRedis() {
	REDIS = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", config.RedisHost, config.RedisPort),
		Password: config.RedisPassword,
	})

	if err := REDIS.Ping(context.Background()).Err(); err != nil {
		log.Printf("Redis unavailable, caching disabled: %v", err)
	}
}
