package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/spf13/viper"
)

// InitRedis connects to redis. It returns nil when redis is unreachable so the
// API can still serve reads; callers that need redis must check for nil.
func InitRedis(ctx context.Context) *redis.Client {
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", "6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.dial_timeout", 5*time.Second)

	addr := viper.GetString("redis.host") + ":" + viper.GetString("redis.port")
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    viper.GetString("redis.password"),
		DB:          viper.GetInt("redis.db"),
		DialTimeout: viper.GetDuration("redis.dial_timeout"),
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] connection to %s failed, continuing without redis: %v", addr, err)
		rdb.Close()
		return nil
	}

	log.Printf("[REDIS] connection established to %s", addr)
	return rdb
}
