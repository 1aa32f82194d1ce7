package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// ConnectRedis returns nil when Redis is not reachable. Callers then run
// without the menu cache and with in-process notification fan-out only.
func ConnectRedis(ctx context.Context, c *Config) *redis.Client {
	var opt *redis.Options
	if c.RedisURL != "" {
		parsed, err := redis.ParseURL(c.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Failed to parse Redis URL, running without cache")
			return nil
		}
		opt = parsed
	} else {
		opt = &redis.Options{
			Addr:     c.RedisAddr,
			Password: c.RedisPassword,
			DB:       0,
		}
	}

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Warn("Redis connection failed, running without cache")
		_ = client.Close()
		return nil
	}

	log.Info("Redis connected")
	return client
}
