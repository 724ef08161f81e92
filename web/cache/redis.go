// Package cache connects the shop to Redis: an external server when one is
// configured, an embedded miniredis otherwise. It backs server-side sessions
// and the login rate limiter.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/tiendaweb/tienda/logger"
)

var (
	client    *redis.Client
	miniRedis *miniredis.Miniredis
)

// InitRedis connects to redisAddr, or starts an embedded server when it is empty.
func InitRedis(ctx context.Context, redisAddr string) error {
	if redisAddr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start embedded Redis: %w", err)
		}
		miniRedis = mr
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		logger.Info("Embedded Redis started on", mr.Addr())
		return nil
	}

	client = redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		client = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", redisAddr, err)
	}
	logger.Info("Connected to external Redis at", redisAddr)
	return nil
}

func GetClient() *redis.Client {
	return client
}

func IsEmbedded() bool {
	return miniRedis != nil
}

// Close closes the client and stops the embedded server if running.
func Close() error {
	var err error
	if client != nil {
		err = client.Close()
		client = nil
	}
	if miniRedis != nil {
		miniRedis.Close()
		miniRedis = nil
	}
	return err
}

// Incr increments key and starts its expiry window on the first hit.
func Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if client == nil {
		return 0, errors.New("redis client not initialized")
	}
	n, err := client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

// TTL returns the remaining lifetime of key.
func TTL(ctx context.Context, key string) (time.Duration, error) {
	if client == nil {
		return 0, errors.New("redis client not initialized")
	}
	return client.TTL(ctx, key).Result()
}
