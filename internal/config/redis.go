package config

import (
	"context"
	"crypto/tls"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects the client backing the response cache and the
// token-bucket rate limiter. Address comes from REDIS_ADDR, or
// REDIS_HOST/REDIS_PORT when both are set; REDIS_PASSWORD, REDIS_DB and
// REDIS_TLS are optional. Redis is an optimization here, not a dependency:
// when the ping fails the constructor returns nil and both middlewares
// degrade to pass-through, so search and status keep serving.
func NewRedisClient() *redis.Client {
	addr := envStr("REDIS_ADDR", "")
	if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
		addr = net.JoinHostPort(host, port)
	}
	if addr == "" {
		addr = "localhost:6379"
	}

	var tlsConf *tls.Config
	if envBool("REDIS_TLS", false) {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    envStr("REDIS_PASSWORD", ""),
		DB:          envInt("REDIS_DB", 0),
		DialTimeout: 2 * time.Second,
		TLSConfig:   tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
