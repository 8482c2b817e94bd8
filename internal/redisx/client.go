package redisx

import (
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

func New(host, port, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        net.JoinHostPort(host, port),
		Password:    password,
		DialTimeout: 2 * time.Second,
	})
}
