package cache

import (
	"os"
	"time"

	"github.com/gomodule/redigo/redis"
	_ "github.com/joho/godotenv/autoload"
)

func dial() (redis.Conn, error) {
	var opts []redis.DialOption
	if pass := os.Getenv("REDIS_PASSWORD"); pass != "" {
		opts = append(opts, redis.DialPassword(pass))
	}
	return redis.Dial("tcp", os.Getenv("REDIS_URL"), opts...)
}

func CreateRedisPool() *redis.Pool {
	return &redis.Pool{
		MaxIdle:     10,
		IdleTimeout: 60 * time.Second,
		Dial:        dial,
	}
}
