package database

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	RedisURI    string
	RedisCtx    = context.Background()
)

// InitRedis เชื่อมต่อ Redis ใช้เป็น daily status cache และคิวงาน sync
func InitRedis() {
	RedisURI = os.Getenv("REDIS_URI")
	if RedisURI == "" {
		RedisURI = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     RedisURI,
		Password: "", // ถ้าไม่มีรหัสผ่าน
		DB:       0,
	})
	if _, err := RedisClient.Ping(RedisCtx).Result(); err != nil {
		panic("❌ Failed to connect Redis: " + err.Error())
	}
	log.Println("✅ Redis connected successfully")
}
