package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"society-connect-http-service/config"

	"github.com/go-redis/redis/v8"
)

// 未读数缓存过期时间，作为缓存失效遗漏时的兜底
const unreadCountTTL = 5 * time.Minute

// RedisService handles Redis operations
type RedisService struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisService creates a new Redis service
func NewRedisService(cfg *config.Config) *RedisService {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: "", // No password set
		DB:       cfg.RedisDB,
	})

	ctx := context.Background()

	return &RedisService{
		Client: client,
		Ctx:    ctx,
	}
}

// Set sets a key-value pair in Redis with expiration
func (s *RedisService) Set(key string, value interface{}, expiration time.Duration) error {
	jsonValue, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return s.Client.Set(s.Ctx, key, jsonValue, expiration).Err()
}

// Get gets a value from Redis by key
func (s *RedisService) Get(key string, dest interface{}) error {
	val, err := s.Client.Get(s.Ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(val), dest)
}

// Delete deletes a key from Redis
func (s *RedisService) Delete(key string) error {
	return s.Client.Del(s.Ctx, key).Err()
}

// CacheUnreadCount 缓存用户的未读通知数
func (s *RedisService) CacheUnreadCount(userID uint, count int64) error {
	key := unreadCountKey(userID)
	return s.Client.Set(s.Ctx, key, count, unreadCountTTL).Err()
}

// GetUnreadCount 读取用户未读通知数缓存
func (s *RedisService) GetUnreadCount(userID uint) (int64, error) {
	key := unreadCountKey(userID)
	return s.Client.Get(s.Ctx, key).Int64()
}

// InvalidateUnreadCount 使用户未读通知数缓存失效
func (s *RedisService) InvalidateUnreadCount(userID uint) error {
	key := unreadCountKey(userID)
	return s.Client.Del(s.Ctx, key).Err()
}

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("notif:unread:%d", userID)
}
