package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CacheService memoizes upstream API responses in Redis with a TTL. Values
// are stored as JSON.
type CacheService struct {
	client     *redis.Client
	defaultTTL time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client:     client,
		defaultTTL: defaultTTL,
	}
}

func (s *CacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}

	if expiration <= 0 {
		expiration = s.defaultTTL
	}

	if err := s.client.Set(ctx, key, data, expiration).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("key not found")
		}
		return fmt.Errorf("failed to get cache: %w", err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}

	return nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete cache: %w", err)
	}
	return nil
}

// Convenience methods without context (use background context). These
// satisfy providers.CacheProvider.
func (s *CacheService) SetSimple(key string, value interface{}, expiration time.Duration) error {
	return s.Set(context.Background(), key, value, expiration)
}

func (s *CacheService) GetSimple(key string, dest interface{}) error {
	return s.Get(context.Background(), key, dest)
}

// SetWithRetry retries transient cache writes with linear backoff.
func (s *CacheService) SetWithRetry(ctx context.Context, key string, value interface{}, expiration time.Duration, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = s.Set(ctx, key, value, expiration); err == nil {
			return nil
		}
		logrus.Warnf("Cache set failed (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(time.Millisecond * 100 * time.Duration(i+1))
	}
	return err
}

// Flush clears all cache entries.
func (s *CacheService) Flush() error {
	return s.client.FlushDB(context.Background()).Err()
}

// Cache key generators
func ReportCacheKey(weekStart time.Time) string {
	return fmt.Sprintf("report:%s", weekStart.Format("2006-01-02"))
}

func LatestReportCacheKey() string {
	return "report:latest"
}
