package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"user-center/internal/dto"
	"user-center/internal/models"
	"user-center/pkg/metrics"

	"github.com/go-redis/redis/v8"
)

const (
	// DefaultKeyPrefix 推荐用户缓存键前缀
	DefaultKeyPrefix = "compare-friends:user:recommend"
	// DefaultTTL 推荐用户缓存过期时间
	DefaultTTL = 24 * time.Hour
)

// UserPage 推荐用户分页
type UserPage = dto.Pagination[models.SafetyUser]

// PaginationCache 推荐用户分页缓存
//
// 按用户ID缓存, 用户数据修改后不会主动失效, 由过期时间或定时任务刷新
type PaginationCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewPaginationCache 创建分页缓存
func NewPaginationCache(client *redis.Client, prefix string, ttl time.Duration) *PaginationCache {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &PaginationCache{client: client, prefix: prefix, ttl: ttl}
}

// Key 缓存键
func (c *PaginationCache) Key(userID int64) string {
	return fmt.Sprintf("%s:%d", c.prefix, userID)
}

// Get 读取缓存, 未命中时返回 false
func (c *PaginationCache) Get(ctx context.Context, userID int64) (*UserPage, bool, error) {
	data, err := c.client.Get(ctx, c.Key(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("读取推荐缓存失败: %w", err)
	}

	var page UserPage
	if err := json.Unmarshal(data, &page); err != nil {
		metrics.CacheRequests.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("解析推荐缓存失败: %w", err)
	}
	metrics.CacheRequests.WithLabelValues("hit").Inc()
	return &page, true, nil
}

// Set 写入缓存
func (c *PaginationCache) Set(ctx context.Context, userID int64, page *UserPage) error {
	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("序列化推荐缓存失败: %w", err)
	}
	if err := c.client.Set(ctx, c.Key(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入推荐缓存失败: %w", err)
	}
	return nil
}

// TTL 缓存过期时间
func (c *PaginationCache) TTL() time.Duration {
	return c.ttl
}
