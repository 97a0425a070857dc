package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"webmatic-api/pkg/metrics"
)

// ErrCacheMiss 缓存未命中
var ErrCacheMiss = errors.New("缓存未命中")

// Cache 读穿透缓存,内置singleflight合并并发回源
type Cache struct {
	rdb   *redis.Client
	sf    singleflight.Group
	ttl   time.Duration
	label string
}

// NewCache 创建缓存
func NewCache(client *Client, label string, ttl time.Duration) *Cache {
	return &Cache{
		rdb:   client.RDB(),
		ttl:   ttl,
		label: label,
	}
}

// Get 读取缓存并反序列化到dest
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			metrics.CacheHitsTotal.WithLabelValues(c.label, "miss").Inc()
			return ErrCacheMiss
		}
		return fmt.Errorf("读取缓存失败: %w", err)
	}

	metrics.CacheHitsTotal.WithLabelValues(c.label, "hit").Inc()
	return json.Unmarshal(data, dest)
}

// Set 写入缓存
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("序列化缓存值失败: %w", err)
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

// Delete 删除缓存
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// GetOrLoad 读缓存,未命中时通过loader回源并回填。
// 并发的同键回源会被singleflight合并为一次。
func (c *Cache) GetOrLoad(ctx context.Context, key string, dest any, loader func(ctx context.Context) (any, error)) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	} else if !errors.Is(err, ErrCacheMiss) {
		return err
	}

	result, err, _ := c.sf.Do(key, func() (any, error) {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		// 回填失败不影响本次读取
		_ = c.Set(ctx, key, value)
		return value, nil
	})
	if err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化回源结果失败: %w", err)
	}
	return json.Unmarshal(data, dest)
}
