package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	// defaultOperationTimeout is the timeout for individual Redis operations
	defaultOperationTimeout = 5 * time.Second

	publishedSiteTTL = 1 * time.Hour
	draftSiteTTL     = 5 * time.Minute
)

var ErrCacheMiss = errors.New("cache miss")

type Cache struct {
	client  *redis.Client
	enabled bool
}

func NewCache(addr string, enable bool) *Cache {
	if !enable {
		return &Cache{enabled: false}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     "",
		DB:           0,
		PoolSize:     10,
		MinIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		_ = client.Close()
		return &Cache{enabled: false}
	}

	return &Cache{
		client:  client,
		enabled: true,
	}
}

// operationContext creates a context with timeout for Redis operations
func (c *Cache) operationContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultOperationTimeout)
}

func (c *Cache) Set(key string, value interface{}, expiration time.Duration) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, jsonData, expiration).Err()
}

func (c *Cache) Get(key string, dest interface{}) error {
	if !c.enabled {
		return ErrCacheMiss
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return ErrCacheMiss
	} else if err != nil {
		return err
	}
	return json.Unmarshal([]byte(val), dest)
}

func (c *Cache) Delete(key string) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.Del(ctx, key).Err()
}

func (c *Cache) DeletePattern(pattern string) error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *Cache) FlushAll() error {
	if !c.enabled {
		return nil
	}

	ctx, cancel := c.operationContext()
	defer cancel()

	return c.client.FlushAll(ctx).Err()
}

func (c *Cache) Close() error {
	if !c.enabled {
		return nil
	}
	return c.client.Close()
}

// CachePublishedSite stores the published site document for a clinic. Published
// documents only change on publish, so they get a long TTL.
func (c *Cache) CachePublishedSite(clinicID uint, site interface{}) error {
	return c.Set(fmt.Sprintf("site:published:%d", clinicID), site, publishedSiteTTL)
}

func (c *Cache) GetCachedPublishedSite(clinicID uint, dest interface{}) error {
	return c.Get(fmt.Sprintf("site:published:%d", clinicID), dest)
}

func (c *Cache) InvalidatePublishedSite(clinicID uint) error {
	return c.Delete(fmt.Sprintf("site:published:%d", clinicID))
}

// CacheDraftSite stores the saved-but-unpublished document used by preview.
func (c *Cache) CacheDraftSite(clinicID uint, site interface{}) error {
	return c.Set(fmt.Sprintf("site:draft:%d", clinicID), site, draftSiteTTL)
}

func (c *Cache) GetCachedDraftSite(clinicID uint, dest interface{}) error {
	return c.Get(fmt.Sprintf("site:draft:%d", clinicID), dest)
}

func (c *Cache) InvalidateDraftSite(clinicID uint) error {
	return c.Delete(fmt.Sprintf("site:draft:%d", clinicID))
}

func (c *Cache) InvalidateSite(clinicID uint) error {
	if err := c.InvalidateDraftSite(clinicID); err != nil {
		return err
	}
	return c.InvalidatePublishedSite(clinicID)
}
