package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/davitran/pressroom/internal/platform/constants"
)

// RedisCache implements [Cache] with a short TTL so a stale entry can
// only outlive a write by a few seconds even if invalidation is missed.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (cache *RedisCache) GetArticle(context context.Context, id string) (*Article, error) {
	payload, err := cache.client.Get(context, cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache: get article: %w", err)
	}

	article := &Article{}
	if err := json.Unmarshal(payload, article); err != nil {
		return nil, fmt.Errorf("cache: decode article: %w", err)
	}

	return article, nil
}

func (cache *RedisCache) SetArticle(context context.Context, article *Article) error {
	payload, err := json.Marshal(article)
	if err != nil {
		return fmt.Errorf("cache: encode article: %w", err)
	}

	if err := cache.client.Set(context, cacheKey(article.ID), payload, constants.ArticleCacheTTL).Err(); err != nil {
		return fmt.Errorf("cache: set article: %w", err)
	}
	return nil
}

func (cache *RedisCache) DropArticle(context context.Context, id string) error {
	if err := cache.client.Del(context, cacheKey(id)).Err(); err != nil {
		return fmt.Errorf("cache: drop article: %w", err)
	}
	return nil
}

func cacheKey(id string) string {
	return constants.RedisPrefixArticle + id
}
