package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"disha/internal/model"
)

// CatalogCache is a cache-aside layer over the course catalog. The
// catalog is static between seeding runs, so a generous TTL is fine.
type CatalogCache interface {
	SetCourses(ctx context.Context, courses []*model.Course) error
	GetCourses(ctx context.Context) ([]*model.Course, error)
	Invalidate(ctx context.Context) error
}

type catalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCatalogCache(client *redis.Client) CatalogCache {
	return &catalogCache{
		client: client,
		ttl:    time.Hour,
	}
}

const catalogKey = "catalog:courses"

func (c *catalogCache) SetCourses(ctx context.Context, courses []*model.Course) error {
	data, err := json.Marshal(courses)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey, data, c.ttl).Err()
}

func (c *catalogCache) GetCourses(ctx context.Context) ([]*model.Course, error) {
	data, err := c.client.Get(ctx, catalogKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var courses []*model.Course
	if err := json.Unmarshal([]byte(data), &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *catalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
