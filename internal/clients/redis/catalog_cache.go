package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/google/uuid"

	"github.com/yungbote/kitchenlink-backend/internal/logger"
	"github.com/yungbote/kitchenlink-backend/internal/types"
)

// CatalogCache is a read-through cache for the immutable reference data
// (tags, ingredients). Misses and redis failures fall back to the store;
// the catalog service also runs with a nil cache.
type CatalogCache interface {
	GetTags(ctx context.Context) ([]*types.Tag, bool)
	SetTags(ctx context.Context, tags []*types.Tag)
	GetIngredient(ctx context.Context, id uuid.UUID) (*types.Ingredient, bool)
	SetIngredient(ctx context.Context, ingredient *types.Ingredient)
	Close() error
}

type catalogCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewCatalogCache(log *logger.Logger) (CatalogCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &catalogCache{
		log: log.With("service", "CatalogCache"),
		rdb: rdb,
		ttl: time.Hour,
	}, nil
}

const (
	tagsKey          = "catalog:tags"
	ingredientPrefix = "catalog:ingredient:"
)

func (c *catalogCache) GetTags(ctx context.Context) ([]*types.Tag, bool) {
	raw, err := c.rdb.Get(ctx, tagsKey).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("tag cache read failed", "error", err)
		}
		return nil, false
	}
	var tags []*types.Tag
	if err := json.Unmarshal(raw, &tags); err != nil {
		c.log.Warn("tag cache entry corrupt, dropping", "error", err)
		_ = c.rdb.Del(ctx, tagsKey).Err()
		return nil, false
	}
	return tags, true
}

func (c *catalogCache) SetTags(ctx context.Context, tags []*types.Tag) {
	raw, err := json.Marshal(tags)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, tagsKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("tag cache write failed", "error", err)
	}
}

func (c *catalogCache) GetIngredient(ctx context.Context, id uuid.UUID) (*types.Ingredient, bool) {
	raw, err := c.rdb.Get(ctx, ingredientPrefix+id.String()).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("ingredient cache read failed", "error", err)
		}
		return nil, false
	}
	var ingredient types.Ingredient
	if err := json.Unmarshal(raw, &ingredient); err != nil {
		_ = c.rdb.Del(ctx, ingredientPrefix+id.String()).Err()
		return nil, false
	}
	return &ingredient, true
}

func (c *catalogCache) SetIngredient(ctx context.Context, ingredient *types.Ingredient) {
	if ingredient == nil {
		return
	}
	raw, err := json.Marshal(ingredient)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, ingredientPrefix+ingredient.ID.String(), raw, c.ttl).Err(); err != nil {
		c.log.Warn("ingredient cache write failed", "error", err)
	}
}

func (c *catalogCache) Close() error {
	return c.rdb.Close()
}
