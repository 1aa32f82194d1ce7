package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"food-delivery/models"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const menuCacheTTL = 5 * time.Minute

// RedisMenuCache caches rendered restaurant menus as JSON. A nil client
// turns every call into a miss.
type RedisMenuCache struct {
	client *redis.Client
}

func NewRedisMenuCache(client *redis.Client) *RedisMenuCache {
	return &RedisMenuCache{client: client}
}

func menuCacheKey(restaurantID int64) string {
	return fmt.Sprintf("restaurant_menu_%d", restaurantID)
}

func (c *RedisMenuCache) GetMenu(ctx context.Context, restaurantID int64) (*models.RestaurantMenu, bool) {
	if c.client == nil {
		return nil, false
	}

	cached, err := c.client.Get(ctx, menuCacheKey(restaurantID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).WithField("restaurant_id", restaurantID).Warn("Menu cache read failed")
		}
		return nil, false
	}

	var menu models.RestaurantMenu
	if err := json.Unmarshal([]byte(cached), &menu); err != nil {
		log.WithError(err).WithField("restaurant_id", restaurantID).Warn("Discarding corrupt menu cache entry")
		c.InvalidateMenu(ctx, restaurantID)
		return nil, false
	}
	return &menu, true
}

func (c *RedisMenuCache) SetMenu(ctx context.Context, menu *models.RestaurantMenu) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(menu)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, menuCacheKey(menu.RestaurantID), data, menuCacheTTL).Err(); err != nil {
		log.WithError(err).WithField("restaurant_id", menu.RestaurantID).Warn("Menu cache write failed")
	}
}

func (c *RedisMenuCache) InvalidateMenu(ctx context.Context, restaurantID int64) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, menuCacheKey(restaurantID)).Err(); err != nil {
		log.WithError(err).WithField("restaurant_id", restaurantID).Warn("Menu cache invalidation failed")
	}
}
