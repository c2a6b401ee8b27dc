package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/user-directory/internal/models"
)

// UserViewCache keeps public views of user records in Redis so repeated
// reads of the same record skip the database. Entries are invalidated by
// the service on every mutation, the TTL only bounds staleness after a
// missed invalidation.
type UserViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewUserViewCache creates a cache over the given Redis client.
func NewUserViewCache(rdb *redis.Client, ttl time.Duration) *UserViewCache {
	return &UserViewCache{rdb: rdb, ttl: ttl}
}

func viewKey(userID int64) string {
	return fmt.Sprintf("user:view:%d", userID)
}

// Get returns the cached view for a user id, or (nil, nil) on a miss.
func (c *UserViewCache) Get(ctx context.Context, userID int64) (*models.UserView, error) {
	data, err := c.rdb.Get(ctx, viewKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var view models.UserView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}

	return &view, nil
}

// Set stores a view under its user id.
func (c *UserViewCache) Set(ctx context.Context, view models.UserView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, viewKey(view.UserID), data, c.ttl).Err()
}

// Invalidate drops the cached view for a user id. Dropping a missing key
// is not an error.
func (c *UserViewCache) Invalidate(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, viewKey(userID)).Err()
}
