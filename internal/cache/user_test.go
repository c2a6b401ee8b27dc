package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/user-directory/internal/models"
)

func setupRedisContainer(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "6379")

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%d", host, port.Int()),
	})
	assert.NoError(t, rdb.Ping(context.Background()).Err())

	teardown := func() {
		rdb.Close()
		container.Terminate(context.Background())
	}

	return rdb, teardown
}

func TestUserViewCache(t *testing.T) {
	rdb, teardown := setupRedisContainer(t)
	defer teardown()

	c := NewUserViewCache(rdb, time.Minute)
	ctx := context.Background()

	created := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	view := models.UserView{
		UserID:    1,
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "a@x.com",
		Created:   models.DateTimePair(created),
		Deleted:   false,
	}

	// Miss before set
	got, err := c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// Round trip
	assert.NoError(t, c.Set(ctx, view))

	got, err = c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, view.UserID, got.UserID)
	assert.Equal(t, view.FirstName, got.FirstName)
	assert.Equal(t, view.LastName, got.LastName)
	assert.Equal(t, view.Email, got.Email)
	assert.Equal(t, view.Deleted, got.Deleted)
	assert.True(t, time.Time(got.Created).Equal(created))

	// Invalidation drops the entry
	assert.NoError(t, c.Invalidate(ctx, 1))

	got, err = c.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Nil(t, got)

	// Invalidating a missing key is fine
	assert.NoError(t, c.Invalidate(ctx, 999))
}
