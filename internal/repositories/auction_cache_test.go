package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/k355l3r-5yndr0m3/auction/internal/models"
)

func TestAuctionCacheRepository(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7.0-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp"),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)
	defer redisC.Terminate(ctx)

	host, err := redisC.Host(ctx)
	assert.NoError(t, err)
	port, err := redisC.MappedPort(ctx, "6379")
	assert.NoError(t, err)

	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port.Port()),
	})
	defer rdb.Close()

	err = rdb.Ping(ctx).Err()
	assert.NoError(t, err)

	repo := NewAuctionCacheRepository(rdb, 2*time.Second)

	auction := &models.AuctionDB{
		ID:          5,
		Title:       "Lamp",
		Description: "an old lamp",
		CurrentBid:  10,
		SellerID:    1,
		BidderID:    sql.NullInt64{Int64: 2, Valid: true},
	}

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := repo.Get(ctx, 5)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("set then get", func(t *testing.T) {
		err := repo.Set(ctx, auction)
		assert.NoError(t, err)

		got, err := repo.Get(ctx, 5)
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Equal(t, auction, got)
	})

	t.Run("invalidate drops the entry", func(t *testing.T) {
		err := repo.Set(ctx, auction)
		assert.NoError(t, err)

		err = repo.Invalidate(ctx, 5)
		assert.NoError(t, err)

		got, err := repo.Get(ctx, 5)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("cached value expires", func(t *testing.T) {
		err := repo.Set(ctx, auction)
		assert.NoError(t, err)

		time.Sleep(3 * time.Second)

		got, err := repo.Get(ctx, 5)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})
}
