package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
	"github.com/k355l3r-5yndr0m3/auction/internal/models"
)

// AuctionCacheRepository caches auction records by id in Redis.
type AuctionCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for cached auctions
}

// NewAuctionCacheRepository creates a new cache repository with the given TTL.
func NewAuctionCacheRepository(client *redis.Client, expiration time.Duration) *AuctionCacheRepository {
	return &AuctionCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func auctionKey(id int64) string {
	return fmt.Sprintf("auction:%d", id)
}

// Get fetches a cached auction. Returns nil on a cache miss.
func (r *AuctionCacheRepository) Get(ctx context.Context, id int64) (*models.AuctionDB, error) {
	key := auctionKey(id)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow("auction cache get",
			"key", key,
			"error", err,
		)
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var auction models.AuctionDB
	if err := json.Unmarshal([]byte(val), &auction); err != nil {
		logger.Log.Infow("auction cache get",
			"key", key,
			"value", val,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow("auction cache get",
		"key", key,
		"result", auction.ID,
		"error", nil,
	)

	return &auction, nil
}

// Set caches an auction with expiration.
func (r *AuctionCacheRepository) Set(ctx context.Context, auction *models.AuctionDB) error {
	key := auctionKey(auction.ID)

	data, err := json.Marshal(auction)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow("auction cache set",
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}

// Invalidate drops a cached auction, typically after an accepted bid.
func (r *AuctionCacheRepository) Invalidate(ctx context.Context, id int64) error {
	key := auctionKey(id)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("auction cache invalidate",
		"key", key,
		"error", err,
	)

	return err
}
