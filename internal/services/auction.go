package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
	"github.com/k355l3r-5yndr0m3/auction/internal/models"
)

// Error variables
var (
	ErrAuctionNotFound = errors.New("no such auction")
	ErrTitleTaken      = errors.New("title already exists")
	ErrNotSeller       = errors.New("not a seller")
	ErrNotBidder       = errors.New("not a bidder")
)

// AuctionReader defines read-only operations for auctions.
type AuctionReader interface {
	GetByID(ctx context.Context, id int64) (*models.AuctionDB, error)
	GetByTitle(ctx context.Context, title string) (*models.AuctionDB, error)
	Search(ctx context.Context, query *string) ([]models.AuctionDB, error)
}

// AuctionWriter defines write operations for auctions.
type AuctionWriter interface {
	Save(ctx context.Context, title, description string, sellerID int64) (int64, error)
	UpdateBid(ctx context.Context, auctionID, bidderID, amount int64) (bool, error)
}

// AuctionCache caches auctions by id.
type AuctionCache interface {
	Get(ctx context.Context, id int64) (*models.AuctionDB, error)
	Set(ctx context.Context, auction *models.AuctionDB) error
	Invalidate(ctx context.Context, id int64) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AuctionService handles listing, search and bidding. Every state-changing
// method takes the acting identity explicitly; there is no ambient user.
type AuctionService struct {
	reader      AuctionReader
	writer      AuctionWriter
	cache       AuctionCache
	kafkaWriter KafkaWriter
}

// NewAuctionService creates a new AuctionService.
func NewAuctionService(
	reader AuctionReader,
	writer AuctionWriter,
	cache AuctionCache,
	kafkaWriter KafkaWriter,
) *AuctionService {
	return &AuctionService{
		reader:      reader,
		writer:      writer,
		cache:       cache,
		kafkaWriter: kafkaWriter,
	}
}

// Create lists a new auction for the acting seller. Titles are unique; a
// duplicate fails with ErrTitleTaken. The new auction starts at a current
// bid of 0 with no leading bidder.
func (s *AuctionService) Create(ctx context.Context, actor models.Identity, title, description string) (*models.AuctionDB, error) {
	switch actor.Role {
	case models.RoleSeller:
		// allowed
	case models.RoleAdmin, models.RoleBidder:
		return nil, ErrNotSeller
	default:
		return nil, ErrNotSeller
	}

	if title == "" {
		return nil, ErrMissingFields
	}

	existing, err := s.reader.GetByTitle(ctx, title)
	if err != nil {
		logger.Log.Errorw("failed to check title exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("title already exists", "title", title)
		return nil, ErrTitleTaken
	}

	id, err := s.writer.Save(ctx, title, description, actor.UserID)
	if err != nil {
		logger.Log.Errorw("failed to save auction", "err", err)
		return nil, err
	}

	return &models.AuctionDB{
		ID:          id,
		Title:       title,
		Description: description,
		CurrentBid:  0,
		SellerID:    actor.UserID,
	}, nil
}

// Get returns the auction with the given id, served from the cache when
// possible. Fails with ErrAuctionNotFound if it does not exist.
func (s *AuctionService) Get(ctx context.Context, id int64) (*models.AuctionDB, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	auction, err := s.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get auction", "id", id, "err", err)
		return nil, err
	}
	if auction == nil {
		return nil, ErrAuctionNotFound
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, auction); err != nil {
			logger.Log.Warnw("failed to cache auction", "id", id, "err", err)
		}
	}

	return auction, nil
}

// Search returns auctions matching the query. A nil query returns all
// auctions ordered by title.
func (s *AuctionService) Search(ctx context.Context, query *string) ([]models.AuctionDB, error) {
	return s.reader.Search(ctx, query)
}

// PlaceBid records a bid by the acting bidder. A bid is accepted iff it
// strictly exceeds the stored current bid; the comparison and the write
// happen in one compare-and-swap statement, so concurrent bids are resolved
// by the database and the lower one loses quietly. A too-low bid is not an
// error: the call returns the unchanged auction with accepted=false,
// matching the behavior this service replaces.
func (s *AuctionService) PlaceBid(ctx context.Context, actor models.Identity, auctionID, amount int64) (*models.AuctionDB, bool, error) {
	switch actor.Role {
	case models.RoleBidder:
		// allowed
	case models.RoleAdmin, models.RoleSeller:
		return nil, false, ErrNotBidder
	default:
		return nil, false, ErrNotBidder
	}

	auction, err := s.reader.GetByID(ctx, auctionID)
	if err != nil {
		logger.Log.Errorw("failed to get auction", "id", auctionID, "err", err)
		return nil, false, err
	}
	if auction == nil {
		return nil, false, ErrAuctionNotFound
	}

	accepted, err := s.writer.UpdateBid(ctx, auctionID, actor.UserID, amount)
	if err != nil {
		logger.Log.Errorw("failed to update bid", "id", auctionID, "err", err)
		return nil, false, err
	}

	if !accepted {
		return auction, false, nil
	}

	auction.CurrentBid = amount
	auction.BidderID = sql.NullInt64{Int64: actor.UserID, Valid: true}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, auctionID); err != nil {
			logger.Log.Warnw("failed to invalidate cached auction", "id", auctionID, "err", err)
		}
	}

	s.publishBidEvent(ctx, models.BidEvent{
		EventID:   uuid.NewString(),
		AuctionID: auctionID,
		BidderID:  actor.UserID,
		Amount:    amount,
		Timestamp: time.Now().Unix(),
	})

	return auction, true, nil
}

// publishBidEvent publishes an accepted bid to Kafka, best effort.
func (s *AuctionService) publishBidEvent(ctx context.Context, event models.BidEvent) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "event_id", event.EventID)
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("Failed to marshal bid event for Kafka", "event_id", event.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("Failed to publish bid event to Kafka", "event_id", event.EventID, "error", err)
	} else {
		logger.Log.Infow("Bid event published to Kafka", "event_id", event.EventID, "amount", event.Amount)
	}
}
