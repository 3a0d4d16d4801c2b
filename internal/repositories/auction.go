package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/k355l3r-5yndr0m3/auction/internal/logger"
	"github.com/k355l3r-5yndr0m3/auction/internal/models"
)

// AuctionReadRepository handles auction lookups and search.
type AuctionReadRepository struct {
	db *sqlx.DB
}

func NewAuctionReadRepository(db *sqlx.DB) *AuctionReadRepository {
	return &AuctionReadRepository{db: db}
}

// GetByID returns the auction with the given id, or nil if none exists.
func (r *AuctionReadRepository) GetByID(ctx context.Context, id int64) (*models.AuctionDB, error) {
	const query = `
		SELECT id, title, description, current_bid, seller_id, bidder_id
		FROM auctions
		WHERE id = $1
	`

	var auction models.AuctionDB
	err := r.db.GetContext(ctx, &auction, query, id)

	logger.Log.Infow("auction read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &auction, nil
}

// GetByTitle returns the auction with the given title, or nil if none exists.
func (r *AuctionReadRepository) GetByTitle(ctx context.Context, title string) (*models.AuctionDB, error) {
	const query = `
		SELECT id, title, description, current_bid, seller_id, bidder_id
		FROM auctions
		WHERE title = $1
	`

	var auction models.AuctionDB
	err := r.db.GetContext(ctx, &auction, query, title)

	logger.Log.Infow("auction read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{title},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &auction, nil
}

// Search returns auctions matching the query. A nil query returns every
// auction ordered by title ascending; a non-nil query returns auctions whose
// title contains it as a case-sensitive substring, in no particular order.
func (r *AuctionReadRepository) Search(ctx context.Context, query *string) ([]models.AuctionDB, error) {
	var (
		stmt string
		args []any
	)
	if query == nil {
		stmt = `
			SELECT id, title, description, current_bid, seller_id, bidder_id
			FROM auctions
			ORDER BY title ASC
		`
	} else {
		stmt = `
			SELECT id, title, description, current_bid, seller_id, bidder_id
			FROM auctions
			WHERE position($1 in title) > 0
		`
		args = append(args, *query)
	}

	auctions := []models.AuctionDB{}
	err := r.db.SelectContext(ctx, &auctions, stmt, args...)

	logger.Log.Infow("auction search",
		"query", strings.Join(strings.Fields(stmt), " "),
		"args", args,
		"result", len(auctions),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return auctions, nil
}

// AuctionWriteRepository handles auction creation and bid updates.
type AuctionWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewAuctionWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *AuctionWriteRepository {
	return &AuctionWriteRepository{db: db, txGetter: txGetter}
}

func (r *AuctionWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new auction with no bids and returns its generated id.
func (r *AuctionWriteRepository) Save(ctx context.Context, title, description string, sellerID int64) (int64, error) {
	const query = `
		INSERT INTO auctions (title, description, current_bid, seller_id)
		VALUES ($1, $2, 0, $3)
		RETURNING id
	`
	args := []any{title, description, sellerID}

	var id int64
	err := sqlx.GetContext(ctx, r.executor(ctx), &id, query, args...)

	logger.Log.Infow("auction write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", id,
		"error", err,
	)

	return id, err
}

// UpdateBid installs a new leading bid in a single compare-and-swap
// statement. The predicate runs inside the database, so two concurrent bids
// on the same auction are serialized there and the lower one is a no-op.
// It returns whether the bid was accepted.
func (r *AuctionWriteRepository) UpdateBid(ctx context.Context, auctionID, bidderID, amount int64) (bool, error) {
	const query = `
		UPDATE auctions
		SET current_bid = $1, bidder_id = $2
		WHERE id = $3 AND current_bid < $1
	`
	args := []any{amount, bidderID, auctionID}

	res, err := r.executor(ctx).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("auction write",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
