package models

import "database/sql"

// AuctionDB represents an auction record in the database.
//
// CurrentBid only ever moves upward: a bid is accepted iff it strictly
// exceeds the stored value. BidderID is set iff at least one bid has been
// accepted. Sellers and bidders are referenced by id; there is no implicit
// relation loading.
type AuctionDB struct {
	ID          int64         `json:"id" db:"id"`                   // Primary key
	Title       string        `json:"title" db:"title"`             // Unique title
	Description string        `json:"description" db:"description"` // Free text
	CurrentBid  int64         `json:"current_bid" db:"current_bid"` // Running maximum of accepted bids, 0 initially
	SellerID    int64         `json:"seller_id" db:"seller_id"`     // Immutable after creation
	BidderID    sql.NullInt64 `json:"bidder_id" db:"bidder_id"`     // Current leading bidder, absent until first accepted bid
}

// LeadingBidder returns the leading bidder id and whether one exists.
func (a *AuctionDB) LeadingBidder() (int64, bool) {
	return a.BidderID.Int64, a.BidderID.Valid
}
