package models

// BidEvent is the record published to Kafka for every accepted bid.
type BidEvent struct {
	EventID   string `json:"event_id"`   // UUID of the event
	AuctionID int64  `json:"auction_id"` // Auction the bid was placed on
	BidderID  int64  `json:"bidder_id"`  // User now leading the auction
	Amount    int64  `json:"amount"`     // Accepted bid amount
	Timestamp int64  `json:"timestamp"`  // Unix seconds
}
