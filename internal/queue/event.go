// Package queue defines message payloads exchanged over the message
// broker, the publisher that emits them and the background consumer
// that records them. Events are observational: publishing failures
// never affect the request that triggered them, and nothing consumes
// an event to change auction state.
package queue

// BidPlacedEvent is published after a bid row has been committed. It
// carries enough for downstream logging or analytics without a trip
// back to the primary database.
type BidPlacedEvent struct {
	EventID   string `json:"event_id"`
	BidID     int64  `json:"bid_id"`
	AuctionID int64  `json:"auction_id"`
	UserID    int64  `json:"user_id"`
	Amount    int64  `json:"amount"`
	PlacedAt  string `json:"placed_at"`
}
