package model

import "time"

// Bid is a single offer on an auction. Bids are stored exactly as
// submitted: no comparison against the current high bid, no auction
// status check, no ordering guarantee.
type Bid struct {
	ID             int64     `json:"id"`              // bid.id
	AuctionID      int64     `json:"auction_id"`      // bid.auction_id
	UserID         int64     `json:"user_id"`         // bid.user_id
	Amount         int64     `json:"amount"`          // bid.amount
	DateRegistered time.Time `json:"date_registered"` // bid.date_registered (default now)
}
