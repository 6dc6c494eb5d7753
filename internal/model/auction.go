package model

import "time"

// Auction represents a timed sale of a single car. The car reference
// is unique, which enforces the one-auction-per-car rule at the
// storage level. Bids cascade away when the auction is deleted.
// The service stores the status verbatim and never closes an auction
// by itself, even past EndTime.
type Auction struct {
	ID         int64         `json:"id"`          // auction.id
	CarID      int64         `json:"car_id"`      // auction.car_id (unique)
	StartPrice int64         `json:"start_price"` // auction.start_price (default 0)
	MinPrice   *int64        `json:"min_price"`   // auction.min_price (nullable floor)
	StartTime  time.Time     `json:"start_time"`  // auction.start_time
	EndTime    time.Time     `json:"end_time"`    // auction.end_time
	Status     AuctionStatus `json:"status"`      // auction.status (default active)
}
