package model

import "time"

// Feedback is a buyer's rating of a seller. Both sides reference the
// `user_profile` table; nothing ties an entry to a completed sale.
type Feedback struct {
	ID         int64     `json:"id"`                 // feedback.id
	SellerID   int64     `json:"seller_feedback_id"` // feedback.seller_feedback_id (ratee)
	BuyerID    int64     `json:"bayer_id"`           // feedback.bayer_id (rater)
	Rating     int       `json:"rating"`             // feedback.rating
	Text       string    `json:"text"`               // feedback.text
	CreateDate time.Time `json:"create_date"`        // feedback.create_date (default now)
}
