package model

import "time"

// User represents a row in the `user_profile` table. A user owns
// cars as a seller, bids as a buyer, refresh tokens, and feedback on
// both ends of the rating. The password hash is never serialized.
type User struct {
	ID             int64     `json:"id"`              // user_profile.id
	Username       string    `json:"username"`        // user_profile.username (unique)
	Email          string    `json:"email"`           // user_profile.email (unique)
	HashedPassword string    `json:"-"`               // user_profile.hashed_password (bcrypt)
	PhoneNumber    *string   `json:"phone_number"`    // user_profile.phone_number (nullable)
	Role           Role      `json:"role"`            // user_profile.role
	DateRegistered time.Time `json:"date_registered"` // user_profile.date_registered
}

// RefreshToken models an entry in the `refresh_token` table. Only the
// SHA-256 hash of the raw token is stored; rows disappear together
// with their owning user.
type RefreshToken struct {
	ID        int64      // refresh_token.id
	UserID    int64      // refresh_token.user_id
	TokenHash string     // refresh_token.token_hash
	ExpiresAt time.Time  // refresh_token.expires_at
	RevokedAt *time.Time // refresh_token.revoked_at (nullable)
	CreatedAt time.Time  // refresh_token.created_at
}
