// Package repository contains data access logic separated from HTTP
// handlers. Each entity gets its own repository over a shared *sql.DB
// pool; sentinel not-found errors let handlers translate storage
// misses into their fixed 404 bodies.
package repository

import (
	"errors"
	"strings"
)

// Not-found sentinels, one per entity.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrCarNotFound      = errors.New("car not found")
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrBidNotFound      = errors.New("bid not found")
	ErrFeedbackNotFound = errors.New("feedback not found")
)

// Uniqueness sentinels surfaced on MySQL duplicate-key violations.
var (
	ErrUsernameExists   = errors.New("username already exists")
	ErrEmailExists      = errors.New("email already exists")
	ErrAuctionCarExists = errors.New("car already has an auction")
)

// isDuplicateEntry reports whether err is a MySQL duplicate-key
// violation (error 1062).
func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
