package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avtorg/car-auction/internal/model"
)

const bidColumns = "id, auction_id, user_id, amount, date_registered"

// BidRepo encapsulates all database queries for bids. Bids are
// append-and-read only: there is no update operation, no ordering
// and no high-bid arbitration. Two simultaneous bids on one auction
// are both accepted independently.
type BidRepo struct {
	db *sql.DB
}

// NewBidRepo constructs a BidRepo with the provided DB handle.
func NewBidRepo(db *sql.DB) *BidRepo {
	return &BidRepo{db: db}
}

// Create inserts a new bid and re-reads the persisted row. A zero
// DateRegistered defers to the column default (current time). A bid
// referencing a nonexistent auction or user fails at the foreign key
// constraint; that error propagates as-is.
func (r *BidRepo) Create(ctx context.Context, b *model.Bid) error {
	var (
		res sql.Result
		err error
	)
	if b.DateRegistered.IsZero() {
		const q = "INSERT INTO bid (auction_id, user_id, amount) VALUES (?, ?, ?)"
		res, err = r.db.ExecContext(ctx, q, b.AuctionID, b.UserID, b.Amount)
	} else {
		const q = "INSERT INTO bid (auction_id, user_id, amount, date_registered) VALUES (?, ?, ?, ?)"
		res, err = r.db.ExecContext(ctx, q, b.AuctionID, b.UserID, b.Amount, b.DateRegistered)
	}
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = id
	return r.scanOne(ctx, b, id)
}

// GetByID fetches a bid by id, ErrBidNotFound on a miss.
func (r *BidRepo) GetByID(ctx context.Context, id int64) (*model.Bid, error) {
	var b model.Bid
	if err := r.scanOne(ctx, &b, id); err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByAuction returns all bids placed on one auction, oldest first.
func (r *BidRepo) ListByAuction(ctx context.Context, auctionID int64) ([]*model.Bid, error) {
	const q = "SELECT " + bidColumns + " FROM bid WHERE auction_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, auctionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Bid
	for rows.Next() {
		b := new(model.Bid)
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &b.DateRegistered); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a bid.
func (r *BidRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bid WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBidNotFound
	}
	return nil
}

func (r *BidRepo) scanOne(ctx context.Context, b *model.Bid, id int64) error {
	const q = "SELECT " + bidColumns + " FROM bid WHERE id = ?"
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.AuctionID, &b.UserID, &b.Amount, &b.DateRegistered)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrBidNotFound
	}
	return err
}
