package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avtorg/car-auction/internal/model"
)

const auctionColumns = "id, car_id, start_price, min_price, start_time, end_time, status"

// AuctionRepo encapsulates all database queries for auctions. The
// unique key on car_id enforces one auction per car at the storage
// level; the repository only surfaces the violation.
type AuctionRepo struct {
	db *sql.DB
}

// NewAuctionRepo constructs an AuctionRepo with the provided DB handle.
func NewAuctionRepo(db *sql.DB) *AuctionRepo {
	return &AuctionRepo{db: db}
}

// Create inserts a new auction and re-reads the persisted row.
// A second auction for the same car returns ErrAuctionCarExists.
func (r *AuctionRepo) Create(ctx context.Context, a *model.Auction) error {
	const q = `INSERT INTO auction (car_id, start_price, min_price, start_time, end_time, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		a.CarID, a.StartPrice, a.MinPrice, a.StartTime, a.EndTime, a.Status)
	if err != nil {
		if isDuplicateEntry(err) {
			return ErrAuctionCarExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return r.scanOne(ctx, a, id)
}

// GetByID fetches an auction by id, ErrAuctionNotFound on a miss.
func (r *AuctionRepo) GetByID(ctx context.Context, id int64) (*model.Auction, error) {
	var a model.Auction
	if err := r.scanOne(ctx, &a, id); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns every auction ordered by id.
func (r *AuctionRepo) List(ctx context.Context) ([]*model.Auction, error) {
	const q = "SELECT " + auctionColumns + " FROM auction ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Auction
	for rows.Next() {
		a := new(model.Auction)
		if err := rows.Scan(&a.ID, &a.CarID, &a.StartPrice, &a.MinPrice,
			&a.StartTime, &a.EndTime, &a.Status); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites every field of the stored row (full replace) and
// re-reads the result.
func (r *AuctionRepo) Update(ctx context.Context, a *model.Auction) error {
	const q = `UPDATE auction
	           SET car_id = ?, start_price = ?, min_price = ?, start_time = ?, end_time = ?, status = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		a.CarID, a.StartPrice, a.MinPrice, a.StartTime, a.EndTime, a.Status, a.ID); err != nil {
		if isDuplicateEntry(err) {
			return ErrAuctionCarExists
		}
		return err
	}
	return r.scanOne(ctx, a, a.ID)
}

// Delete removes an auction; its bids cascade away.
func (r *AuctionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM auction WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAuctionNotFound
	}
	return nil
}

func (r *AuctionRepo) scanOne(ctx context.Context, a *model.Auction, id int64) error {
	const q = "SELECT " + auctionColumns + " FROM auction WHERE id = ?"
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&a.ID, &a.CarID, &a.StartPrice, &a.MinPrice, &a.StartTime, &a.EndTime, &a.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAuctionNotFound
	}
	return err
}
