package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avtorg/car-auction/internal/model"
)

const feedbackColumns = "id, seller_feedback_id, bayer_id, rating, text, create_date"

// FeedbackRepo encapsulates all database queries for seller feedback.
// Entries are not linked to any transaction; any buyer may rate any
// seller.
type FeedbackRepo struct {
	db *sql.DB
}

// NewFeedbackRepo constructs a FeedbackRepo with the provided DB handle.
func NewFeedbackRepo(db *sql.DB) *FeedbackRepo {
	return &FeedbackRepo{db: db}
}

// Create inserts a new feedback entry and re-reads the persisted row.
// A zero CreateDate defers to the column default.
func (r *FeedbackRepo) Create(ctx context.Context, f *model.Feedback) error {
	var (
		res sql.Result
		err error
	)
	if f.CreateDate.IsZero() {
		const q = "INSERT INTO feedback (seller_feedback_id, bayer_id, rating, text) VALUES (?, ?, ?, ?)"
		res, err = r.db.ExecContext(ctx, q, f.SellerID, f.BuyerID, f.Rating, f.Text)
	} else {
		const q = "INSERT INTO feedback (seller_feedback_id, bayer_id, rating, text, create_date) VALUES (?, ?, ?, ?, ?)"
		res, err = r.db.ExecContext(ctx, q, f.SellerID, f.BuyerID, f.Rating, f.Text, f.CreateDate)
	}
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	return r.scanOne(ctx, f, id)
}

// GetByID fetches a feedback entry by id, ErrFeedbackNotFound on a miss.
func (r *FeedbackRepo) GetByID(ctx context.Context, id int64) (*model.Feedback, error) {
	var f model.Feedback
	if err := r.scanOne(ctx, &f, id); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListBySeller returns all feedback left for one seller, oldest first.
func (r *FeedbackRepo) ListBySeller(ctx context.Context, sellerID int64) ([]*model.Feedback, error) {
	const q = "SELECT " + feedbackColumns + " FROM feedback WHERE seller_feedback_id = ? ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Feedback
	for rows.Next() {
		f := new(model.Feedback)
		if err := rows.Scan(&f.ID, &f.SellerID, &f.BuyerID, &f.Rating, &f.Text, &f.CreateDate); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a feedback entry.
func (r *FeedbackRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM feedback WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}

func (r *FeedbackRepo) scanOne(ctx context.Context, f *model.Feedback, id int64) error {
	const q = "SELECT " + feedbackColumns + " FROM feedback WHERE id = ?"
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&f.ID, &f.SellerID, &f.BuyerID, &f.Rating, &f.Text, &f.CreateDate)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFeedbackNotFound
	}
	return err
}
