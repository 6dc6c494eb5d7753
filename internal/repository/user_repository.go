package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/avtorg/car-auction/internal/model"
)

const userColumns = "id, username, email, hashed_password, phone_number, role, date_registered"

// UserRepo encapsulates all database queries for user profiles.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user. HashedPassword must already be a bcrypt
// hash; plaintext never reaches this layer. Unique violations map to
// ErrUsernameExists / ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	const q = `INSERT INTO user_profile (username, email, hashed_password, phone_number, role)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, u.Username, u.Email, u.HashedPassword, u.PhoneNumber, u.Role)
	if err != nil {
		if isDuplicateEntry(err) {
			if strings.Contains(err.Error(), "username") {
				return ErrUsernameExists
			}
			return ErrEmailExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = id
	return r.scanOne(ctx, u, id)
}

// GetByID fetches a user by id, ErrUserNotFound on a miss.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var u model.User
	if err := r.scanOne(ctx, &u, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = "SELECT " + userColumns + " FROM user_profile WHERE username = ? LIMIT 1"
	var u model.User
	err := r.db.QueryRowContext(ctx, q, username).Scan(
		&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.PhoneNumber, &u.Role, &u.DateRegistered)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns every user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	const q = "SELECT " + userColumns + " FROM user_profile ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u := new(model.User)
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.HashedPassword,
			&u.PhoneNumber, &u.Role, &u.DateRegistered); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites username, email, phone number and role (full
// replace) and re-reads the row. The password hash changes only
// through Create; there is no password-change operation.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	const q = `UPDATE user_profile
	           SET username = ?, email = ?, phone_number = ?, role = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, u.Username, u.Email, u.PhoneNumber, u.Role, u.ID); err != nil {
		if isDuplicateEntry(err) {
			if strings.Contains(err.Error(), "username") {
				return ErrUsernameExists
			}
			return ErrEmailExists
		}
		return err
	}
	return r.scanOne(ctx, u, u.ID)
}

// Delete removes a user. Cars (with their auctions and those
// auctions' bids), refresh tokens, own bids and feedback on both
// sides all cascade away through the schema's foreign keys.
func (r *UserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM user_profile WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) scanOne(ctx context.Context, u *model.User, id int64) error {
	const q = "SELECT " + userColumns + " FROM user_profile WHERE id = ?"
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Username, &u.Email, &u.HashedPassword, &u.PhoneNumber, &u.Role, &u.DateRegistered)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	return err
}
