package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/avtorg/car-auction/internal/model"
)

const carColumns = "id, brand, model, year, fuel_type, transmission, mileage, price, description, image, seller_id"

// CarRepo encapsulates all database queries for car listings.
type CarRepo struct {
	db *sql.DB
}

// NewCarRepo constructs a CarRepo with the provided DB handle.
func NewCarRepo(db *sql.DB) *CarRepo {
	return &CarRepo{db: db}
}

// Create inserts a new car. On success the struct is re-read from the
// database so the caller receives the row exactly as persisted,
// generated ID included.
func (r *CarRepo) Create(ctx context.Context, c *model.Car) error {
	const q = `INSERT INTO car (brand, model, year, fuel_type, transmission, mileage, price, description, image, seller_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		c.Brand, c.Model, c.Year, c.FuelType, c.Transmission,
		c.Mileage, c.Price, c.Description, c.Image, c.SellerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = id
	return r.scanOne(ctx, c, id)
}

// GetByID fetches a car by id, returning ErrCarNotFound on a miss.
func (r *CarRepo) GetByID(ctx context.Context, id int64) (*model.Car, error) {
	var c model.Car
	if err := r.scanOne(ctx, &c, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns every car ordered by id.
func (r *CarRepo) List(ctx context.Context) ([]*model.Car, error) {
	const q = "SELECT " + carColumns + " FROM car ORDER BY id"
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCars(rows)
}

// Update overwrites every field of the stored row with the values in
// c (full replace, not a merge) and re-reads the result. The caller
// is expected to have checked existence beforehand; updating an
// absent id returns ErrCarNotFound from the follow-up select.
func (r *CarRepo) Update(ctx context.Context, c *model.Car) error {
	const q = `UPDATE car
	           SET brand = ?, model = ?, year = ?, fuel_type = ?, transmission = ?,
	               mileage = ?, price = ?, description = ?, image = ?, seller_id = ?
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q,
		c.Brand, c.Model, c.Year, c.FuelType, c.Transmission,
		c.Mileage, c.Price, c.Description, c.Image, c.SellerID, c.ID); err != nil {
		return err
	}
	return r.scanOne(ctx, c, c.ID)
}

// Delete removes a car. The auction on the car, and that auction's
// bids, go with it through the schema's cascade rules.
func (r *CarRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM car WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCarNotFound
	}
	return nil
}

// CarSearchQuery holds the optional search filters. Empty fields are
// skipped; supplied filters combine with AND.
type CarSearchQuery struct {
	Brand    string // case-insensitive substring match
	Model    string // case-insensitive substring match
	FuelType string // exact enum value match
}

// Search returns all cars matching every supplied filter. With no
// filters set it is equivalent to List.
func (r *CarRepo) Search(ctx context.Context, q CarSearchQuery) ([]*model.Car, error) {
	where := []string{}
	args := []any{}

	if q.Brand != "" {
		where = append(where, "LOWER(brand) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Brand)+"%")
	}
	if q.Model != "" {
		where = append(where, "LOWER(model) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.Model)+"%")
	}
	if q.FuelType != "" {
		where = append(where, "fuel_type = ?")
		args = append(args, q.FuelType)
	}

	sqlQ := "SELECT " + carColumns + " FROM car"
	if len(where) > 0 {
		sqlQ += " WHERE " + strings.Join(where, " AND ")
	}
	sqlQ += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, sqlQ, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectCars(rows)
}

func (r *CarRepo) scanOne(ctx context.Context, c *model.Car, id int64) error {
	const q = "SELECT " + carColumns + " FROM car WHERE id = ?"
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&c.ID, &c.Brand, &c.Model, &c.Year, &c.FuelType, &c.Transmission,
		&c.Mileage, &c.Price, &c.Description, &c.Image, &c.SellerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCarNotFound
	}
	return err
}

func collectCars(rows *sql.Rows) ([]*model.Car, error) {
	var out []*model.Car
	for rows.Next() {
		c := new(model.Car)
		if err := rows.Scan(
			&c.ID, &c.Brand, &c.Model, &c.Year, &c.FuelType, &c.Transmission,
			&c.Mileage, &c.Price, &c.Description, &c.Image, &c.SellerID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
