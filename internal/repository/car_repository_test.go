package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/avtorg/car-auction/internal/model"
)

var carCols = []string{"id", "brand", "model", "year", "fuel_type", "transmission", "mileage", "price", "description", "image", "seller_id"}

func carRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows(carCols).AddRow(
		id, "BMW", "X5", time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		"Бензин", "автомат", int64(50000), 25000.0, "почти новая", "bmw.jpg", int64(1))
}

func TestCarRepoCreate(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO car")).
		WithArgs("BMW", "X5", "2020-01-01", "Бензин", "автомат", int64(50000), 25000.0, "почти новая", "bmw.jpg", int64(1)).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + carColumns + " FROM car WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(carRow(7))

	repo := NewCarRepo(db)
	car := &model.Car{
		Brand:        "BMW",
		Model:        "X5",
		Year:         model.NewDate(2020, time.January, 1),
		FuelType:     model.FuelPetrol,
		Transmission: model.TransmissionAutomatic,
		Mileage:      50000,
		Price:        25000.0,
		Description:  "почти новая",
		Image:        "bmw.jpg",
		SellerID:     1,
	}
	require.NoError(t, repo.Create(context.Background(), car))
	require.Equal(t, int64(7), car.ID, "generated id must be populated")
	require.Equal(t, model.FuelPetrol, car.FuelType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepoGetByIDNotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + carColumns + " FROM car WHERE id = ?")).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	repo := NewCarRepo(db)
	car, err := repo.GetByID(context.Background(), 999)
	require.ErrorIs(t, err, ErrCarNotFound)
	require.Nil(t, car, "a miss must never return a partial record")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepoSearch(t *testing.T) {
	t.Parallel()

	t.Run("brand_and_fuel_filters_combine_with_and", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM car WHERE LOWER(brand) LIKE ? AND fuel_type = ? ORDER BY id")).
			WithArgs("%toyota%", "Бензин").
			WillReturnRows(carRow(3))

		repo := NewCarRepo(db)
		cars, err := repo.Search(context.Background(), CarSearchQuery{Brand: "Toyota", FuelType: "Бензин"})
		require.NoError(t, err)
		require.Len(t, cars, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no_filters_selects_everything", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM car ORDER BY id")).
			WillReturnRows(carRow(1).AddRow(
				int64(2), "Toyota", "Camry", time.Date(2018, time.May, 1, 0, 0, 0, 0, time.UTC),
				"Гибрид", "механика", int64(120000), 14500.5, "", "camry.jpg", int64(2)))

		repo := NewCarRepo(db)
		cars, err := repo.Search(context.Background(), CarSearchQuery{})
		require.NoError(t, err)
		require.Len(t, cars, 2)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCarRepoUpdateOverwritesEveryField(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE car")).
		WithArgs("BMW", "X5", "2020-01-01", "Бензин", "автомат", int64(50000), 25000.0, "почти новая", "bmw.jpg", int64(1), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT " + carColumns + " FROM car WHERE id = ?")).
		WithArgs(int64(7)).
		WillReturnRows(carRow(7))

	repo := NewCarRepo(db)
	car := &model.Car{
		ID:           7,
		Brand:        "BMW",
		Model:        "X5",
		Year:         model.NewDate(2020, time.January, 1),
		FuelType:     model.FuelPetrol,
		Transmission: model.TransmissionAutomatic,
		Mileage:      50000,
		Price:        25000.0,
		Description:  "почти новая",
		Image:        "bmw.jpg",
		SellerID:     1,
	}
	require.NoError(t, repo.Update(context.Background(), car))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCarRepoDeleteNotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM car WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewCarRepo(db)
	require.ErrorIs(t, repo.Delete(context.Background(), 5), ErrCarNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
