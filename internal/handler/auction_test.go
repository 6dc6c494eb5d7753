package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/avtorg/car-auction/internal/repository"
)

var auctionCols = []string{"id", "car_id", "start_price", "min_price", "start_time", "end_time", "status"}

func TestAuctionHandlerCreate(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	t.Run("defaults_applied", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// Omitted start_price defaults to 0, omitted status to active.
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO auction")).
			WithArgs(int64(7), int64(0), nil, start, end, "active").
			WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectQuery(regexp.QuoteMeta("FROM auction WHERE id = ?")).
			WithArgs(int64(2)).
			WillReturnRows(sqlmock.NewRows(auctionCols).
				AddRow(int64(2), int64(7), int64(0), nil, start, end, "active"))

		h := NewAuctionHandler(repository.NewAuctionRepo(db))
		c, rec := newContext(t, http.MethodPost, "/auction/", `{
			"car_id": 7,
			"start_time": "2024-04-01T10:00:00Z",
			"end_time": "2024-04-04T10:00:00Z"
		}`)
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, "active", got["status"])
		require.Equal(t, float64(0), got["start_price"])
		require.Nil(t, got["min_price"])
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate_car_is_409", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO auction")).
			WillReturnError(errors.New("Error 1062 (23000): Duplicate entry '7' for key 'auction.uq_auction_car_id'"))

		h := NewAuctionHandler(repository.NewAuctionRepo(db))
		c, rec := newContext(t, http.MethodPost, "/auction/", `{
			"car_id": 7,
			"start_time": "2024-04-01T10:00:00Z",
			"end_time": "2024-04-04T10:00:00Z"
		}`)
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid_status", func(t *testing.T) {
		t.Parallel()
		db, _, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		h := NewAuctionHandler(repository.NewAuctionRepo(db))
		c, rec := newContext(t, http.MethodPost, "/auction/", `{
			"car_id": 7, "status": "paused",
			"start_time": "2024-04-01T10:00:00Z",
			"end_time": "2024-04-04T10:00:00Z"
		}`)
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fields := detailFields(t, rec.Body.Bytes())
		require.Equal(t, "value is not a valid enumeration member", fields["status"])
	})
}

func TestAuctionHandlerGetNotFound(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM auction WHERE id = ?")).
		WithArgs(int64(44)).
		WillReturnRows(sqlmock.NewRows(auctionCols))

	h := NewAuctionHandler(repository.NewAuctionRepo(db))
	c, rec := newContext(t, http.MethodGet, "/auction/44", "")
	c.SetParamNames("id")
	c.SetParamValues("44")
	require.NoError(t, h.Get(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Аукцион не найден", detailString(t, rec.Body.Bytes()))
	require.NoError(t, mock.ExpectationsWereMet())
}
