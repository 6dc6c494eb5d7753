package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/avtorg/car-auction/internal/config"
	"github.com/avtorg/car-auction/internal/repository"
	"github.com/avtorg/car-auction/internal/utils"
)

var userCols = []string{"id", "username", "email", "hashed_password", "phone_number", "role", "date_registered"}

func testAuthConfig() config.Config {
	return config.Config{
		JWTSecret:      "test-secret",
		AccessTTLMin:   15,
		RefreshTTLDays: 7,
		BcryptCost:     bcrypt.MinCost,
	}
}

func TestAuthHandlerLogin(t *testing.T) {
	t.Parallel()

	registered := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)
	hash, err := utils.HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM user_profile WHERE username = ?")).
			WithArgs("ivan").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(int64(5), "ivan", "ivan@mail.ru", hash, nil, "seller", registered))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_token (user_id, token_hash, expires_at)")).
			WithArgs(int64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		h := NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
		c, rec := newContext(t, http.MethodPost, "/auth/login", `{"username": "ivan", "password": "s3cret"}`)
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			User    map[string]any `json:"user"`
			Access  tokenPart      `json:"access"`
			Refresh tokenPart      `json:"refresh"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotEmpty(t, resp.Access.Token)
		require.Len(t, resp.Refresh.Token, 96)
		require.Equal(t, "ivan", resp.User["username"])
		require.NotContains(t, resp.User, "hashed_password", "the hash never leaves the server")
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong_password", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM user_profile WHERE username = ?")).
			WithArgs("ivan").
			WillReturnRows(sqlmock.NewRows(userCols).
				AddRow(int64(5), "ivan", "ivan@mail.ru", hash, nil, "seller", registered))

		h := NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
		c, rec := newContext(t, http.MethodPost, "/auth/login", `{"username": "ivan", "password": "wrong"}`)
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown_user", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM user_profile WHERE username = ?")).
			WithArgs("ghost").
			WillReturnRows(sqlmock.NewRows(userCols))

		h := NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
		c, rec := newContext(t, http.MethodPost, "/auth/login", `{"username": "ghost", "password": "x"}`)
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuthHandlerRefreshRotates(t *testing.T) {
	t.Parallel()

	registered := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)
	raw := "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	tokenHash := utils.HashRefreshRaw(raw)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, expires_at, revoked_at FROM refresh_token WHERE token_hash = ?")).
		WithArgs(tokenHash).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(int64(5), time.Now().UTC().Add(24*time.Hour), nil))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_token SET revoked_at = NOW() WHERE token_hash = ?")).
		WithArgs(tokenHash).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("FROM user_profile WHERE id = ?")).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows(userCols).
			AddRow(int64(5), "ivan", "ivan@mail.ru", "$2a$hash", nil, "seller", registered))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO refresh_token (user_id, token_hash, expires_at)")).
		WithArgs(int64(5), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))

	h := NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
	c, rec := newContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token": "`+raw+`"}`)
	require.NoError(t, h.Refresh(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Refresh tokenPart `json:"refresh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEqual(t, raw, resp.Refresh.Token, "refresh must rotate, never reissue the same value")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthHandlerLogout(t *testing.T) {
	t.Parallel()

	raw := "cccccccccccccccccccccccccccccccc"
	tokenHash := utils.HashRefreshRaw(raw)

	t.Run("single_session", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, expires_at, revoked_at FROM refresh_token WHERE token_hash = ?")).
			WithArgs(tokenHash).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
				AddRow(int64(5), time.Now().UTC().Add(24*time.Hour), nil))
		mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_token SET revoked_at = NOW() WHERE token_hash = ?")).
			WithArgs(tokenHash).
			WillReturnResult(sqlmock.NewResult(0, 1))

		h := NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
		c, rec := newContext(t, http.MethodPost, "/auth/logout", `{"refresh_token": "`+raw+`"}`)
		require.NoError(t, h.Logout(c))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all_sessions", func(t *testing.T) {
		t.Parallel()
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, expires_at, revoked_at FROM refresh_token WHERE token_hash = ?")).
			WithArgs(tokenHash).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
				AddRow(int64(5), time.Now().UTC().Add(24*time.Hour), nil))
		// Revocation keys on the owner, not the presented token.
		mock.ExpectExec(regexp.QuoteMeta("UPDATE refresh_token SET revoked_at = NOW() WHERE user_id = ?")).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 3))

		h := NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
		c, rec := newContext(t, http.MethodPost, "/auth/logout", `{"refresh_token": "`+raw+`", "all": true}`)
		require.NoError(t, h.Logout(c))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuthHandlerRefreshRevoked(t *testing.T) {
	t.Parallel()

	raw := "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	revoked := time.Now().UTC().Add(-time.Hour)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, expires_at, revoked_at FROM refresh_token WHERE token_hash = ?")).
		WithArgs(utils.HashRefreshRaw(raw)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "expires_at", "revoked_at"}).
			AddRow(int64(5), time.Now().UTC().Add(24*time.Hour), revoked))

	h := NewAuthHandler(testAuthConfig(), repository.NewUserRepo(db), repository.NewTokenRepo(db))
	c, rec := newContext(t, http.MethodPost, "/auth/refresh", `{"refresh_token": "`+raw+`"}`)
	require.NoError(t, h.Refresh(c))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
