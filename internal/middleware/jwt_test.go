package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/avtorg/car-auction/internal/utils"
)

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	require.NoError(t, JWTAuth("test-secret")(next)(c))
	return rec, c
}

func TestJWTAuth(t *testing.T) {
	t.Parallel()

	t.Run("valid_token_injects_claims", func(t *testing.T) {
		t.Parallel()
		at, err := utils.NewAccessToken("test-secret", 42, "seller", 15)
		require.NoError(t, err)

		rec, c := runJWT(t, "Bearer "+at.Token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, float64(42), c.Get("user_id"))
		require.Equal(t, "seller", c.Get("role"))
	})

	t.Run("missing_header", func(t *testing.T) {
		t.Parallel()
		rec, _ := runJWT(t, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		t.Parallel()
		at, err := utils.NewAccessToken("other-secret", 42, "seller", 15)
		require.NoError(t, err)

		rec, _ := runJWT(t, "Bearer "+at.Token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage_token", func(t *testing.T) {
		t.Parallel()
		rec, _ := runJWT(t, "Bearer not.a.jwt")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
