package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/avtorg/car-auction/internal/config"
)

func TestRateLimitDisabledPassesThrough(t *testing.T) {
	t.Parallel()

	cfg := config.RateLimitConfig{Enabled: false, Requests: 1, Window: time.Minute, Prefix: "rl"}
	mw := RateLimit(cfg, nil)

	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/car/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, mw(next)(c))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestRateLimitNilClientPassesThrough(t *testing.T) {
	t.Parallel()

	// Enabled but without a redis client: the limiter must not block.
	cfg := config.RateLimitConfig{Enabled: true, Requests: 1, Window: time.Minute, Prefix: "rl"}
	mw := RateLimit(cfg, nil)

	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	req := httptest.NewRequest(http.MethodGet, "/car/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, mw(next)(c))
	require.Equal(t, http.StatusOK, rec.Code)
}
