package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
)

func TestTokenBucketPassThroughWithoutRedis(t *testing.T) {
	e := echo.New()
	mw := NewTokenBucket(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, zerolog.Nop())
	e.POST("/venues/create", func(c echo.Context) error { return c.NoContent(http.StatusCreated) }, mw)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/venues/create", nil))
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestBuildRateKey(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/venues/3/edit", nil)
	req.Header.Set(echo.HeaderXRealIP, "10.0.0.1")
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/venues/:id/edit")

	assert.Equal(t, "rl:ip:10.0.0.1:route:POST /venues/:id/edit", buildRateKey("rl", c))
}

func TestIsLimited(t *testing.T) {
	assert.False(t, isLimited(http.MethodGet))
	assert.False(t, isLimited(http.MethodHead))
	assert.True(t, isLimited(http.MethodPost))
	assert.True(t, isLimited(http.MethodDelete))
}

func TestDecodeResult(t *testing.T) {
	allowed, remaining, retry, ok := decodeResult([]interface{}{int64(1), int64(4), int64(0)})
	require.True(t, ok)
	assert.True(t, allowed)
	assert.Equal(t, int64(4), remaining)
	assert.Zero(t, retry)

	allowed, _, retry, ok = decodeResult([]interface{}{int64(0), int64(0), "1500"})
	require.True(t, ok)
	assert.False(t, allowed)
	assert.Equal(t, int64(1500), retry)
	assert.Equal(t, 2, retryAfterSeconds(retry))

	_, _, _, ok = decodeResult("nope")
	assert.False(t, ok)
}

func TestDescribeLimit(t *testing.T) {
	cfg := config.RateLimitConfig{Capacity: 60, RefillTokens: 1, RefillInterval: time.Second}
	assert.Equal(t, "60 tokens, +1 every 1s", describeLimit(cfg))
}
