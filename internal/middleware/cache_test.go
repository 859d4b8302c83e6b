package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/airdeskhq/airdesk/internal/config"
)

func cacheTestContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCacheKeySeparatesFilterSets(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "airdesk:search", KeyStrategy: "route_query"}

	a := cacheKey(cfg, cacheTestContext("/v1/search?flight_id=LH0100"))
	b := cacheKey(cfg, cacheTestContext("/v1/search?flight_id=BA0900"))
	c := cacheKey(cfg, cacheTestContext("/v1/search?flight_id=LH0100"))

	assert.NotEqual(t, a, b, "different filter sets must cache separately")
	assert.Equal(t, a, c, "identical requests must share a key")
	assert.Contains(t, a, "airdesk:search:")
}

func TestRecordingWriterOverflowDisablesCapture(t *testing.T) {
	rw := &recordingWriter{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK, limit: 8}

	_, err := rw.Write([]byte("12345"))
	require.NoError(t, err)
	assert.False(t, rw.overflow)
	assert.Equal(t, "12345", rw.body.String())

	_, err = rw.Write([]byte("6789ab"))
	require.NoError(t, err)
	assert.True(t, rw.overflow)
	assert.Zero(t, rw.body.Len(), "an oversized body must not leave a truncated copy behind")
}

func TestRedisCacheDisabledPassesThrough(t *testing.T) {
	cfg := config.CacheConfig{
		Enabled: false,
		Methods: map[string]bool{http.MethodGet: true},
		TTL:     time.Second,
	}
	mw := NewRedisCache(cfg, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/search?flight_id=LH0100", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"tickets": []string{}})
	})
	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}
