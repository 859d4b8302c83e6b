package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/airdeskhq/airdesk/internal/config"
)

// cachedResponse is the envelope stored in Redis. Every handler in this
// service emits a JSON body, so status, content type and body are enough to
// replay a hit faithfully; per-header state is not stored.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// recordingWriter tees the response body up to a byte limit while
// forwarding everything to the client untouched. A body that exceeds the
// limit marks the response as uncacheable rather than storing a truncated
// copy.
type recordingWriter struct {
	http.ResponseWriter
	status   int
	body     bytes.Buffer
	limit    int
	overflow bool
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if !w.overflow {
		if w.limit > 0 && w.body.Len()+len(b) > w.limit {
			w.overflow = true
			w.body.Reset()
		} else {
			w.body.Write(b)
		}
	}
	return w.ResponseWriter.Write(b)
}

// cacheKey hashes the request identity under the configured prefix. The
// default strategy keys on route plus raw query, so each distinct filter
// combination on /v1/search and /v1/status caches separately.
func cacheKey(cfg config.CacheConfig, c echo.Context) string {
	r := c.Request()
	var id string
	switch strings.ToLower(cfg.KeyStrategy) {
	case "route":
		id = c.Path()
	case "method_route":
		id = r.Method + " " + c.Path()
	case "method_route_query":
		id = r.Method + " " + c.Path() + "?" + r.URL.RawQuery
	default: // route_query
		id = c.Path() + "?" + r.URL.RawQuery
	}
	sum := sha256.Sum256([]byte(id))
	return fmt.Sprintf("%s:%x", cfg.Prefix, sum[:16])
}

// NewRedisCache caches successful responses on the configured methods. Any
// failure talking to Redis counts as a miss and the handler runs normally;
// the cache can only ever make a request cheaper, not fail it.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Methods[c.Request().Method] {
				return next(c)
			}

			key := cacheKey(cfg, c)
			ctx := c.Request().Context()

			if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
				var hit cachedResponse
				if json.Unmarshal(raw, &hit) == nil && hit.Status != 0 {
					if hit.ContentType != "" {
						c.Response().Header().Set(echo.HeaderContentType, hit.ContentType)
					}
					c.Response().Header().Set("X-Cache", "HIT")
					c.Response().WriteHeader(hit.Status)
					_, werr := c.Response().Write(hit.Body)
					return werr
				}
			}

			rw := &recordingWriter{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          cfg.MaxBodyBytes,
			}
			c.Response().Writer = rw
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			// Only complete 200s are worth replaying.
			if rw.status == http.StatusOK && !rw.overflow {
				entry := cachedResponse{
					Status:      rw.status,
					ContentType: c.Response().Header().Get(echo.HeaderContentType),
					Body:        rw.body.Bytes(),
				}
				if raw, err := json.Marshal(entry); err == nil {
					storeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
					_ = rdb.SetEx(storeCtx, key, raw, cfg.TTL).Err()
					cancel()
				}
			}
			return nil
		}
	}
}
