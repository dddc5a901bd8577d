package cache

import (
	"bytes"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trendlens/trendlens/internal/monitoring"
)

// Entry is one cached response body with its raw UTC store time. Freshness
// is decided against the store time, never against wall-clock deltas kept
// elsewhere.
type Entry struct {
	Body        []byte
	ContentType string
	StoredAt    time.Time
}

// Age returns how long ago the entry was stored.
func (e *Entry) Age() time.Duration {
	return time.Since(e.StoredAt)
}

// Cache is the pull-based TTL response cache for the trending endpoints.
// Keys are "content type + parameters" (the request path and query); entries
// older than the TTL are refetched on the next request, there is no
// background pre-fetch.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
	stop    chan struct{}
}

// New creates a cache with the given TTL and starts its janitor.
func New(ttl time.Duration) *Cache {
	c := &Cache{
		entries: make(map[string]*Entry),
		ttl:     ttl,
		stop:    make(chan struct{}),
	}

	go c.janitor()

	return c
}

// TTL returns the configured freshness window.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Close stops the janitor.
func (c *Cache) Close() {
	close(c.stop)
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			for key, entry := range c.entries {
				if entry.Age() > c.ttl {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}

// Get retrieves a fresh entry, if one exists.
func (c *Cache) Get(key string) (*Entry, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists || entry.Age() > c.ttl {
		return nil, false
	}

	return entry, true
}

// Set stores a response body under key with the current UTC time.
func (c *Cache) Set(key string, body []byte, contentType string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry{
		Body:        body,
		ContentType: contentType,
		StoredAt:    time.Now().UTC(),
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry)
}

// Stats returns cache statistics for the stats endpoint.
func (c *Cache) Stats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := len(c.entries)
	expired := 0
	for _, entry := range c.entries {
		if entry.Age() > c.ttl {
			expired++
		}
	}

	return map[string]interface{}{
		"total_entries":   total,
		"expired_entries": expired,
		"active_entries":  total - expired,
		"ttl_seconds":     c.ttl.Seconds(),
	}
}

// Key builds the cache key for a request: path plus its query string.
func Key(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// Middleware caches successful GET responses under the trending path prefix.
// Repeated identical requests inside the TTL window receive byte-identical
// payloads. cacheControl is replayed on hits so cached responses carry the
// same directive the handler attached.
func (c *Cache) Middleware(prefix, cacheControl string, metrics *monitoring.Metrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet || !strings.HasPrefix(ctx.Request.URL.Path, prefix) {
			ctx.Next()
			return
		}

		key := Key(ctx.Request.URL.Path, ctx.Request.URL.RawQuery)

		if entry, found := c.Get(key); found {
			metrics.IncrementCacheHit()
			ctx.Header("X-Cache", "HIT")
			ctx.Header("Cache-Control", cacheControl)
			ctx.Data(http.StatusOK, entry.ContentType, entry.Body)
			ctx.Abort()
			return
		}

		metrics.IncrementCacheMiss()

		wrapper := &responseWriter{ResponseWriter: ctx.Writer, body: &bytes.Buffer{}}
		ctx.Writer = wrapper

		ctx.Next()

		if ctx.Writer.Status() == http.StatusOK {
			c.Set(key, wrapper.body.Bytes(), ctx.Writer.Header().Get("Content-Type"))
		}
	}
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
