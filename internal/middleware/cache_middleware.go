package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/internal/pkg/logger"
	"github.com/yatube/yatube/internal/pkg/pagecache"
)

// cachedPage is the serialized form of a response held in the cache store.
type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

// PageCache serves repeated reads of hot pages from a cache store instead of
// rebuilding them on every request.
type PageCache struct {
	store pagecache.Store
	ttl   time.Duration
}

// NewPageCache creates a new PageCache with the given store and entry TTL.
func NewPageCache(store pagecache.Store, ttl time.Duration) *PageCache {
	return &PageCache{
		store: store,
		ttl:   ttl,
	}
}

// Cache returns a middleware that caches successful GET responses of the
// wrapped handlers. Each path and query combination is cached separately, so
// paginated pages do not overwrite each other. Store failures are logged and
// the request falls through to the live handler.
func (p *PageCache) Cache() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p.store == nil || p.ttl <= 0 || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)

		payload, found, err := p.store.Get(c.Request.Context(), key)
		if err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Page cache read failed")
		} else if found {
			var page cachedPage
			if err := json.Unmarshal(payload, &page); err == nil {
				c.Data(page.Status, page.ContentType, page.Body)
				c.Abort()
				return
			}
		}

		writer := &bodyCaptureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		// Only successful pages are worth keeping
		if writer.Status() != http.StatusOK {
			return
		}

		page := cachedPage{
			Status:      writer.Status(),
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		}

		encoded, err := json.Marshal(page)
		if err != nil {
			return
		}

		if err := p.store.Set(c.Request.Context(), key, encoded, p.ttl); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("Page cache write failed")
		}
	}
}

// cacheKey builds the store key for a request from its path and query string.
func cacheKey(c *gin.Context) string {
	if raw := c.Request.URL.RawQuery; raw != "" {
		return c.Request.URL.Path + "?" + raw
	}
	return c.Request.URL.Path
}

// bodyCaptureWriter duplicates the response body into a buffer while it is
// written to the client.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
