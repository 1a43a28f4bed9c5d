package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yatube/yatube/internal/pkg/pagecache"
)

// newCacheTestRouter wires Cache() in front of a handler that counts how
// often it actually runs.
func newCacheTestRouter(pc *PageCache) (*gin.Engine, *int) {
	gin.SetMode(gin.TestMode)

	hits := 0
	handler := func(c *gin.Context) {
		hits++
		c.JSON(http.StatusOK, gin.H{"hits": hits})
	}

	router := gin.New()
	router.GET("/", pc.Cache(), handler)
	router.POST("/", pc.Cache(), handler)
	router.GET("/missing", pc.Cache(), func(c *gin.Context) {
		hits++
		c.JSON(http.StatusNotFound, gin.H{"hits": hits})
	})

	return router, &hits
}

func serve(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, target, nil))
	return rr
}

func TestPageCache_SecondRequestServedFromCache(t *testing.T) {
	pc := NewPageCache(pagecache.NewMemoryStore(), time.Minute)
	router, hits := newCacheTestRouter(pc)

	first := serve(router, http.MethodGet, "/")
	second := serve(router, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, *hits)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get("Content-Type"), second.Header().Get("Content-Type"))
}

func TestPageCache_QueriesCachedSeparately(t *testing.T) {
	pc := NewPageCache(pagecache.NewMemoryStore(), time.Minute)
	router, hits := newCacheTestRouter(pc)

	pageOne := serve(router, http.MethodGet, "/?page=1")
	pageTwo := serve(router, http.MethodGet, "/?page=2")
	assert.Equal(t, 2, *hits)
	assert.NotEqual(t, pageOne.Body.String(), pageTwo.Body.String())

	// Each variant replays from its own entry
	assert.Equal(t, pageTwo.Body.String(), serve(router, http.MethodGet, "/?page=2").Body.String())
	assert.Equal(t, 2, *hits)
}

func TestPageCache_SkipsNonGETRequests(t *testing.T) {
	pc := NewPageCache(pagecache.NewMemoryStore(), time.Minute)
	router, hits := newCacheTestRouter(pc)

	serve(router, http.MethodPost, "/")
	serve(router, http.MethodPost, "/")

	assert.Equal(t, 2, *hits)
}

func TestPageCache_ErrorResponsesNotCached(t *testing.T) {
	pc := NewPageCache(pagecache.NewMemoryStore(), time.Minute)
	router, hits := newCacheTestRouter(pc)

	serve(router, http.MethodGet, "/missing")
	serve(router, http.MethodGet, "/missing")

	assert.Equal(t, 2, *hits)
}

func TestPageCache_EntryExpires(t *testing.T) {
	pc := NewPageCache(pagecache.NewMemoryStore(), 15*time.Millisecond)
	router, hits := newCacheTestRouter(pc)

	serve(router, http.MethodGet, "/")
	time.Sleep(30 * time.Millisecond)
	serve(router, http.MethodGet, "/")

	assert.Equal(t, 2, *hits)
}

func TestPageCache_NilStorePassesThrough(t *testing.T) {
	pc := NewPageCache(nil, time.Minute)
	router, hits := newCacheTestRouter(pc)

	serve(router, http.MethodGet, "/")
	serve(router, http.MethodGet, "/")

	assert.Equal(t, 2, *hits)
}

func TestPageCache_ZeroTTLPassesThrough(t *testing.T) {
	pc := NewPageCache(pagecache.NewMemoryStore(), 0)
	router, hits := newCacheTestRouter(pc)

	serve(router, http.MethodGet, "/")
	serve(router, http.MethodGet, "/")

	assert.Equal(t, 2, *hits)
}

func TestCacheKey(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
	ctx.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "/", cacheKey(ctx))

	ctx.Request = httptest.NewRequest(http.MethodGet, "/?page=2", nil)
	assert.Equal(t, "/?page=2", cacheKey(ctx))
}

func TestPageCache_ReplayedPagesKeepTheirStatus(t *testing.T) {
	pc := NewPageCache(pagecache.NewMemoryStore(), time.Minute)
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/teapot", pc.Cache(), func(c *gin.Context) {
		c.String(http.StatusOK, "short and stout")
	})

	for i := 0; i < 2; i++ {
		rr := serve(router, http.MethodGet, "/teapot")
		assert.Equal(t, http.StatusOK, rr.Code, fmt.Sprintf("request %d", i+1))
		assert.Equal(t, "short and stout", rr.Body.String())
	}
}
