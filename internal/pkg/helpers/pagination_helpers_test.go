package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClampPage(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		totalItems int64
		size       int
		want       int
	}{
		{name: "first page stays", page: 1, totalItems: 13, size: 10, want: 1},
		{name: "last page stays", page: 2, totalItems: 13, size: 10, want: 2},
		{name: "beyond last clamps to last", page: 99, totalItems: 13, size: 10, want: 2},
		{name: "zero clamps to first", page: 0, totalItems: 13, size: 10, want: 1},
		{name: "negative clamps to first", page: -3, totalItems: 13, size: 10, want: 1},
		{name: "no items clamps to first", page: 7, totalItems: 0, size: 10, want: 1},
		{name: "exact page boundary", page: 2, totalItems: 20, size: 10, want: 2},
		{name: "one past exact boundary", page: 3, totalItems: 20, size: 10, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPage(tt.page, tt.totalItems, tt.size))
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(13, 1, 10)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 2, info.TotalPages)
	assert.Equal(t, 10, info.PageSize)
	assert.Equal(t, 13, info.TotalItems)

	// Page two holds the remaining three items
	info = NewPaginationInfo(13, 2, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 2, info.TotalPages)
}

func TestNewPaginationInfo_EmptyListing(t *testing.T) {
	info := NewPaginationInfo(0, 1, 10)
	assert.Equal(t, 1, info.CurrentPage)
	assert.Equal(t, 1, info.TotalPages)
	assert.Equal(t, 0, info.TotalItems)
}

func TestNewPaginationInfo_CurrentPageNeverExceedsTotal(t *testing.T) {
	info := NewPaginationInfo(13, 9, 10)
	assert.Equal(t, 2, info.CurrentPage)
	assert.Equal(t, 2, info.TotalPages)
}

func TestCalculateOffsetLimit(t *testing.T) {
	offset, limit := CalculateOffsetLimit(1, 10)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, 10, limit)

	offset, limit = CalculateOffsetLimit(3, 10)
	assert.Equal(t, uint64(20), offset)
	assert.Equal(t, 10, limit)

	// Sub-1 pages fall back to the first page
	offset, _ = CalculateOffsetLimit(0, 10)
	assert.Equal(t, uint64(0), offset)

	// Out-of-range sizes fall back to the default
	_, limit = CalculateOffsetLimit(1, 0)
	assert.Equal(t, DefaultPageSize, limit)
	_, limit = CalculateOffsetLimit(1, MaxPageSize+1)
	assert.Equal(t, DefaultPageSize, limit)
}

func TestParsePageParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{name: "missing defaults to first", target: "/", want: 1},
		{name: "valid page", target: "/?page=3", want: 3},
		{name: "junk defaults to first", target: "/?page=banana", want: 1},
		{name: "zero defaults to first", target: "/?page=0", want: 1},
		{name: "negative defaults to first", target: "/?page=-2", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest("GET", tt.target, nil)

			assert.Equal(t, tt.want, ParsePageParam(ctx))
		})
	}
}
