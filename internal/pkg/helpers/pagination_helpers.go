package helpers

import (
	"math"

	"github.com/gin-gonic/gin"
	"github.com/yatube/yatube/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// CalculateOffsetLimit turns a 1-based page number into the OFFSET and
// LIMIT values a SQL query needs. Out-of-range sizes fall back to the
// default page size.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * limit)
	return offset, limit
}

// NewPaginationInfo builds the PaginationInfo block listings attach to
// their responses. page is 1-based. An empty result set still reports
// one page so clients always have a valid current page to render.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	} else if page == 1 {
		totalPages = 1
	}

	currentPage := page
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  int(totalItems),
	}
}

// ParsePageParam extracts the 1-based page number from the request.
// Unparsable or sub-1 values fall back to the first page.
func ParsePageParam(c *gin.Context) int {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil || query.Page < 1 {
		return DefaultPage
	}
	return query.Page
}

// ClampPage bounds a 1-based page number to the range the item count
// actually has: sub-1 pages become the first page, pages past the end
// become the last page.
func ClampPage(page int, totalItems int64, size int) int {
	if page < 1 {
		return DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if totalItems <= 0 {
		return DefaultPage
	}

	lastPage := int(math.Ceil(float64(totalItems) / float64(size)))
	if page > lastPage {
		return lastPage
	}
	return page
}
