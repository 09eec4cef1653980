// Package query normalizes raw pagination and sort parameters into the
// skip/limit contract shared by all list endpoints.
package query

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a normalized pagination and sort descriptor.
type Page struct {
	Page  int
	Limit int
	// Sort is the requested sort key; a "-" prefix means descending.
	Sort string
}

// Parse reads page/limit/sort query parameters, clamping out-of-range values
// rather than rejecting them. defaultSort is used when no sort is supplied or
// the requested key is not in the allow list.
func Parse(c *gin.Context, defaultSort string, allowedSorts ...string) Page {
	p := Page{Page: DefaultPage, Limit: DefaultLimit, Sort: defaultSort}

	if raw := c.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			p.Page = parsed
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			p.Limit = parsed
		}
	}
	if raw := strings.TrimSpace(c.Query("sort")); raw != "" {
		key := strings.TrimPrefix(raw, "-")
		for _, allowed := range allowedSorts {
			if key == allowed {
				p.Sort = raw
				break
			}
		}
	}

	return p.Clamp()
}

// Clamp forces page and limit into valid ranges.
func (p Page) Clamp() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

// Skip returns the number of records to skip.
func (p Page) Skip() int {
	return (p.Page - 1) * p.Limit
}

// SortKey returns the sort field without direction prefix.
func (p Page) SortKey() string {
	return strings.TrimPrefix(p.Sort, "-")
}

// Descending reports whether the sort direction is newest/largest first.
func (p Page) Descending() bool {
	return strings.HasPrefix(p.Sort, "-")
}

// OrderBy translates the sort descriptor into a SQL ORDER BY expression using
// the column allow list. Unknown keys fall back to fallbackColumn DESC.
func (p Page) OrderBy(columns map[string]string, fallbackColumn string) string {
	column, ok := columns[p.SortKey()]
	if !ok {
		return fallbackColumn + " DESC"
	}
	if p.Descending() {
		return column + " DESC"
	}
	return column + " ASC"
}

// TotalPages computes ceil(totalItems/limit).
func TotalPages(totalItems, limit int) int {
	if limit < 1 {
		limit = DefaultLimit
	}
	return (totalItems + limit - 1) / limit
}

// Result is the common list-response payload.
type Result struct {
	Items       any `json:"items"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// NewResult assembles a list payload from items and a total count.
func NewResult(items any, p Page, totalItems int) Result {
	return Result{
		Items:       items,
		CurrentPage: p.Page,
		TotalPages:  TotalPages(totalItems, p.Limit),
		TotalItems:  totalItems,
	}
}
