package shared

// Default and upper bound page sizes for list endpoints.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: DefaultPageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

// Normalize clamps page and page size into their valid ranges.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	if f.OrderDir != "asc" {
		f.OrderDir = "desc"
	}
}

// Offset returns the number of rows to skip for the current page.
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// PageMeta describes a page of results
type PageMeta struct {
	Total       int64 `json:"total"`
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	LastPage    int   `json:"lastPage"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPageMeta computes page metadata for total rows split into pages of limit.
// An empty result set still reports lastPage 1.
func NewPageMeta(total int64, page, limit int) PageMeta {
	lastPage := 1
	if limit > 0 && total > 0 {
		lastPage = int(total) / limit
		if int(total)%limit > 0 {
			lastPage++
		}
	}
	return PageMeta{
		Total:       total,
		Page:        page,
		Limit:       limit,
		LastPage:    lastPage,
		HasNextPage: page < lastPage,
		HasPrevPage: page > 1,
	}
}
