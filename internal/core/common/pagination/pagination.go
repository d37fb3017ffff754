package pagination

// Page sizes used by the list endpoints: admin-facing tables and the audit
// log paginate at 20, the personal "my reports"/"assigned reports" views at 10.
const (
	AdminPageSize    = 20
	PersonalPageSize = 10
)

// Pagination describes one page of an offset-paginated result set using
// 1-based item ordinals.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

// New computes pagination metadata for the given page number, page size and
// total row count. Page numbers below 1 are clamped to 1, matching OffsetFor.
// A page past the end is reported as requested, with zero From/To ordinals,
// so the metadata agrees with the empty item list the query produced.
func New(page, perPage int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}

	from := (page-1)*perPage + 1
	to := page * perPage
	if int64(from) > total {
		from = 0
		to = 0
	} else if int64(to) > total {
		to = int(total)
	}

	return Pagination{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
		From:        from,
		To:          to,
	}
}

// Offset returns the row offset for the page described by p.
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.PerPage
}

// OffsetFor computes the row offset for a raw page/perPage pair before the
// total is known.
func OffsetFor(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
