package roster

import (
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
)

const DefaultPageSize = 5

type Page struct {
	Items      []domain.Employee `json:"pageItems"`
	TotalPages int               `json:"totalPages"`
	Page       int               `json:"effectivePage"`
	Total      int               `json:"total"`
}

// TotalPages is ceil(n/pageSize).
func TotalPages(n, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if n <= 0 {
		return 0
	}
	return (n-1)/pageSize + 1
}

// ValidPage reports whether n is a page that can be navigated to.
func ValidPage(totalPages, n int) bool {
	return n >= 1 && n <= totalPages
}

// Paginate slices seq for the requested page, clamped to [1, TotalPages].
// An empty sequence yields page 1 with no items.
func Paginate(seq []domain.Employee, pageSize, requested int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	total := TotalPages(len(seq), pageSize)
	page := min(max(requested, 1), max(total, 1))

	start := min((page-1)*pageSize, len(seq))
	end := start + min(pageSize, len(seq)-start)

	items := make([]domain.Employee, end-start)
	copy(items, seq[start:end])

	return Page{
		Items:      items,
		TotalPages: total,
		Page:       page,
		Total:      len(seq),
	}
}
