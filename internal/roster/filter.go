package roster

import (
	"strings"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
)

// Criteria are the table filter inputs. The zero value matches everything.
type Criteria struct {
	Search     string
	Department string
	Day        domain.DayFlag
}

// Filter returns the employees matching all criteria, in source order.
// The input slice is never modified.
func Filter(employees []domain.Employee, c Criteria) []domain.Employee {
	term := strings.ToLower(c.Search)

	out := make([]domain.Employee, 0, len(employees))
	for _, e := range employees {
		if !matchesSearch(e, term) {
			continue
		}
		if c.Department != "" && e.Department != c.Department {
			continue
		}
		if !e.Has(c.Day) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matchesSearch(e domain.Employee, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.Name), term) ||
		strings.Contains(strings.ToLower(e.Email), term)
}
