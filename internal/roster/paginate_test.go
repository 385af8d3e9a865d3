package roster_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/roster"
)

func numbered(n int) []domain.Employee {
	out := make([]domain.Employee, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, domain.Employee{ID: int64(i)})
	}
	return out
}

func TestTotalPages(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, roster.TotalPages(0, 5))
	assert.Equal(t, 1, roster.TotalPages(1, 5))
	assert.Equal(t, 1, roster.TotalPages(5, 5))
	assert.Equal(t, 3, roster.TotalPages(12, 5))
	assert.Equal(t, 3, roster.TotalPages(12, 0), "falls back to default page size")
	assert.Equal(t, 1, roster.TotalPages(3, math.MaxInt))
	assert.Equal(t, 1, roster.TotalPages(math.MaxInt, math.MaxInt))
	assert.Equal(t, 2, roster.TotalPages(math.MaxInt, math.MaxInt-1))
}

func TestPaginate_HugePageSize(t *testing.T) {
	t.Parallel()

	p := roster.Paginate(numbered(3), math.MaxInt, 1)

	assert.Equal(t, 1, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, []int64{1, 2, 3}, ids(p.Items))
}

func TestPaginate_Twelve(t *testing.T) {
	t.Parallel()

	seq := numbered(12)

	first := roster.Paginate(seq, 5, 1)
	assert.Equal(t, 3, first.TotalPages)
	assert.Equal(t, 1, first.Page)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids(first.Items))

	last := roster.Paginate(seq, 5, 3)
	assert.Equal(t, 3, last.Page)
	assert.Equal(t, []int64{11, 12}, ids(last.Items))
	assert.Equal(t, 12, last.Total)
}

func TestPaginate_Clamps(t *testing.T) {
	t.Parallel()

	seq := numbered(12)

	assert.Equal(t, 1, roster.Paginate(seq, 5, 0).Page)
	assert.Equal(t, 1, roster.Paginate(seq, 5, -4).Page)
	assert.Equal(t, 3, roster.Paginate(seq, 5, 99).Page)
}

func TestPaginate_Empty(t *testing.T) {
	t.Parallel()

	p := roster.Paginate(nil, 5, 3)

	assert.Equal(t, 0, p.TotalPages)
	assert.Equal(t, 1, p.Page)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Items)
	assert.False(t, roster.ValidPage(p.TotalPages, 1))
}

func TestValidPage(t *testing.T) {
	t.Parallel()

	assert.False(t, roster.ValidPage(3, 0))
	assert.True(t, roster.ValidPage(3, 1))
	assert.True(t, roster.ValidPage(3, 3))
	assert.False(t, roster.ValidPage(3, 4))
}

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	store := []domain.Employee{
		{ID: 1, Name: "Ali", Department: "HR", SunTue: true},
		{ID: 2, Name: "Sara", Department: "IT", SunTue: false},
	}

	byDept := roster.Filter(store, roster.Criteria{Department: "HR"})
	assert.Equal(t, []int64{1}, ids(byDept))

	byDay := roster.Filter(store, roster.Criteria{Day: domain.DaySunTue})
	assert.Equal(t, []int64{1}, ids(byDay))

	page := roster.Paginate(byDay, 5, 1)
	assert.Equal(t, roster.Page{Items: []domain.Employee{store[0]}, TotalPages: 1, Page: 1, Total: 1}, page)
}
