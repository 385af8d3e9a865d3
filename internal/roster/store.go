package roster

import (
	"slices"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
)

// Store holds employees in insertion order.
type Store struct {
	employees []domain.Employee
}

func NewStore(initial []domain.Employee) *Store {
	return &Store{employees: slices.Clone(initial)}
}

// All returns a copy of the collection.
func (s *Store) All() []domain.Employee {
	return slices.Clone(s.employees)
}

func (s *Store) Len() int {
	return len(s.employees)
}

// NextID returns max(id)+1, or 1 when the store is empty.
func (s *Store) NextID() int64 {
	var maxID int64
	for _, e := range s.employees {
		maxID = max(maxID, e.ID)
	}
	return maxID + 1
}

func (s *Store) Append(e domain.Employee) {
	s.employees = append(s.employees, e)
}

func (s *Store) Find(id int64) (domain.Employee, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Employee{}, false
	}
	return s.employees[i], true
}

// Replace overwrites the record with the given id, keeping its position.
func (s *Store) Replace(id int64, e domain.Employee) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	e.ID = id
	s.employees[i] = e
	return true
}

func (s *Store) Remove(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.employees = slices.Delete(s.employees, i, i+1)
	return true
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.employees, func(e domain.Employee) bool {
		return e.ID == id
	})
}
