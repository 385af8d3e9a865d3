package roster

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
)

var ErrInvalidNumber = errors.New("roster: invalid number")

// Fields is every employee attribute except the id.
type Fields struct {
	Name       string
	Email      string
	Department string
	Shift      string
	Score      int
	Total      int
	Done       int
	SunTue     bool
	WedThu     bool
	FriSat     bool
}

func (f Fields) Employee(id int64) domain.Employee {
	return domain.Employee{
		ID:         id,
		Name:       f.Name,
		Email:      f.Email,
		Department: f.Department,
		Shift:      f.Shift,
		Score:      f.Score,
		Total:      f.Total,
		Done:       f.Done,
		SunTue:     f.SunTue,
		WedThu:     f.WedThu,
		FriSat:     f.FriSat,
	}
}

// FieldsOf is used to prefill an edit form.
func FieldsOf(e domain.Employee) Fields {
	return Fields{
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Shift:      e.Shift,
		Score:      e.Score,
		Total:      e.Total,
		Done:       e.Done,
		SunTue:     e.SunTue,
		WedThu:     e.WedThu,
		FriSat:     e.FriSat,
	}
}

// ParseForm reads raw form values. Day flags are set when their key is present,
// whatever the value. Numeric fields must be base-10 integers.
func ParseForm(values url.Values) (Fields, error) {
	f := Fields{
		Name:       values.Get("name"),
		Email:      values.Get("email"),
		Department: values.Get("department"),
		Shift:      values.Get("shift"),
		SunTue:     values.Has("suntue"),
		WedThu:     values.Has("wedthu"),
		FriSat:     values.Has("frisat"),
	}

	numbers := []struct {
		key string
		dst *int
	}{
		{"score", &f.Score},
		{"total", &f.Total},
		{"done", &f.Done},
	}
	for _, n := range numbers {
		raw := strings.TrimSpace(values.Get(n.key))
		v, err := strconv.Atoi(raw)
		if err != nil {
			return Fields{}, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, n.key, raw)
		}
		*n.dst = v
	}

	return f, nil
}
