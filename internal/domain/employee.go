package domain

import (
	"errors"
	"fmt"
)

type Employee struct {
	ID         int64  `json:"id" validate:"gte=1"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Shift      string `json:"shift"`
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Done       int    `json:"done"`
	SunTue     bool   `json:"suntue"`
	WedThu     bool   `json:"wedthu"`
	FriSat     bool   `json:"frisat"`
}

// DayFlag selects one of the three working-day pairs. DayNone disables day filtering.
type DayFlag int

const (
	DayNone DayFlag = iota
	DaySunTue
	DayWedThu
	DayFriSat
)

var ErrUnknownDayFlag = errors.New("domain: unknown day flag")

// DayFlags lists the named flags in display order.
var DayFlags = []DayFlag{DaySunTue, DayWedThu, DayFriSat}

func ParseDayFlag(s string) (DayFlag, error) {
	switch s {
	case "":
		return DayNone, nil
	case "suntue":
		return DaySunTue, nil
	case "wedthu":
		return DayWedThu, nil
	case "frisat":
		return DayFriSat, nil
	default:
		return DayNone, fmt.Errorf("%w: %q", ErrUnknownDayFlag, s)
	}
}

// String returns the form/query key of the flag.
func (f DayFlag) String() string {
	switch f {
	case DaySunTue:
		return "suntue"
	case DayWedThu:
		return "wedthu"
	case DayFriSat:
		return "frisat"
	default:
		return ""
	}
}

// Label returns the table badge text for the flag.
func (f DayFlag) Label() string {
	switch f {
	case DaySunTue:
		return "أح-ث"
	case DayWedThu:
		return "أر-خ"
	case DayFriSat:
		return "ج-س"
	default:
		return ""
	}
}

// DayLabels maps every named flag key to its label.
func DayLabels() map[string]string {
	labels := make(map[string]string, len(DayFlags))
	for _, f := range DayFlags {
		labels[f.String()] = f.Label()
	}
	return labels
}

// Has reports whether the employee works the given day pair. DayNone always matches.
func (e Employee) Has(f DayFlag) bool {
	switch f {
	case DaySunTue:
		return e.SunTue
	case DayWedThu:
		return e.WedThu
	case DayFriSat:
		return e.FriSat
	default:
		return true
	}
}

// WorkingDays returns the labels of the set flags in display order.
func (e Employee) WorkingDays() []string {
	days := make([]string, 0, len(DayFlags))
	for _, f := range DayFlags {
		if e.Has(f) {
			days = append(days, f.Label())
		}
	}
	return days
}
