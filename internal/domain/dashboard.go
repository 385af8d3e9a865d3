package domain

import "strings"

type ChartEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Dashboard struct {
	EmailCategories []ChartEntry `json:"emailCategories"`
	Departments     []ChartEntry `json:"departments"`
	SystemStatus    bool         `json:"systemStatus"`
}

// DefaultEmailCategories is the inbox breakdown shown on the pie chart.
var DefaultEmailCategories = []ChartEntry{
	{Label: "Organization", Count: 45},
	{Label: "Lab", Count: 23},
	{Label: "Request", Count: 67},
	{Label: "Other", Count: 12},
}

var categoryTranslations = map[string]string{
	"Organization": "المؤسسة",
	"Lab":          "المختبر",
	"Request":      "الطلبات",
	"Other":        "أخرى",
}

// KnownDepartments always appear on the bar chart, even with zero staff.
var KnownDepartments = []string{"D", "F", "E", "MD"}

// TranslateCategories replaces known category labels with their display text.
// Unmapped labels pass through unchanged.
func TranslateCategories(categories []ChartEntry) []ChartEntry {
	out := make([]ChartEntry, 0, len(categories))
	for _, c := range categories {
		if t, ok := categoryTranslations[c.Label]; ok {
			c.Label = t
		}
		out = append(out, c)
	}
	return out
}

// CountDepartments counts employees per upper-cased department. Known departments
// come first in fixed order, any others follow in order of first appearance.
func CountDepartments(employees []Employee) []ChartEntry {
	stats := make([]ChartEntry, 0, len(KnownDepartments))
	index := make(map[string]int, len(KnownDepartments))
	for _, d := range KnownDepartments {
		index[d] = len(stats)
		stats = append(stats, ChartEntry{Label: d})
	}

	for _, e := range employees {
		d := strings.ToUpper(e.Department)
		i, ok := index[d]
		if !ok {
			i = len(stats)
			index[d] = i
			stats = append(stats, ChartEntry{Label: d})
		}
		stats[i].Count++
	}

	return stats
}

func NewDashboard(employees []Employee, systemStatus bool) Dashboard {
	return Dashboard{
		EmailCategories: TranslateCategories(DefaultEmailCategories),
		Departments:     CountDepartments(employees),
		SystemStatus:    systemStatus,
	}
}
