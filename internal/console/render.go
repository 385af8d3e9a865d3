package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/roster"
)

const barWidth = 40

// RenderPage prints the page as a table followed by the pagination controls.
func RenderPage(w io.Writer, p roster.Page) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tDEPT\tSHIFT\tSCORE\tTASKS\tDAYS")
	for _, e := range p.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\t%d/%d\t%s\n",
			e.ID, e.Name, e.Email, strings.ToUpper(e.Department), e.Shift,
			e.Score, e.Done, e.Total, strings.Join(e.WorkingDays(), " "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(p.Items) == 0 {
		fmt.Fprintln(w, "no employees match")
	}
	if controls := Pagination(p); controls != "" {
		fmt.Fprintln(w, controls)
	}
	_, err := fmt.Fprintf(w, "%d employee(s)\n", p.Total)
	return err
}

// Pagination renders "« 1 [2] 3 »". It is empty when there is at most one page.
func Pagination(p roster.Page) string {
	if p.TotalPages <= 1 {
		return ""
	}

	parts := make([]string, 0, p.TotalPages+2)
	parts = append(parts, "«")
	for i := 1; i <= p.TotalPages; i++ {
		if i == p.Page {
			parts = append(parts, "["+strconv.Itoa(i)+"]")
			continue
		}
		parts = append(parts, strconv.Itoa(i))
	}
	parts = append(parts, "»")

	return strings.Join(parts, " ")
}

// RenderDashboard prints both charts as horizontal bars.
func RenderDashboard(w io.Writer, d domain.Dashboard) error {
	state := "off"
	if d.SystemStatus {
		state = "on"
	}
	fmt.Fprintf(w, "system: %s\n\n", state)

	fmt.Fprintln(w, "email categories")
	if err := renderBars(w, d.EmailCategories); err != nil {
		return err
	}

	fmt.Fprintln(w, "\ndepartments")
	return renderBars(w, d.Departments)
}

func renderBars(w io.Writer, entries []domain.ChartEntry) error {
	peak := 0
	for _, e := range entries {
		peak = max(peak, e.Count)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range entries {
		n := 0
		if peak > 0 {
			n = e.Count * barWidth / peak
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", e.Label, e.Count, strings.Repeat("#", n))
	}
	return tw.Flush()
}
