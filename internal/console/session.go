// Package console is the terminal front end for the employee table.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/roster"
)

// DashboardSource is implemented by *client.Client.
type DashboardSource interface {
	Dashboard(ctx context.Context) (domain.Dashboard, error)
	ToggleSystemStatus(ctx context.Context, on bool) (bool, error)
}

var errAborted = errors.New("console: input closed")

const help = `commands:
  search [text]     filter by name or email, no text clears
  dept [code]       filter by exact department, no code clears
  day [key]         suntue, wedthu or frisat, no key clears
  page <n>, next, prev
  add               create an employee
  edit <id>         change an employee
  delete <id>       remove an employee
  list              show the current page
  charts            show the dashboard charts
  toggle on|off     switch the system status
  help, quit`

type Session struct {
	in        *bufio.Scanner
	dashboard DashboardSource

	mu  sync.Mutex
	out io.Writer

	ctrl *roster.Controller
}

func NewSession(in io.Reader, out io.Writer, dashboard DashboardSource) *Session {
	return &Session{
		in:        bufio.NewScanner(in),
		out:       out,
		dashboard: dashboard,
	}
}

// Persisted reports a finished save. It is meant for roster.WithPersistCallback
// and runs on the persistence goroutine.
func (s *Session) Persisted(r roster.PersistResult) {
	if r.Err != nil {
		s.printf("! save #%d failed, the server copy is stale: %v\n", r.Seq, r.Err)
		return
	}
	s.printf("saved #%d (%d employees)\n", r.Seq, r.Count)
}

// Run reads commands until quit or end of input, then waits for pending saves.
func (s *Session) Run(ctx context.Context, ctrl *roster.Controller) error {
	s.ctrl = ctrl
	defer ctrl.Wait()

	s.render(ctrl.View())
	for {
		line, err := s.prompt("> ")
		if err != nil {
			if errors.Is(err, errAborted) {
				return nil
			}
			return err
		}

		quit, err := s.execute(ctx, line)
		if err != nil {
			s.printf("! %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (s *Session) execute(ctx context.Context, line string) (bool, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		s.printf("%s\n", help)
	case "list":
		s.render(s.ctrl.View())
	case "search":
		c := s.ctrl.Criteria()
		c.Search = arg
		s.render(s.ctrl.ApplyFilters(c))
	case "dept":
		c := s.ctrl.Criteria()
		c.Department = arg
		s.render(s.ctrl.ApplyFilters(c))
	case "day":
		if arg == "none" {
			arg = ""
		}
		day, err := domain.ParseDayFlag(arg)
		if err != nil {
			return false, err
		}
		c := s.ctrl.Criteria()
		c.Day = day
		s.render(s.ctrl.ApplyFilters(c))
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			return false, fmt.Errorf("page needs a number: %q", arg)
		}
		s.changePage(n)
	case "next":
		s.changePage(s.ctrl.View().Page + 1)
	case "prev":
		s.changePage(s.ctrl.View().Page - 1)
	case "add":
		return false, s.add(ctx)
	case "edit":
		return false, s.edit(ctx, arg)
	case "delete":
		return false, s.delete(ctx, arg)
	case "charts":
		return false, s.charts(ctx)
	case "toggle":
		return false, s.toggle(ctx, arg)
	default:
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}

	return false, nil
}

func (s *Session) changePage(n int) {
	v, ok := s.ctrl.ChangePage(n)
	if !ok {
		s.printf("no page %d\n", n)
		return
	}
	s.render(v)
}

func (s *Session) add(ctx context.Context) error {
	values, err := s.form(roster.Fields{})
	if err != nil {
		return err
	}
	f, err := roster.ParseForm(values)
	if err != nil {
		return err
	}

	e := s.ctrl.Create(ctx, f)
	s.printf("created employee %d\n", e.ID)
	s.render(s.ctrl.View())
	return nil
}

func (s *Session) edit(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("edit needs an id: %q", arg)
	}

	current, ok := s.ctrl.Lookup(id)
	if !ok {
		s.printf("no employee %d\n", id)
		return nil
	}

	values, err := s.form(roster.FieldsOf(current))
	if err != nil {
		return err
	}
	f, err := roster.ParseForm(values)
	if err != nil {
		return err
	}

	if s.ctrl.Update(ctx, id, f) {
		s.printf("updated employee %d\n", id)
	}
	s.render(s.ctrl.View())
	return nil
}

func (s *Session) delete(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("delete needs an id: %q", arg)
	}

	if _, ok := s.ctrl.Lookup(id); !ok {
		s.printf("no employee %d\n", id)
		return nil
	}

	if s.ctrl.Delete(ctx, id, roster.ConfirmFunc(s.confirm)) {
		s.printf("deleted employee %d\n", id)
		s.render(s.ctrl.View())
		return nil
	}
	s.printf("delete cancelled\n")
	return nil
}

func (s *Session) charts(ctx context.Context) error {
	if s.dashboard == nil {
		return errors.New("no dashboard source")
	}
	d, err := s.dashboard.Dashboard(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return RenderDashboard(s.out, d)
}

func (s *Session) toggle(ctx context.Context, arg string) error {
	if arg != "on" && arg != "off" {
		return fmt.Errorf("toggle needs on or off: %q", arg)
	}
	if s.dashboard == nil {
		return errors.New("no dashboard source")
	}

	on, err := s.dashboard.ToggleSystemStatus(ctx, arg == "on")
	if err != nil {
		return err
	}
	if on {
		s.printf("system: on\n")
	} else {
		s.printf("system: off\n")
	}
	return nil
}

// form asks for every field. An empty answer keeps the value from defaults.
func (s *Session) form(defaults roster.Fields) (url.Values, error) {
	values := url.Values{}

	text := []struct {
		key, label, def string
	}{
		{"name", "name", defaults.Name},
		{"email", "email", defaults.Email},
		{"department", "department", defaults.Department},
		{"shift", "shift", defaults.Shift},
		{"score", "score", strconv.Itoa(defaults.Score)},
		{"total", "total tasks", strconv.Itoa(defaults.Total)},
		{"done", "done tasks", strconv.Itoa(defaults.Done)},
	}
	for _, field := range text {
		answer, err := s.prompt(fmt.Sprintf("%s [%s]: ", field.label, field.def))
		if err != nil {
			return nil, err
		}
		if answer == "" {
			answer = field.def
		}
		values.Set(field.key, answer)
	}

	flags := []struct {
		flag domain.DayFlag
		def  bool
	}{
		{domain.DaySunTue, defaults.SunTue},
		{domain.DayWedThu, defaults.WedThu},
		{domain.DayFriSat, defaults.FriSat},
	}
	for _, f := range flags {
		on, err := s.yesNo(fmt.Sprintf("works %s (%s)", f.flag.Label(), f.flag), f.def)
		if err != nil {
			return nil, err
		}
		if on {
			values.Set(f.flag.String(), "on")
		}
	}

	return values, nil
}

func (s *Session) confirm(prompt string) bool {
	ok, err := s.yesNo(prompt, false)
	return err == nil && ok
}

func (s *Session) yesNo(question string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}

	answer, err := s.prompt(fmt.Sprintf("%s [%s]: ", question, hint))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (s *Session) prompt(text string) (string, error) {
	s.printf("%s", text)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", errAborted
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Session) render(p roster.Page) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = RenderPage(s.out, p)
}

func (s *Session) printf(format string, args ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, format, args...)
}
