package roster

import (
	"context"
	"log/slog"
	"sync"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger/sl"
)

// Persister stores the full employee collection, replacing whatever was there.
type Persister interface {
	ReplaceEmployees(ctx context.Context, employees []domain.Employee) error
}

// Confirmer is the yes/no gate in front of a delete.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// PersistResult describes one finished persistence call. Seq numbers calls in
// the order they were issued, so results may arrive out of order.
type PersistResult struct {
	Seq   uint64
	Count int
	Err   error
}

const DeletePrompt = "هل أنت متأكد من حذف هذا الموظف؟"

type Option func(*Controller)

func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n >= 1 {
			c.pageSize = n
		}
	}
}

// WithPersistCallback registers fn to run on the persistence goroutine after
// each call completes.
func WithPersistCallback(fn func(PersistResult)) Option {
	return func(c *Controller) {
		c.onPersisted = fn
	}
}

// Controller owns the employee table state: the store, the active filter and
// the current page. It is not safe for concurrent use; only persistence runs on
// other goroutines, and those only see snapshots.
type Controller struct {
	log         *slog.Logger
	store       *Store
	persister   Persister
	onPersisted func(PersistResult)

	criteria Criteria
	pageSize int
	page     int
	filtered []domain.Employee

	seq      uint64
	inflight sync.WaitGroup
}

func NewController(log *slog.Logger, initial []domain.Employee, persister Persister, opts ...Option) *Controller {
	c := &Controller{
		log:       log.With(slog.String("op", "roster.Controller")),
		store:     NewStore(initial),
		persister: persister,
		pageSize:  DefaultPageSize,
		page:      1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.refilter()
	return c
}

// View returns the current page.
func (c *Controller) View() Page {
	return Paginate(c.filtered, c.pageSize, c.page)
}

func (c *Controller) Criteria() Criteria {
	return c.criteria
}

// Employees returns a copy of the whole collection.
func (c *Controller) Employees() []domain.Employee {
	return c.store.All()
}

// ApplyFilters sets new criteria and goes back to the first page.
func (c *Controller) ApplyFilters(criteria Criteria) Page {
	c.criteria = criteria
	c.refilter()
	return c.View()
}

// ChangePage moves to page n if it exists. Otherwise the current page is kept
// and false is returned.
func (c *Controller) ChangePage(n int) (Page, bool) {
	if !ValidPage(TotalPages(len(c.filtered), c.pageSize), n) {
		return c.View(), false
	}
	c.page = n
	return c.View(), true
}

// Create appends a new employee with the next free id.
func (c *Controller) Create(ctx context.Context, f Fields) domain.Employee {
	e := f.Employee(c.store.NextID())
	c.store.Append(e)
	c.mutated(ctx)
	return e
}

// Lookup finds an employee for the edit form.
func (c *Controller) Lookup(id int64) (domain.Employee, bool) {
	return c.store.Find(id)
}

// Update replaces every field except the id. Unknown ids are ignored.
func (c *Controller) Update(ctx context.Context, id int64, f Fields) bool {
	if !c.store.Replace(id, f.Employee(id)) {
		c.log.DebugContext(ctx, "employee not found, update skipped", slog.Int64("id", id))
		return false
	}
	c.mutated(ctx)
	return true
}

// Delete removes an employee after the confirmer agrees. Unknown ids, a nil
// confirmer and declined confirmations leave the store untouched.
func (c *Controller) Delete(ctx context.Context, id int64, confirm Confirmer) bool {
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return false
	}
	if !c.store.Remove(id) {
		c.log.DebugContext(ctx, "employee not found, delete skipped", slog.Int64("id", id))
		return false
	}
	c.mutated(ctx)
	return true
}

// Wait blocks until every persistence call issued so far has finished.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) refilter() {
	c.filtered = Filter(c.store.employees, c.criteria)
	c.page = 1
}

func (c *Controller) mutated(ctx context.Context) {
	c.refilter()
	c.persist(ctx)
}

// persist sends a snapshot of the collection without waiting for the result.
// The call outlives ctx cancellation.
func (c *Controller) persist(ctx context.Context) {
	if c.persister == nil {
		return
	}

	c.seq++
	seq := c.seq
	snapshot := c.store.All()
	taskCtx := context.WithoutCancel(ctx)

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()

		err := c.persister.ReplaceEmployees(taskCtx, snapshot)
		if err != nil {
			c.log.ErrorContext(taskCtx, "failed to persist employees", slog.Uint64("seq", seq), sl.Err(err))
		} else {
			c.log.DebugContext(taskCtx, "employees persisted", slog.Uint64("seq", seq), slog.Int("count", len(snapshot)))
		}

		if c.onPersisted != nil {
			c.onPersisted(PersistResult{Seq: seq, Count: len(snapshot), Err: err})
		}
	}()
}
