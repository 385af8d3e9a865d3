package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
)

// GetAllEmployees returns the collection in the order it was last stored.
func (r *Repository) GetAllEmployees(ctx context.Context) ([]domain.Employee, error) {
	defer r.observe("get_employees", time.Now())

	query := `
		SELECT id, name, email, department, shift, score, total, done, suntue, wedthu, frisat
		FROM employees ORDER BY position
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		dst := []any{&e.ID, &e.Name, &e.Email, &e.Department, &e.Shift, &e.Score, &e.Total, &e.Done, &e.SunTue, &e.WedThu, &e.FriSat}
		if err := rows.Scan(dst...); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	return employees, nil
}

// ReplaceEmployees swaps the stored collection for employees in a single
// transaction. Slice order becomes the stored order.
func (r *Repository) ReplaceEmployees(ctx context.Context, employees []domain.Employee) (err error) {
	defer r.observe("replace_employees", time.Now())

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			err = errors.Join(err, fmt.Errorf("failed to rollback: %w", rbErr))
		}
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM employees`); err != nil {
		return fmt.Errorf("failed to clear employees: %w", err)
	}

	query := `
		INSERT INTO employees (id, position, name, email, department, shift, score, total, done, suntue, wedthu, frisat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	for i, e := range employees {
		args := []any{e.ID, i, e.Name, e.Email, e.Department, e.Shift, e.Score, e.Total, e.Done, e.SunTue, e.WedThu, e.FriSat}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert employee %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit employees: %w", err)
	}
	committed = true

	if r.metrics != nil {
		r.metrics.RosterReplaced.Inc()
		r.metrics.RosterSize.Set(float64(len(employees)))
	}

	return nil
}

// DeleteEmployee removes one employee and reports whether it existed.
func (r *Repository) DeleteEmployee(ctx context.Context, id int64) (bool, error) {
	defer r.observe("delete_employee", time.Now())

	query := `
		DELETE FROM employees WHERE id = $1
	`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete employee: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
