package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/config"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/metrics"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/repository"
)

const getAllEmployeesQuery = `
		SELECT id, name, email, department, shift, score, total, done, suntue, wedthu, frisat
		FROM employees ORDER BY position
	`

const clearEmployeesQuery = `DELETE FROM employees`

const insertEmployeeQuery = `
		INSERT INTO employees (id, position, name, email, department, shift, score, total, done, suntue, wedthu, frisat)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

const deleteEmployeeQuery = `
		DELETE FROM employees WHERE id = $1
	`

var employeeColumns = []string{"id", "name", "email", "department", "shift", "score", "total", "done", "suntue", "wedthu", "frisat"}

func newRepository(t *testing.T) (*repository.Repository, pgxmock.PgxPoolIface, *metrics.Metrics) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	m := metrics.NewMetrics(prometheus.NewRegistry())

	return repository.NewRepository(cfg, mock, m), mock, m
}

func TestGetAllEmployees_Success(t *testing.T) {
	t.Parallel()

	repo, mock, _ := newRepository(t)

	rows := mock.NewRows(employeeColumns).
		AddRow(int64(2), "Sara", "sara@org.sa", "F", "7am-3pm", 88, 70, 66, false, true, false).
		AddRow(int64(1), "Ali", "ali@org.sa", "D", "9am-5pm", 90, 50, 45, true, false, true)
	mock.ExpectQuery(regexp.QuoteMeta(getAllEmployeesQuery)).WillReturnRows(rows)

	employees, err := repo.GetAllEmployees(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Employee{
		{ID: 2, Name: "Sara", Email: "sara@org.sa", Department: "F", Shift: "7am-3pm", Score: 88, Total: 70, Done: 66, WedThu: true},
		{ID: 1, Name: "Ali", Email: "ali@org.sa", Department: "D", Shift: "9am-5pm", Score: 90, Total: 50, Done: 45, SunTue: true, FriSat: true},
	}, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllEmployees_Empty(t *testing.T) {
	t.Parallel()

	repo, mock, _ := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(getAllEmployeesQuery)).WillReturnRows(mock.NewRows(employeeColumns))

	employees, err := repo.GetAllEmployees(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, employees)
	assert.Empty(t, employees)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetAllEmployees_QueryError(t *testing.T) {
	t.Parallel()

	repo, mock, _ := newRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(getAllEmployeesQuery)).WillReturnError(assert.AnError)

	_, err := repo.GetAllEmployees(context.Background())
	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, "failed to query employees: "+assert.AnError.Error(), err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceEmployees_Success(t *testing.T) {
	t.Parallel()

	repo, mock, m := newRepository(t)

	employees := []domain.Employee{
		{ID: 3, Name: "Reem", Department: "E", Score: 92, Total: 40, Done: 36, SunTue: true},
		{ID: 1, Name: "Ali", Department: "D", Score: 90, Total: 50, Done: 45, FriSat: true},
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(clearEmployeesQuery)).WillReturnResult(pgxmock.NewResult("DELETE", 4))
	for i, e := range employees {
		mock.ExpectExec(regexp.QuoteMeta(insertEmployeeQuery)).
			WithArgs(e.ID, i, e.Name, e.Email, e.Department, e.Shift, e.Score, e.Total, e.Done, e.SunTue, e.WedThu, e.FriSat).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceEmployees(context.Background(), employees))
	require.NoError(t, mock.ExpectationsWereMet())

	assert.InDelta(t, 1, testutil.ToFloat64(m.RosterReplaced), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.RosterSize), 0)
}

func TestReplaceEmployees_EmptyCollection(t *testing.T) {
	t.Parallel()

	repo, mock, _ := newRepository(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(clearEmployeesQuery)).WillReturnResult(pgxmock.NewResult("DELETE", 2))
	mock.ExpectCommit()

	require.NoError(t, repo.ReplaceEmployees(context.Background(), nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceEmployees_InsertErrorRollsBack(t *testing.T) {
	t.Parallel()

	repo, mock, m := newRepository(t)

	e := domain.Employee{ID: 1, Name: "Ali"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(clearEmployeesQuery)).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec(regexp.QuoteMeta(insertEmployeeQuery)).
		WithArgs(e.ID, 0, e.Name, e.Email, e.Department, e.Shift, e.Score, e.Total, e.Done, e.SunTue, e.WedThu, e.FriSat).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.ReplaceEmployees(context.Background(), []domain.Employee{e})
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed to insert employee 1")
	require.NoError(t, mock.ExpectationsWereMet())

	assert.InDelta(t, 0, testutil.ToFloat64(m.RosterReplaced), 0)
}

func TestReplaceEmployees_BeginError(t *testing.T) {
	t.Parallel()

	repo, mock, _ := newRepository(t)

	mock.ExpectBegin().WillReturnError(assert.AnError)

	err := repo.ReplaceEmployees(context.Background(), []domain.Employee{{ID: 1}})
	require.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEmployee(t *testing.T) {
	t.Parallel()

	repo, mock, _ := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteEmployeeQuery)).
		WithArgs(int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(deleteEmployeeQuery)).
		WithArgs(int64(42)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	found, err := repo.DeleteEmployee(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, found)

	found, err = repo.DeleteEmployee(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteEmployee_Error(t *testing.T) {
	t.Parallel()

	repo, mock, _ := newRepository(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteEmployeeQuery)).
		WithArgs(int64(3)).
		WillReturnError(assert.AnError)

	_, err := repo.DeleteEmployee(context.Background(), 3)
	require.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPing(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	cfg := &config.Config{}
	cfg.Database.QueryTimeout = 5
	repo := repository.NewRepository(cfg, mock, nil)

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(assert.AnError)

	require.NoError(t, repo.Ping(context.Background()))
	require.ErrorIs(t, repo.Ping(context.Background()), assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}
