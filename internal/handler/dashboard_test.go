package handler_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
)

func TestGetDashboard(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	cookie := ts.login(t)
	ts.repo.employees = []domain.Employee{{ID: 1, Department: "d"}, {ID: 2, Department: "D"}, {ID: 3, Department: "hr"}}

	var d domain.Dashboard
	env := decode(t, ts.do(t, http.MethodGet, "/api/dashboard", nil, cookie), &d)
	require.True(t, env.Success, env.Message)

	assert.True(t, d.SystemStatus)
	assert.Equal(t, domain.TranslateCategories(domain.DefaultEmailCategories), d.EmailCategories)
	assert.Equal(t, []domain.ChartEntry{
		{Label: "D", Count: 2}, {Label: "F"}, {Label: "E"}, {Label: "MD"}, {Label: "HR", Count: 1},
	}, d.Departments)
}

func TestToggleSystemStatus(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	cookie := ts.login(t)

	tests := []struct {
		body any
		want bool
	}{
		{body: map[string]string{"state": "off"}, want: false},
		{body: map[string]string{"state": "on"}, want: true},
		{body: map[string]string{}, want: false},
		{body: map[string]string{"state": "yes"}, want: false},
	}

	for _, tt := range tests {
		var res map[string]bool
		env := decode(t, ts.do(t, http.MethodPost, "/api/toggle", tt.body, cookie), &res)
		require.True(t, env.Success)
		assert.Equal(t, tt.want, res["systemStatus"])

		on, err := ts.status.SystemStatus(t.Context())
		require.NoError(t, err)
		assert.Equal(t, tt.want, on)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"database":"ok","redis":"ok"}`, rec.Body.String())

	ts.status.pingErr = assert.AnError
	rec = ts.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"database":"ok","redis":"unavailable"}`, rec.Body.String())
}
