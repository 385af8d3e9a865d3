package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/config"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/handler"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/metrics"
	"golang.org/x/crypto/bcrypt"
)

const adminPassword = "password123"

type memoryRepository struct {
	mu        sync.Mutex
	employees []domain.Employee
	err       error
	pingErr   error
	panics    bool
}

func (m *memoryRepository) GetAllEmployees(context.Context) ([]domain.Employee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.panics {
		panic("boom")
	}
	if m.err != nil {
		return nil, m.err
	}
	return append([]domain.Employee{}, m.employees...), nil
}

func (m *memoryRepository) ReplaceEmployees(_ context.Context, employees []domain.Employee) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.employees = slices.Clone(employees)
	return nil
}

func (m *memoryRepository) DeleteEmployee(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	before := len(m.employees)
	m.employees = slices.DeleteFunc(m.employees, func(e domain.Employee) bool { return e.ID == id })
	return len(m.employees) < before, nil
}

func (m *memoryRepository) Ping(context.Context) error { return m.pingErr }

func (m *memoryRepository) snapshot() []domain.Employee {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.employees)
}

type memoryStatus struct {
	mu      sync.Mutex
	on      bool
	err     error
	pingErr error
}

func (s *memoryStatus) SystemStatus(context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.on, s.err
}

func (s *memoryStatus) SetSystemStatus(_ context.Context, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.on = on
	return nil
}

func (s *memoryStatus) Ping(context.Context) error { return s.pingErr }

type recordingNotifier struct {
	mu    sync.Mutex
	calls [][]domain.Employee
	err   error
}

func (n *recordingNotifier) RosterReplaced(_ context.Context, employees []domain.Employee) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, employees)
	return n.err
}

type testServer struct {
	h        *handler.Handler
	repo     *memoryRepository
	status   *memoryStatus
	notifier *recordingNotifier
	metrics  *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 7200

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	admin := domain.Admin{Username: "admin", PasswordHash: string(hash), Email: "admin@org.sa", Link: "https://org.sa"}

	ts := &testServer{
		repo:     &memoryRepository{},
		status:   &memoryStatus{on: true},
		notifier: &recordingNotifier{},
		metrics:  metrics.NewMetrics(prometheus.NewRegistry()),
	}
	ts.h, err = handler.NewHandler(cfg, admin, ts.repo, ts.status, ts.notifier, ts.metrics)
	require.NoError(t, err)
	ts.h.RegisterRoutes()

	return ts
}

func (ts *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.h.Mux.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) login(t *testing.T) *http.Cookie {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/auth/login", validLogin())
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == handler.TokenCookieName {
			return c
		}
	}
	t.Fatal("login did not set the session cookie")
	return nil
}

func validLogin() map[string]string {
	return map[string]string{
		"username": "admin",
		"password": adminPassword,
		"email":    "admin@org.sa",
		"link":     "https://org.sa",
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data any) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}
