// Package client talks to the dashboard API on behalf of the terminal front end.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/domain"
	"github.com/sysu-ecnc-dev/staff-dashboard/backend/internal/lib/logger/sl"
)

// ErrRequestFailed wraps every response the server reported as unsuccessful.
var ErrRequestFailed = errors.New("client: request failed")

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Link     string `json:"link"`
}

type Client struct {
	log     *slog.Logger
	baseURL string
	http    *http.Client
}

// New returns a client that keeps the session cookie between calls.
func New(log *slog.Logger, baseURL string) *Client {
	jar, _ := cookiejar.New(nil) // only fails with a non-nil options argument

	return &Client{
		log:     log.With(slog.String("op", "client.Client")),
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, _ []*http.Request) error {
				log.Debug("redirected", slog.String("url", req.URL.String()))
				return nil
			},
		},
	}
}

func (c *Client) Login(ctx context.Context, creds Credentials) error {
	return c.do(ctx, http.MethodPost, "/auth/login", creds, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	if err := c.do(ctx, http.MethodGet, "/api/employees", nil, &employees); err != nil {
		return nil, err
	}
	return employees, nil
}

// ReplaceEmployees sends the whole collection. It satisfies roster.Persister.
func (c *Client) ReplaceEmployees(ctx context.Context, employees []domain.Employee) error {
	if employees == nil {
		employees = []domain.Employee{}
	}
	return c.do(ctx, http.MethodPost, "/api/employees", employees, nil)
}

func (c *Client) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	var d domain.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/dashboard", nil, &d); err != nil {
		return domain.Dashboard{}, err
	}
	return d, nil
}

// ToggleSystemStatus switches the system and returns the stored value.
func (c *Client) ToggleSystemStatus(ctx context.Context, on bool) (bool, error) {
	state := "off"
	if on {
		state = "on"
	}

	var res struct {
		SystemStatus bool `json:"systemStatus"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/toggle", map[string]string{"state": state}, &res); err != nil {
		return false, err
	}
	return res.SystemStatus, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WarnContext(ctx, "failed to close response body", sl.Err(err))
		}
	}()

	c.log.DebugContext(ctx, "request done",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: failed to decode response (status %d): %w", method, path, resp.StatusCode, err)
	}
	if !env.Success {
		return fmt.Errorf("%w: %s %s: %s", ErrRequestFailed, method, path, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: failed to decode data: %w", method, path, err)
		}
	}

	return nil
}
