// Package consoletest drives console modules over HTTP in tests.
package consoletest

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/opsdesk/internal/console"
	"github.com/odyssey-erp/opsdesk/internal/shared"
	"github.com/odyssey-erp/opsdesk/internal/view"
)

const cookieName = "opsdesk_session"

// Client keeps one browser session against a module router.
type Client struct {
	t      *testing.T
	router chi.Router
	cookie *http.Cookie
	// Logs receives everything the module logs.
	Logs *bytes.Buffer
}

// Config returns a module config with a real template engine and a logger
// writing into logs.
func Config(t *testing.T, logs *bytes.Buffer) console.ModuleConfig {
	t.Helper()
	engine, err := view.NewEngine()
	require.NoError(t, err)
	return console.ModuleConfig{
		Logger:    slog.New(slog.NewTextHandler(logs, nil)),
		Templates: engine,
		CSRF:      shared.NewCSRFManager("test-secret"),
	}
}

// New routes basePath to mount behind a miniredis-backed session.
func New(t *testing.T, basePath string, logs *bytes.Buffer, mount func(chi.Router)) *Client {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := shared.NewSessionManager(client, cookieName, time.Hour, false)

	r := chi.NewRouter()
	r.Use(sessions.Middleware(nil))
	r.Route(basePath, mount)
	return &Client{t: t, router: r, Logs: logs}
}

// Do sends req with the client's session cookie.
func (c *Client) Do(req *http.Request) *httptest.ResponseRecorder {
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookieName {
			c.cookie = ck
		}
	}
	return rec
}

// Get issues a GET.
func (c *Client) Get(target string) *httptest.ResponseRecorder {
	return c.Do(httptest.NewRequest(http.MethodGet, target, nil))
}

// PostForm issues a form-encoded POST.
func (c *Client) PostForm(target string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.Do(req)
}

// List is the decoded body of a module's JSON list endpoint.
type List struct {
	Module string `json:"module"`
	Tab    string `json:"tab"`
	View   *struct {
		Rows []struct {
			ID    string   `json:"id"`
			Cells []string `json:"cells"`
		} `json:"rows"`
		Empty bool `json:"empty"`
		Page  struct {
			Number     int  `json:"number"`
			TotalPages int  `json:"total_pages"`
			Total      int  `json:"total"`
			Clamped    bool `json:"clamped"`
		} `json:"page"`
	} `json:"view"`
	Notice string `json:"notice"`
}

// Column returns cell i of every row on the page.
func (l List) Column(i int) []string {
	if l.View == nil {
		return nil
	}
	out := make([]string, 0, len(l.View.Rows))
	for _, row := range l.View.Rows {
		out = append(out, row.Cells[i])
	}
	return out
}

// List fetches and decodes a JSON list endpoint.
func (c *Client) List(target string) List {
	c.t.Helper()
	rec := c.Get(target)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var out List
	require.NoError(c.t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
