package console

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/platform/memstore"
	"github.com/odyssey-erp/opsdesk/internal/shared"
	"github.com/odyssey-erp/opsdesk/internal/view"
)

type widget struct {
	ID     int64
	Name   string `form:"name" validate:"required"`
	Status string `form:"status"`
}

type countingRecorder struct{ rejected map[string]int }

func (c *countingRecorder) TabRejected(screen string) { c.rejected[screen]++ }

type harness struct {
	t        *testing.T
	router   chi.Router
	widgets  *memstore.Store[widget]
	archive  *memstore.Store[widget]
	logs     *bytes.Buffer
	recorder *countingRecorder
	cookie   *http.Cookie
}

func widgetTable(key string, store *memstore.Store[widget]) *Table[widget] {
	return NewTable(TableConfig[widget]{
		Key:   key,
		Label: key,
		Store: store,
		Screen: listing.Screen[widget]{
			Columns: []listing.Column[widget]{
				{Key: "name", Label: "Name", Value: func(w widget) any { return w.Name }},
				{Key: "status", Label: "Status", Value: func(w widget) any { return w.Status }},
			},
			PageSize: 2,
			RowID:    func(w widget) string { return strconv.FormatInt(w.ID, 10) },
		},
		Form: []FieldSpec{
			{Name: "name", Label: "Name", Required: true},
			{Name: "status", Label: "Status", Type: view.InputSelect, Options: []string{"Open", "Closed"}},
		},
		Decode: func(v url.Values) widget { return widget{Name: v.Get("name"), Status: v.Get("status")} },
		Title:  func(w widget) string { return w.Name },
	})
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	sessions := shared.NewSessionManager(client, "opsdesk_session", time.Hour, false)

	engine, err := view.NewEngine()
	require.NoError(t, err)

	newStore := func() *memstore.Store[widget] {
		return memstore.New(func(w widget) int64 { return w.ID }, func(w *widget, id int64) { w.ID = id })
	}
	h := &harness{t: t, widgets: newStore(), archive: newStore(), logs: &bytes.Buffer{}, recorder: &countingRecorder{rejected: map[string]int{}}}
	h.widgets.Seed(
		widget{Name: "Alpha", Status: "Open"},
		widget{Name: "Beta", Status: "Closed"},
		widget{Name: "Gamma", Status: "Open"},
	)
	h.archive.Seed(widget{Name: "Old pump", Status: "Closed"})

	module, err := NewModule(ModuleConfig{
		Name:      "widgets",
		Title:     "Widgets",
		BasePath:  "/widgets",
		Logger:    slog.New(slog.NewTextHandler(h.logs, nil)),
		Templates: engine,
		CSRF:      shared.NewCSRFManager("test-secret"),
		Recorder:  h.recorder,
	}, widgetTable("Widgets", h.widgets), widgetTable("Archive", h.archive))
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(sessions.Middleware(nil))
	r.Route("/widgets", module.MountRoutes)
	h.router = r
	return h
}

func (h *harness) do(method, target string, body url.Values) *httptest.ResponseRecorder {
	h.t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return h.send(req)
}

func (h *harness) send(req *http.Request) *httptest.ResponseRecorder {
	if h.cookie != nil {
		req.AddCookie(h.cookie)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "opsdesk_session" {
			h.cookie = c
		}
	}
	return rec
}

func (h *harness) listJSON(target string) listResponse {
	h.t.Helper()
	rec := h.do(http.MethodGet, target, nil)
	require.Equal(h.t, http.StatusOK, rec.Code)
	var resp listResponse
	require.NoError(h.t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestListDefaultsToFirstTab(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/widgets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Alpha")
	assert.Contains(t, body, "Beta")
	assert.NotContains(t, body, "Gamma", "page size is two")
	assert.Contains(t, body, `href="/widgets/new?tab=Widgets"`)
	assert.Contains(t, body, `href="?page=2&amp;tab=Widgets"`)
}

func TestInvalidTabKeepsPreviousSelection(t *testing.T) {
	h := newHarness(t)

	resp := h.listJSON("/widgets/api?tab=Archive")
	assert.Equal(t, "Archive", resp.Tab)

	resp = h.listJSON("/widgets/api?tab=Archiv")
	assert.Equal(t, "Archive", resp.Tab)
	require.NotNil(t, resp.View)
	require.Len(t, resp.View.Rows, 1)
	assert.Equal(t, "Old pump", resp.View.Rows[0].Cells[0])

	assert.Contains(t, h.logs.String(), "level=WARN")
	assert.Contains(t, h.logs.String(), "requested=Archiv")
	assert.Contains(t, h.logs.String(), "closest=Archive")
	assert.Equal(t, 1, h.recorder.rejected["widgets"])

	// The remembered tab applies when no tab is requested.
	resp = h.listJSON("/widgets/api")
	assert.Equal(t, "Archive", resp.Tab)
}

func TestListJSONFiltersAndPages(t *testing.T) {
	h := newHarness(t)

	resp := h.listJSON("/widgets/api?tab=Widgets&f.status=open")
	require.NotNil(t, resp.View)
	require.Len(t, resp.View.Rows, 2)
	assert.Equal(t, "Alpha", resp.View.Rows[0].Cells[0])
	assert.Equal(t, "Gamma", resp.View.Rows[1].Cells[0])
	assert.True(t, resp.View.SearchOpen)

	resp = h.listJSON("/widgets/api?tab=Widgets&page=9")
	assert.Equal(t, 2, resp.View.Page.Number)
	assert.True(t, resp.View.Page.Clamped)

	resp = h.listJSON("/widgets/api?tab=Widgets&f.name=zzz")
	assert.True(t, resp.View.Empty)
	assert.Equal(t, listing.EmptyMessage, resp.View.EmptyMessage)
}

func TestCreateValidationRendersInline(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/widgets?tab=Widgets", url.Values{"status": {"Open"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required")
	assert.Equal(t, 3, h.widgets.Len())
}

func TestCreateAppendsAndRedirectsWithFlash(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodPost, "/widgets?tab=Widgets", url.Values{"name": {"Delta"}, "status": {"Open"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/widgets?tab=Widgets", rec.Header().Get("Location"))

	rows := h.widgets.List()
	require.Len(t, rows, 4)
	assert.Equal(t, "Delta", rows[3].Name)

	rec = h.do(http.MethodGet, "/widgets?tab=Widgets&page=2", nil)
	assert.Contains(t, rec.Body.String(), "Widgets added")
	assert.Contains(t, rec.Body.String(), "Delta")
}

func TestCreateUnknownTab(t *testing.T) {
	h := newHarness(t)
	rec := h.do(http.MethodPost, "/widgets?tab=Nope", url.Values{"name": {"x"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFormRendersFields(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/widgets/new?tab=Archive", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `action="/widgets?tab=Archive"`)
	assert.Contains(t, body, `name="name"`)
	assert.Contains(t, body, `<option value="Closed">Closed</option>`)
	assert.Contains(t, body, `href="/widgets?tab=Archive"`)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/widgets/2/delete?tab=Widgets", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="confirm" value="yes"`)
	assert.Contains(t, rec.Body.String(), "Beta")

	rec = h.do(http.MethodPost, "/widgets/2/delete?tab=Widgets", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 3, h.widgets.Len())

	rec = h.do(http.MethodPost, "/widgets/2/delete?tab=Widgets", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, 2, h.widgets.Len())
	_, err := h.widgets.Get(2)
	assert.ErrorIs(t, err, memstore.ErrNotFound)

	rec = h.do(http.MethodGet, "/widgets?tab=Widgets", nil)
	assert.Contains(t, rec.Body.String(), "Widgets deleted")
}

func TestDeleteMissingRecordFlashesError(t *testing.T) {
	h := newHarness(t)

	rec := h.do(http.MethodGet, "/widgets/99/delete?tab=Widgets", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = h.do(http.MethodGet, "/widgets?tab=Widgets", nil)
	assert.Contains(t, rec.Body.String(), "The requested record no longer exists")
}

func TestCreateJSON(t *testing.T) {
	h := newHarness(t)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/widgets/api?tab=Archive", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return h.send(req)
	}

	rec := post(`{"name":"Compressor","status":"Closed"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 2, h.archive.Len())

	rec = post(`{"status":"Closed"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Name is required")

	rec = post(`[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestModuleRejectsDuplicateKeys(t *testing.T) {
	store := memstore.New(func(w widget) int64 { return w.ID }, func(w *widget, id int64) { w.ID = id })
	_, err := NewModule(ModuleConfig{Name: "dup"}, widgetTable("A", store), widgetTable("A", store))
	assert.ErrorIs(t, err, listing.ErrDuplicateTabKey)
}

func TestTableReadOnly(t *testing.T) {
	store := memstore.New(func(w widget) int64 { return w.ID }, func(w *widget, id int64) { w.ID = id })
	store.Seed(widget{Name: "Fixed"})
	table := NewTable(TableConfig[widget]{Key: "Fixed", Label: "Fixed", Store: store, ReadOnly: true})

	assert.False(t, table.Deletable())
	assert.ErrorIs(t, table.Delete(context.Background(), 1), ErrReadOnly)
	assert.Equal(t, 1, store.Len())
}

func TestFilterFormIDIsSlug(t *testing.T) {
	for key, want := range map[string]string{
		"Widgets":          "widgets",
		"Stock Items":      "stock-items",
		"Incident  Status": "incident-status",
		"CAPA / Review ":   "capa-review",
	} {
		assert.Equal(t, want, slug(key), key)
	}

	h := newHarness(t)
	rec := h.do(http.MethodGet, "/widgets?tab=Widgets&search=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `id="filters-widgets"`)
	assert.Contains(t, body, `form="filters-widgets"`)
}
