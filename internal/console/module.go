package console

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/platform/httpx"
	"github.com/odyssey-erp/opsdesk/internal/shared"
	"github.com/odyssey-erp/opsdesk/internal/view"
)

// Recorder receives console events worth counting.
type Recorder interface {
	TabRejected(screen string)
}

// ModuleConfig describes a module and its collaborators.
type ModuleConfig struct {
	// Name identifies the module in sessions, logs and metrics.
	Name      string
	Title     string
	BasePath  string
	Logger    *slog.Logger
	Templates *view.Engine
	CSRF      *shared.CSRFManager
	Recorder  Recorder
}

// Module is a tabbed console screen made of sections.
type Module struct {
	cfg      ModuleConfig
	tabs     listing.TabSet[string]
	sections map[string]Section
}

// TablePanel is the data of the table partial.
type TablePanel struct {
	View      listing.View
	Tab       string
	BasePath  string
	CSRFToken string
	Actions   []RowAction
	Deletable bool
	// FormID is the HTML id of the filter form, derived from Tab.
	FormID string
}

// ScreenPage is the data of the list screen.
type ScreenPage struct {
	Title     string
	BasePath  string
	Tabs      []listing.TabItem
	Active    string
	Label     string
	Panel     listing.Panel
	NewURL    string
	CSRFToken string
}

// FormPage is the data of the add form.
type FormPage struct {
	Title     string
	Label     string
	Action    string
	CancelURL string
	Fields    []view.FormField
	Errors    FieldErrors
}

// NewModule builds a module whose tabs follow the order of sections.
func NewModule(cfg ModuleConfig, sections ...Section) (*Module, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	tabs := make([]listing.Tab[string], 0, len(sections))
	byKey := make(map[string]Section, len(sections))
	for _, s := range sections {
		tabs = append(tabs, listing.Tab[string]{Label: s.Label(), Key: s.Key()})
		byKey[s.Key()] = s
	}
	set, err := listing.NewTabSet(tabs...)
	if err != nil {
		return nil, fmt.Errorf("console: module %s: %w", cfg.Name, err)
	}
	return &Module{cfg: cfg, tabs: set, sections: byKey}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string { return m.cfg.Name }

// Section returns the section mounted under key.
func (m *Module) Section(key string) (Section, bool) {
	s, ok := m.sections[key]
	return s, ok
}

// MountRoutes registers the list, form, delete and JSON routes.
func (m *Module) MountRoutes(r chi.Router) {
	r.Get("/", m.list)
	r.Get("/api", m.listJSON)
	r.Post("/api", m.createJSON)
	r.Get("/new", m.form)
	r.Post("/", m.create)
	r.Get("/{id}/delete", m.confirmDelete)
	r.Post("/{id}/delete", m.delete)
}

// controller restores the screen's tab from the session and applies the
// requested one. A rejected request keeps whatever was active before.
func (m *Module) controller(r *http.Request, requested string) *listing.TabController[string] {
	opts := []listing.TabOption[string]{listing.WithRejectHook[string](func(string) {
		if m.cfg.Recorder != nil {
			m.cfg.Recorder.TabRejected(m.cfg.Name)
		}
	})}
	logger := m.cfg.Logger.With(slog.String("module", m.cfg.Name))
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		if remembered := sess.RememberedTab(m.cfg.Name); remembered != "" && m.tabs.Has(remembered) {
			opts = append(opts, listing.WithDefaultTab(remembered))
		}
	}
	ctrl := listing.NewTabController(m.tabs, logger, opts...)
	if requested != "" {
		ctrl.SelectRaw(requested)
	}
	if sess != nil {
		sess.RememberTab(m.cfg.Name, ctrl.Active())
	}
	return ctrl
}

// sectionFor resolves the tab a write request targets. Writes never fall
// back to another tab.
func (m *Module) sectionFor(r *http.Request) (Section, bool) {
	s, ok := m.sections[r.URL.Query().Get(listing.TabParam)]
	return s, ok
}

// TabURL links to the module list with key active and no filters.
func (m *Module) TabURL(key string) string {
	return m.cfg.BasePath + listing.Query{Tab: key}.URL()
}

// resolve renders the active tab's section through the controller. The
// section's view is built from the request's filters and page.
func (m *Module) resolve(r *http.Request, ctrl *listing.TabController[string], wrap func(Section, listing.View) any) (listing.Panel, error) {
	var viewErr error
	panel := ctrl.Render(func(key string) (listing.Panel, bool) {
		section, ok := m.sections[key]
		if !ok {
			return listing.Panel{}, false
		}
		q := listing.ParseQuery(r.URL.Query(), section.ColumnKeys())
		q.Tab = key
		v, err := section.View(r.Context(), q)
		if err != nil {
			viewErr = err
			return listing.Panel{}, false
		}
		return listing.Panel{Template: "partials/table", Data: wrap(section, v)}, true
	})
	return panel, viewErr
}

func (m *Module) list(w http.ResponseWriter, r *http.Request) {
	ctrl := m.controller(r, r.URL.Query().Get(listing.TabParam))
	active := ctrl.Active()
	csrfToken := m.cfg.CSRF.EnsureToken(shared.SessionFromContext(r.Context()))

	panel, viewErr := m.resolve(r, ctrl, func(section Section, v listing.View) any {
		return TablePanel{
			View:      v,
			Tab:       section.Key(),
			BasePath:  m.cfg.BasePath,
			CSRFToken: csrfToken,
			Actions:   section.Actions(),
			Deletable: section.Deletable(),
			FormID:    "filters-" + slug(section.Key()),
		}
	})
	if viewErr != nil {
		m.cfg.Logger.Error("build list view", slog.String("module", m.cfg.Name), slog.String("tab", active), slog.Any("error", viewErr))
		shared.AddFlash(r.Context(), "error", shared.UserSafeMessage(viewErr))
	}

	label := active
	if s, ok := m.sections[active]; ok {
		label = s.Label()
	}
	m.render(w, r, http.StatusOK, "pages/screen.html", ScreenPage{
		Title:     m.cfg.Title,
		BasePath:  m.cfg.BasePath,
		Tabs:      ctrl.Items(),
		Active:    active,
		Label:     label,
		Panel:     panel,
		NewURL:    m.cfg.BasePath + "/new" + listing.Query{Tab: active}.URL(),
		CSRFToken: csrfToken,
	})
}

type listResponse struct {
	Module string            `json:"module"`
	Tab    string            `json:"tab"`
	Tabs   []listing.TabItem `json:"tabs"`
	View   *listing.View     `json:"view,omitempty"`
	Notice string            `json:"notice,omitempty"`
}

func (m *Module) listJSON(w http.ResponseWriter, r *http.Request) {
	ctrl := m.controller(r, r.URL.Query().Get(listing.TabParam))
	resp := listResponse{Module: m.cfg.Name, Tab: ctrl.Active(), Tabs: ctrl.Items()}

	panel, viewErr := m.resolve(r, ctrl, func(_ Section, v listing.View) any { return v })
	if viewErr != nil {
		m.cfg.Logger.Error("build list json", slog.String("module", m.cfg.Name), slog.Any("error", viewErr))
		httpx.RespondError(w, viewErr)
		return
	}
	if v, ok := panel.Data.(listing.View); ok {
		resp.View = &v
	} else {
		resp.Notice = panel.Placeholder
	}
	httpx.JSON(w, http.StatusOK, resp)
}

func (m *Module) createJSON(w http.ResponseWriter, r *http.Request) {
	section, ok := m.sectionFor(r)
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "unknown tab")
		return
	}
	var body map[string]string
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "body must be a JSON object of strings")
		return
	}
	values := make(url.Values, len(body))
	for k, v := range body {
		values.Set(k, v)
	}
	errs, err := section.Create(r.Context(), values)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if len(errs) > 0 {
		httpx.WriteProblem(w, httpx.ProblemDetail{Title: "Validation Failed", Status: http.StatusBadRequest, Errors: errs})
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"tab": section.Key(), "notice": section.Label() + " added"})
}

func (m *Module) form(w http.ResponseWriter, r *http.Request) {
	section, ok := m.sectionFor(r)
	if !ok {
		http.Error(w, "Unknown tab", http.StatusNotFound)
		return
	}
	m.renderForm(w, r, http.StatusOK, section, r.URL.Query(), FieldErrors{})
}

func (m *Module) create(w http.ResponseWriter, r *http.Request) {
	section, ok := m.sectionFor(r)
	if !ok {
		http.Error(w, "Unknown tab", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	errs, err := section.Create(r.Context(), r.PostForm)
	if err != nil {
		if !errors.Is(err, shared.ErrDuplicate) && !errors.Is(err, shared.ErrValidation) {
			m.cfg.Logger.Error("create record failed", slog.String("module", m.cfg.Name), slog.String("tab", section.Key()), slog.Any("error", err))
		}
		errs = FieldErrors{"general": shared.UserSafeMessage(err)}
	}
	if len(errs) > 0 {
		m.renderForm(w, r, http.StatusBadRequest, section, r.PostForm, errs)
		return
	}
	m.redirectWithFlash(w, r, m.TabURL(section.Key()), "success", section.Label()+" added")
}

func (m *Module) renderForm(w http.ResponseWriter, r *http.Request, status int, section Section, values url.Values, errs FieldErrors) {
	fields, err := section.Fields(r.Context(), values, errs)
	if err != nil {
		m.cfg.Logger.Error("build form", slog.String("module", m.cfg.Name), slog.Any("error", err))
		http.Error(w, "Failed to load form", http.StatusInternalServerError)
		return
	}
	m.render(w, r, status, "pages/form.html", FormPage{
		Title:     m.cfg.Title,
		Label:     section.Label(),
		Action:    m.cfg.BasePath + listing.Query{Tab: section.Key()}.URL(),
		CancelURL: m.TabURL(section.Key()),
		Fields:    fields,
		Errors:    errs,
	})
}

func (m *Module) recordID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid record ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (m *Module) confirmDelete(w http.ResponseWriter, r *http.Request) {
	section, ok := m.sectionFor(r)
	if !ok {
		http.Error(w, "Unknown tab", http.StatusNotFound)
		return
	}
	id, ok := m.recordID(w, r)
	if !ok {
		return
	}
	if !section.Deletable() {
		m.redirectWithFlash(w, r, m.TabURL(section.Key()), "error", ErrReadOnly.Error())
		return
	}
	title, err := section.Describe(r.Context(), id)
	if err != nil {
		m.redirectWithFlash(w, r, m.TabURL(section.Key()), "error", shared.UserSafeMessage(err))
		return
	}
	action := fmt.Sprintf("%s/%d/delete%s", m.cfg.BasePath, id, listing.Query{Tab: section.Key()}.URL())
	m.render(w, r, http.StatusOK, "pages/confirm.html", shared.NewConfirmDialog(
		"Delete "+section.Label(),
		fmt.Sprintf("Delete %q? This cannot be undone.", title),
		action,
		m.TabURL(section.Key()),
	))
}

func (m *Module) delete(w http.ResponseWriter, r *http.Request) {
	section, ok := m.sectionFor(r)
	if !ok {
		http.Error(w, "Unknown tab", http.StatusNotFound)
		return
	}
	id, ok := m.recordID(w, r)
	if !ok {
		return
	}
	back := m.TabURL(section.Key())
	if !shared.Confirmed(r) {
		m.redirectWithFlash(w, r, back, "info", "Nothing was deleted")
		return
	}
	if err := section.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrReadOnly) {
			m.redirectWithFlash(w, r, back, "error", err.Error())
			return
		}
		m.cfg.Logger.Warn("delete record failed", slog.String("module", m.cfg.Name), slog.Int64("id", id), slog.Any("error", err))
		m.redirectWithFlash(w, r, back, "error", shared.UserSafeMessage(err))
		return
	}
	m.redirectWithFlash(w, r, back, "success", section.Label()+" deleted")
}

// Render writes a page with the module title and the request's flash.
func (m *Module) Render(w http.ResponseWriter, r *http.Request, status int, template string, data any) {
	m.render(w, r, status, template, data)
}

func (m *Module) render(w http.ResponseWriter, r *http.Request, status int, template string, data any) {
	sess := shared.SessionFromContext(r.Context())
	viewData := view.TemplateData{
		Title:       m.cfg.Title,
		CSRFToken:   m.cfg.CSRF.EnsureToken(sess),
		Flash:       shared.PopFlash(r.Context()),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	if err := m.cfg.Templates.Render(w, status, template, viewData); err != nil {
		m.cfg.Logger.Error("render template", slog.String("template", template), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// RedirectWithFlash queues a flash message and redirects to location.
func (m *Module) RedirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	m.redirectWithFlash(w, r, location, kind, message)
}

func (m *Module) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	shared.AddFlash(r.Context(), kind, message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// slug turns a tab key into a token usable as an HTML id.
func slug(key string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(key) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
