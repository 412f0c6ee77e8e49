package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/odyssey-erp/opsdesk/internal/shared"
	"github.com/odyssey-erp/opsdesk/web"
)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// NavItem is one entry of the console's module navigation.
type NavItem struct {
	Label string
	Path  string
}

// Nav lists the console modules in menu order.
var Nav = []NavItem{
	{Label: "Assets", Path: "/assets"},
	{Label: "Incident Setup", Path: "/incidents"},
	{Label: "Surveys", Path: "/surveys"},
	{Label: "Users", Path: "/users"},
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	Nav         []NavItem
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	e := &Engine{}
	funcMap := template.FuncMap{
		"partial": e.partial,
		"add":     func(a, b int) int { return a + b },
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	e.templates = tpl
	return e, nil
}

// partial executes a named template inline, which lets content resolvers
// pick the template of a panel at runtime.
func (e *Engine) partial(name string, data any) (template.HTML, error) {
	if name == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Render executes a named template with TemplateData and writes it with
// status. Nothing is written when execution fails.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data TemplateData) error {
	if e == nil || e.templates == nil {
		return fmt.Errorf("template engine not initialised")
	}
	if data.Nav == nil {
		data.Nav = Nav
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := io.Copy(w, &buf)
	return err
}

// Has reports whether a template named name was parsed.
func (e *Engine) Has(name string) bool {
	return e != nil && e.templates != nil && e.templates.Lookup(name) != nil
}
