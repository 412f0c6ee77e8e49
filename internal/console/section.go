// Package console is the screen kit behind every module of the ops console:
// a module is a set of tabbed sections, each a filterable, paginated table
// with an add form and a confirmed delete.
package console

import (
	"context"
	"errors"
	"net/url"

	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/view"
)

// ErrReadOnly is returned by sections that do not support deletion.
var ErrReadOnly = errors.New("records in this tab cannot be deleted")

// RowAction is an extra per-row POST action such as "Publish".
type RowAction struct {
	Label string
	Path  string
}

// FieldSpec declares one input of a section's add form.
type FieldSpec struct {
	Name     string
	Label    string
	Type     string
	Options  []string
	Required bool
	// OptionsFunc supplies select options that change at runtime.
	OptionsFunc func(ctx context.Context) ([]string, error)
}

// FieldErrors maps form field names to messages.
type FieldErrors map[string]string

// Section is one tab of a module.
type Section interface {
	Key() string
	Label() string
	ColumnKeys() []string
	View(ctx context.Context, q listing.Query) (listing.View, error)
	Fields(ctx context.Context, values url.Values, errs FieldErrors) ([]view.FormField, error)
	// Create appends a record built from values. Field problems come back as
	// FieldErrors with a nil error.
	Create(ctx context.Context, values url.Values) (FieldErrors, error)
	Describe(ctx context.Context, id int64) (string, error)
	Delete(ctx context.Context, id int64) error
	Deletable() bool
	Actions() []RowAction
}

func buildFields(ctx context.Context, specs []FieldSpec, values url.Values, errs FieldErrors) ([]view.FormField, error) {
	fields := make([]view.FormField, 0, len(specs))
	for _, spec := range specs {
		options := spec.Options
		if spec.OptionsFunc != nil {
			dynamic, err := spec.OptionsFunc(ctx)
			if err != nil {
				return nil, err
			}
			options = dynamic
		}
		typ := spec.Type
		if typ == "" {
			typ = view.InputText
		}
		fields = append(fields, view.FormField{
			Name:     spec.Name,
			Label:    spec.Label,
			Type:     typ,
			Options:  options,
			Value:    values.Get(spec.Name),
			Required: spec.Required,
			Error:    errs[spec.Name],
		})
	}
	return fields, nil
}
