package console

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/opsdesk/internal/listing"
	"github.com/odyssey-erp/opsdesk/internal/platform/memstore"
	"github.com/odyssey-erp/opsdesk/internal/shared"
	"github.com/odyssey-erp/opsdesk/internal/view"
)

// NewValidator returns a validator reporting fields by their `form` tag.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		switch name {
		case "-":
			return ""
		case "":
			return fld.Name
		}
		return name
	})
	return v
}

// TableConfig wires a record type into a Table section.
type TableConfig[T any] struct {
	Key    string
	Label  string
	Store  *memstore.Store[T]
	Screen listing.Screen[T]
	Form   []FieldSpec
	// Decode builds a record from a submitted form.
	Decode func(values url.Values) T
	// Title names a record in confirmation dialogs.
	Title func(T) string
	// BeforeCreate runs after the required-field checks.
	BeforeCreate func(ctx context.Context, row *T) (FieldErrors, error)
	Actions      []RowAction
	ReadOnly     bool
	Validator    *validator.Validate
}

// Table is a Section over an in-memory record store.
type Table[T any] struct {
	cfg TableConfig[T]
}

// NewTable builds a Table section.
func NewTable[T any](cfg TableConfig[T]) *Table[T] {
	if cfg.Validator == nil {
		cfg.Validator = NewValidator()
	}
	return &Table[T]{cfg: cfg}
}

// Key implements Section.
func (t *Table[T]) Key() string { return t.cfg.Key }

// Label implements Section.
func (t *Table[T]) Label() string { return t.cfg.Label }

// ColumnKeys implements Section.
func (t *Table[T]) ColumnKeys() []string { return t.cfg.Screen.ColumnKeys() }

// Deletable implements Section.
func (t *Table[T]) Deletable() bool { return !t.cfg.ReadOnly }

// Actions implements Section.
func (t *Table[T]) Actions() []RowAction { return t.cfg.Actions }

// Rows returns a snapshot of the records.
func (t *Table[T]) Rows() []T { return t.cfg.Store.List() }

// View implements Section.
func (t *Table[T]) View(_ context.Context, q listing.Query) (listing.View, error) {
	return t.cfg.Screen.Build(t.cfg.Store.List(), q), nil
}

// Fields implements Section.
func (t *Table[T]) Fields(ctx context.Context, values url.Values, errs FieldErrors) ([]view.FormField, error) {
	return buildFields(ctx, t.cfg.Form, values, errs)
}

// Create implements Section.
func (t *Table[T]) Create(ctx context.Context, values url.Values) (FieldErrors, error) {
	row := t.cfg.Decode(values)
	if errs := t.check(row); len(errs) > 0 {
		return errs, nil
	}
	if t.cfg.BeforeCreate != nil {
		errs, err := t.cfg.BeforeCreate(ctx, &row)
		if err != nil || len(errs) > 0 {
			return errs, err
		}
	}
	t.cfg.Store.Add(row)
	return nil, nil
}

func (t *Table[T]) check(row T) FieldErrors {
	err := t.cfg.Validator.Struct(row)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"general": err.Error()}
	}
	labels := make(map[string]string, len(t.cfg.Form))
	for _, spec := range t.cfg.Form {
		labels[spec.Name] = spec.Label
	}
	errs := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		label := labels[fe.Field()]
		if label == "" {
			label = fe.Field()
		}
		errs[fe.Field()] = label + " " + ruleMessage(fe.Tag())
	}
	return errs
}

func ruleMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gte", "min":
		return "must not be negative"
	}
	return "is invalid"
}

// FormInt reads an integer field, treating blanks and garbage as zero.
func FormInt(values url.Values, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(values.Get(name)))
	if err != nil {
		return 0
	}
	return n
}

// FormFloat reads a decimal field, treating blanks and garbage as zero.
func FormFloat(values url.Values, name string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(values.Get(name)), 64)
	if err != nil {
		return 0
	}
	return f
}

// FormBool reads a checkbox field.
func FormBool(values url.Values, name string) bool {
	switch strings.ToLower(strings.TrimSpace(values.Get(name))) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// FormString reads a text field with surrounding blanks removed.
func FormString(values url.Values, name string) string {
	return strings.TrimSpace(values.Get(name))
}

// Describe implements Section.
func (t *Table[T]) Describe(_ context.Context, id int64) (string, error) {
	row, err := t.cfg.Store.Get(id)
	if err != nil {
		return "", t.notFound(id)
	}
	if t.cfg.Title == nil {
		return fmt.Sprintf("%s #%d", t.cfg.Label, id), nil
	}
	return t.cfg.Title(row), nil
}

// Delete implements Section.
func (t *Table[T]) Delete(_ context.Context, id int64) error {
	if t.cfg.ReadOnly {
		return ErrReadOnly
	}
	if err := t.cfg.Store.Delete(id); err != nil {
		return t.notFound(id)
	}
	return nil
}

// Update applies fn to the record with id.
func (t *Table[T]) Update(id int64, fn func(*T)) (T, error) {
	row, err := t.cfg.Store.Update(id, fn)
	if err != nil {
		return row, t.notFound(id)
	}
	return row, nil
}

func (t *Table[T]) notFound(id int64) error {
	return fmt.Errorf("%s %d: %w", strings.ToLower(t.cfg.Label), id, shared.ErrNotFound)
}
