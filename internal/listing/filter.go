package listing

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Column describes one searchable, displayable field of a record type.
type Column[T any] struct {
	Key   string
	Label string
	// Value extracts the field. A nil Value, or a nil result, reads as "".
	Value func(T) any
}

// Cell returns the display string of the column for row.
func (c Column[T]) Cell(row T) string {
	if c.Value == nil {
		return ""
	}
	return Stringify(c.Value(row))
}

// Stringify renders a field value the way it is searched and displayed.
func Stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format(time.DateOnly)
	case fmt.Stringer:
		rv := reflect.ValueOf(v)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return ""
		}
		return val.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		return Stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// FilterState maps column keys to filter text. Absent or empty entries do not
// filter. Methods never mutate the receiver.
type FilterState map[string]string

// With returns a copy of the state with column set to value.
func (f FilterState) With(column, value string) FilterState {
	next := make(FilterState, len(f)+1)
	for k, v := range f {
		next[k] = v
	}
	next[column] = value
	return next
}

// Without returns a copy of the state without column.
func (f FilterState) Without(column string) FilterState {
	next := make(FilterState, len(f))
	for k, v := range f {
		if k != column {
			next[k] = v
		}
	}
	return next
}

// Get returns the filter text for column.
func (f FilterState) Get(column string) string {
	return f[column]
}

// IsEmpty reports whether no predicate is active.
func (f FilterState) IsEmpty() bool {
	for _, v := range f {
		if v != "" {
			return false
		}
	}
	return true
}

// Predicate is one active column filter.
type Predicate struct {
	Column string
	Needle string
}

// Active lists the non-empty predicates sorted by column.
func (f FilterState) Active() []Predicate {
	out := make([]Predicate, 0, len(f))
	for k, v := range f {
		if v != "" {
			out = append(out, Predicate{Column: k, Needle: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Column < out[j].Column })
	return out
}

// ApplyFilters keeps the rows whose columns contain every active needle,
// compared case-insensitively. A filtered column the record does not expose
// reads as "". Order is preserved and source is never modified.
func ApplyFilters[T any](source []T, columns []Column[T], state FilterState) []T {
	predicates := state.Active()
	out := make([]T, 0, len(source))
	if len(predicates) == 0 {
		return append(out, source...)
	}

	fold := cases.Fold()
	byKey := make(map[string]Column[T], len(columns))
	for _, col := range columns {
		byKey[col.Key] = col
	}
	needles := make([]string, len(predicates))
	for i, p := range predicates {
		needles[i] = fold.String(p.Needle)
	}

	for _, row := range source {
		keep := true
		for i, p := range predicates {
			field := byKey[p.Column].Cell(row)
			if !strings.Contains(fold.String(field), needles[i]) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}
