// Package listing holds the list-screen primitives shared by every console
// module: tab selection with content dispatch, per-column search filters and
// page slicing.
package listing

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/agnivade/levenshtein"
)

// NoContentMessage is shown when a tab has nothing mapped to it.
const NoContentMessage = "No content for this tab"

var (
	// ErrEmptyTabSet is returned when a tab set has no tabs.
	ErrEmptyTabSet = errors.New("listing: tab set is empty")
	// ErrDuplicateTabKey is returned when two tabs share a key.
	ErrDuplicateTabKey = errors.New("listing: duplicate tab key")
)

// Tab is one selectable entry of a TabSet.
type Tab[K comparable] struct {
	Label string
	Key   K
}

// TabSet is an ordered, immutable list of tabs with unique keys.
type TabSet[K comparable] struct {
	tabs  []Tab[K]
	index map[K]int
}

// NewTabSet validates and freezes the provided tabs.
func NewTabSet[K comparable](tabs ...Tab[K]) (TabSet[K], error) {
	if len(tabs) == 0 {
		return TabSet[K]{}, ErrEmptyTabSet
	}
	index := make(map[K]int, len(tabs))
	frozen := make([]Tab[K], len(tabs))
	for i, tab := range tabs {
		if _, exists := index[tab.Key]; exists {
			return TabSet[K]{}, fmt.Errorf("%w: %v", ErrDuplicateTabKey, tab.Key)
		}
		index[tab.Key] = i
		frozen[i] = tab
	}
	return TabSet[K]{tabs: frozen, index: index}, nil
}

// Len returns the number of tabs.
func (s TabSet[K]) Len() int { return len(s.tabs) }

// Has reports whether key belongs to the set.
func (s TabSet[K]) Has(key K) bool {
	_, ok := s.index[key]
	return ok
}

// Tabs returns a copy of the tabs in order.
func (s TabSet[K]) Tabs() []Tab[K] {
	out := make([]Tab[K], len(s.tabs))
	copy(out, s.tabs)
	return out
}

// Lookup resolves the raw string form of a key back to the typed key.
func (s TabSet[K]) Lookup(raw string) (K, bool) {
	for _, tab := range s.tabs {
		if fmt.Sprint(tab.Key) == raw {
			return tab.Key, true
		}
	}
	var zero K
	return zero, false
}

func (s TabSet[K]) first() K {
	if len(s.tabs) == 0 {
		var zero K
		return zero
	}
	return s.tabs[0].Key
}

// closest returns the label of the key nearest to raw, for warning hints.
func (s TabSet[K]) closest(raw string) string {
	best, bestDist := "", -1
	for _, tab := range s.tabs {
		candidate := fmt.Sprint(tab.Key)
		d := levenshtein.ComputeDistance(raw, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Panel is what a content resolver hands back for a tab: a template to
// execute with its data, or a placeholder message when nothing is mapped.
type Panel struct {
	Template    string
	Data        any
	Placeholder string
}

// IsPlaceholder reports whether the panel carries no real content.
func (p Panel) IsPlaceholder() bool {
	return p.Template == ""
}

// PlaceholderPanel is the fallback panel for unmapped tabs.
func PlaceholderPanel() Panel {
	return Panel{Placeholder: NoContentMessage}
}

// ContentResolver maps a key to its panel. ok=false means nothing is mapped.
type ContentResolver[K comparable] func(key K) (panel Panel, ok bool)

// TabItem is the view model for one entry of a rendered tab bar.
type TabItem struct {
	Label  string `json:"label"`
	Key    string `json:"key"`
	Active bool   `json:"active"`
}

// TabOption configures a TabController.
type TabOption[K comparable] func(*TabController[K])

// WithDefaultTab selects key initially instead of the first tab.
func WithDefaultTab[K comparable](key K) TabOption[K] {
	return func(c *TabController[K]) {
		c.Select(key)
	}
}

// WithRejectHook registers a callback invoked for every rejected selection.
func WithRejectHook[K comparable](fn func(raw string)) TabOption[K] {
	return func(c *TabController[K]) {
		c.onReject = fn
	}
}

// TabController tracks the active tab of one screen.
type TabController[K comparable] struct {
	set      TabSet[K]
	active   K
	logger   *slog.Logger
	onReject func(raw string)
}

// NewTabController starts on the first tab unless WithDefaultTab says
// otherwise. Options run in order, so the reject hook should come first when
// the default may be invalid.
func NewTabController[K comparable](set TabSet[K], logger *slog.Logger, opts ...TabOption[K]) *TabController[K] {
	if logger == nil {
		logger = slog.Default()
	}
	c := &TabController[K]{set: set, active: set.first(), logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Active returns the selected key.
func (c *TabController[K]) Active() K {
	return c.active
}

// Set exposes the controller's tab set.
func (c *TabController[K]) Set() TabSet[K] {
	return c.set
}

// Select makes key active when it belongs to the set. Anything else leaves
// the selection untouched and logs a warning.
func (c *TabController[K]) Select(key K) bool {
	if !c.set.Has(key) {
		c.reject(fmt.Sprint(key))
		return false
	}
	c.active = key
	return true
}

// SelectRaw selects using the string form of a key.
func (c *TabController[K]) SelectRaw(raw string) bool {
	key, ok := c.set.Lookup(raw)
	if !ok {
		c.reject(raw)
		return false
	}
	c.active = key
	return true
}

func (c *TabController[K]) reject(raw string) {
	c.logger.Warn("tab selection ignored",
		slog.String("requested", raw),
		slog.String("active", fmt.Sprint(c.active)),
		slog.String("closest", c.set.closest(raw)),
	)
	if c.onReject != nil {
		c.onReject(raw)
	}
}

// RenderContent resolves the panel for key, falling back to the placeholder.
func (c *TabController[K]) RenderContent(key K, resolve ContentResolver[K]) Panel {
	if resolve == nil || !c.set.Has(key) {
		return PlaceholderPanel()
	}
	panel, ok := resolve(key)
	if !ok {
		return PlaceholderPanel()
	}
	return panel
}

// Render resolves the panel for the active tab.
func (c *TabController[K]) Render(resolve ContentResolver[K]) Panel {
	return c.RenderContent(c.active, resolve)
}

// Items builds the tab bar view model.
func (c *TabController[K]) Items() []TabItem {
	items := make([]TabItem, 0, len(c.set.tabs))
	for _, tab := range c.set.tabs {
		items = append(items, TabItem{
			Label:  tab.Label,
			Key:    fmt.Sprint(tab.Key),
			Active: tab.Key == c.active,
		})
	}
	return items
}
