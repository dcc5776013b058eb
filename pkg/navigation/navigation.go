package navigation

import (
	"errors"
	"fmt"
	"strings"

	"healbuddy-web/pkg/icons"
	"healbuddy-web/pkg/utils"
	"healbuddy-web/pkg/validator"
)

// Item represents a navigation link rendered in the sidebar and in the
// mobile menu. Items are immutable once the table is built.
type Item struct {
	Title string     `json:"title" validate:"required,no_html"`
	Path  string     `json:"path" validate:"required,startswith=/,excludesall=:*?#"`
	Icon  icons.Name `json:"icon" validate:"required,icon"`
}

// PageURL maps a logical page name to the path it is served on.
func PageURL(pageName string) string {
	return "/" + utils.GenerateSlug(pageName)
}

// Default returns the HealBuddy navigation entries in display order.
func Default() []Item {
	return []Item{
		{Title: "Chat", Path: PageURL("Chat"), Icon: icons.MessageCircle},
		{Title: "Profile", Path: PageURL("Profile"), Icon: icons.User},
		{Title: "Find Healthcare", Path: PageURL("FindHealthcare"), Icon: icons.MapPin},
		{Title: "Health Tips", Path: PageURL("HealthTips"), Icon: icons.Lightbulb},
		{Title: "Disease Info", Path: PageURL("DiseaseInfo"), Icon: icons.Info},
		{Title: "Emergency", Path: PageURL("Emergency"), Icon: icons.Phone},
	}
}

var (
	ErrDuplicateItem = errors.New("duplicate navigation item")
	ErrReservedPath  = errors.New("reserved navigation path")
)

// reservedPrefixes are served by the application itself.
var reservedPrefixes = []string{"/api", "/health", "/metrics"}

// IsReservedPath reports whether path is the root or belongs to a route the
// application serves outside the navigation table.
func IsReservedPath(path string) bool {
	if path == "/" {
		return true
	}
	for _, prefix := range reservedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

type Table struct {
	items  []Item
	byPath map[string]int
}

// NewTable validates items and builds a lookup table. Titles and paths must
// be unique so that at most one entry can match a route.
func NewTable(items []Item) (*Table, error) {
	t := &Table{
		items:  make([]Item, 0, len(items)),
		byPath: make(map[string]int, len(items)),
	}

	titles := make(map[string]struct{}, len(items))
	for i, item := range items {
		item.Title = strings.TrimSpace(item.Title)
		item.Path = strings.TrimSpace(item.Path)

		if err := validator.Validate(item); err != nil {
			return nil, fmt.Errorf("navigation item %d: %w", i, err)
		}
		if IsReservedPath(item.Path) {
			return nil, fmt.Errorf("%w: %q", ErrReservedPath, item.Path)
		}
		if _, exists := titles[item.Title]; exists {
			return nil, fmt.Errorf("%w: title %q", ErrDuplicateItem, item.Title)
		}
		if _, exists := t.byPath[item.Path]; exists {
			return nil, fmt.Errorf("%w: path %q", ErrDuplicateItem, item.Path)
		}

		titles[item.Title] = struct{}{}
		t.byPath[item.Path] = len(t.items)
		t.items = append(t.items, item)
	}

	return t, nil
}

// MustDefault builds the default table and panics if it is invalid.
func MustDefault() *Table {
	t, err := NewTable(Default())
	if err != nil {
		panic(err)
	}
	return t
}

// Items returns a copy of the entries in display order.
func (t *Table) Items() []Item {
	out := make([]Item, len(t.items))
	copy(out, t.items)
	return out
}

func (t *Table) Len() int {
	return len(t.items)
}

// Lookup returns the entry whose path equals path exactly.
func (t *Table) Lookup(path string) (Item, bool) {
	idx, ok := t.byPath[path]
	if !ok {
		return Item{}, false
	}
	return t.items[idx], true
}

// ActiveIndex returns the index of the entry matching route, or -1.
func (t *Table) ActiveIndex(route string) int {
	if idx, ok := t.byPath[route]; ok {
		return idx
	}
	return -1
}
