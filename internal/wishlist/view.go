package wishlist

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/berckan/domainwishlist/internal/models"
	"github.com/google/uuid"
)

// FilterAll is the category filter that passes every entry.
const FilterAll = "all"

// SortOrder orders entries by DateAdded.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder accepts "asc" or "desc" in any case.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", fmt.Errorf("invalid sort order %q", s)
	}
}

// Filter keeps entries in category. FilterAll and "" keep everything.
func Filter(entries []models.WishlistEntry, category string) []models.WishlistEntry {
	out := make([]models.WishlistEntry, 0, len(entries))
	for _, e := range entries {
		if category == FilterAll || category == "" || e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Sort orders entries by DateAdded in place.
func Sort(entries []models.WishlistEntry, order SortOrder) {
	slices.SortStableFunc(entries, func(a, b models.WishlistEntry) int {
		c := a.DateAdded.Compare(b.DateAdded)
		if order == SortDesc {
			return -c
		}
		return c
	})
}

// View holds the transient display state: filter, sort order and selection.
// Nothing here is persisted.
type View struct {
	mu       sync.Mutex
	filter   string
	order    SortOrder
	selected map[uuid.UUID]struct{}
}

// NewView starts with every category shown, newest first, nothing selected.
func NewView() *View {
	return &View{
		filter:   FilterAll,
		order:    SortDesc,
		selected: make(map[uuid.UUID]struct{}),
	}
}

func (v *View) SetFilter(category string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if strings.TrimSpace(category) == "" {
		category = FilterAll
	}
	v.filter = category
}

func (v *View) SetOrder(order SortOrder) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.order = order
}

// Filter returns the current category filter.
func (v *View) Filter() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filter
}

// Order returns the current sort order.
func (v *View) Order() SortOrder {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.order
}

// Project applies the current filter and sort to entries.
func (v *View) Project(entries []models.WishlistEntry) []models.WishlistEntry {
	v.mu.Lock()
	filter, order := v.filter, v.order
	v.mu.Unlock()

	out := Filter(entries, filter)
	Sort(out, order)
	return out
}

// ToggleSelect flips one id and reports whether it is now selected.
func (v *View) ToggleSelect(id uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.selected[id]; ok {
		delete(v.selected, id)
		return false
	}
	v.selected[id] = struct{}{}
	return true
}

// SelectAll switches between nothing selected and every entry passing the
// current filter. It clears only when the selection is exactly the filtered set.
func (v *View) SelectAll(entries []models.WishlistEntry) {
	filtered := v.Project(entries)

	v.mu.Lock()
	defer v.mu.Unlock()
	if len(filtered) > 0 && v.selectionIs(filtered) {
		clear(v.selected)
		return
	}
	clear(v.selected)
	for _, e := range filtered {
		v.selected[e.ID] = struct{}{}
	}
}

func (v *View) selectionIs(entries []models.WishlistEntry) bool {
	if len(v.selected) != len(entries) {
		return false
	}
	for _, e := range entries {
		if _, ok := v.selected[e.ID]; !ok {
			return false
		}
	}
	return true
}

// IsSelected reports whether id is in the selection.
func (v *View) IsSelected(id uuid.UUID) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.selected[id]
	return ok
}

// Selected returns the selection in no particular order.
func (v *View) Selected() []uuid.UUID {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]uuid.UUID, 0, len(v.selected))
	for id := range v.selected {
		out = append(out, id)
	}
	return out
}

// takeSelection empties the selection and returns what it held.
func (v *View) takeSelection() map[uuid.UUID]struct{} {
	v.mu.Lock()
	defer v.mu.Unlock()
	taken := v.selected
	v.selected = make(map[uuid.UUID]struct{})
	return taken
}

// Categories returns the distinct non-empty categories, sorted.
func Categories(entries []models.WishlistEntry) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, e := range entries {
		if e.Category == "" {
			continue
		}
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}
	slices.Sort(out)
	return out
}
