package wishlist

import (
	"context"

	"github.com/berckan/domainwishlist/internal/models"
	"github.com/google/uuid"
)

// Requester is told when the wishlist changed size and should be checked.
type Requester interface {
	Request()
}

// Service is the wishlist as the dashboard sees it: the store, the view
// state over it and the refresh machinery.
type Service struct {
	store     *Store
	view      *View
	refresher *Refresher
	requests  Requester
}

// NewService wires a service. requests may be nil when nothing listens.
func NewService(store *Store, refresher *Refresher, requests Requester) *Service {
	return &Service{store: store, view: NewView(), refresher: refresher, requests: requests}
}

// Page is a projected view of the wishlist.
type Page struct {
	Filter   string                 `json:"filter"`
	Order    SortOrder              `json:"order"`
	Items    []models.WishlistEntry `json:"items"`
	Selected []uuid.UUID            `json:"selected"`
	Total    int                    `json:"total"`
}

func (s *Service) requestRefresh() {
	if s.requests != nil {
		s.requests.Request()
	}
}

// Add puts a domain at the top of the wishlist and asks for a check.
func (s *Service) Add(domain, category, note string) (models.WishlistEntry, error) {
	e, err := s.store.Add(domain, category, note)
	if err != nil {
		return models.WishlistEntry{}, err
	}
	s.requestRefresh()
	return e, nil
}

// Update edits an entry in place. Changing the domain discards any result
// still in flight for it, so a follow-up refresh is requested.
func (s *Service) Update(id uuid.UUID, domain, category, note string) (models.WishlistEntry, error) {
	before, err := s.store.Get(id)
	if err != nil {
		return models.WishlistEntry{}, err
	}
	e, err := s.store.Update(id, domain, category, note)
	if err != nil {
		return models.WishlistEntry{}, err
	}
	if e.Domain != before.Domain {
		s.requestRefresh()
	}
	return e, nil
}

func (s *Service) ToggleNotification(id uuid.UUID) (models.WishlistEntry, error) {
	return s.store.ToggleNotification(id)
}

// ToggleSelect flips the selection of an existing entry.
func (s *Service) ToggleSelect(id uuid.UUID) (bool, error) {
	if _, err := s.store.Get(id); err != nil {
		return false, err
	}
	return s.view.ToggleSelect(id), nil
}

// SelectAll toggles between no selection and every filtered entry.
func (s *Service) SelectAll() []uuid.UUID {
	s.view.SelectAll(s.store.Entries())
	return s.view.Selected()
}

// DeleteSelected removes the selected entries and clears the selection.
func (s *Service) DeleteSelected() int {
	removed := s.store.Delete(s.view.takeSelection())
	if removed > 0 {
		s.requestRefresh()
	}
	return removed
}

// List sets the filter and order when given and returns the projection.
func (s *Service) List(category string, order SortOrder) Page {
	if category != "" {
		s.view.SetFilter(category)
	}
	if order != "" {
		s.view.SetOrder(order)
	}
	entries := s.store.Entries()
	return Page{
		Filter:   s.view.Filter(),
		Order:    s.view.Order(),
		Items:    s.view.Project(entries),
		Selected: s.view.Selected(),
		Total:    len(entries),
	}
}

func (s *Service) Get(id uuid.UUID) (models.WishlistEntry, error) {
	return s.store.Get(id)
}

func (s *Service) Categories() []string {
	return Categories(s.store.Entries())
}

// CheckAll runs a manual check over the whole wishlist.
func (s *Service) CheckAll(ctx context.Context) (CycleReport, error) {
	return s.refresher.CheckAll(ctx)
}

// Seed loads the demo entries and asks for a check.
func (s *Service) Seed() error {
	for i := len(demoEntries) - 1; i >= 0; i-- {
		d := demoEntries[i]
		if _, err := s.store.Add(d.domain, d.category, d.note); err != nil {
			return err
		}
	}
	s.requestRefresh()
	return nil
}

var demoEntries = []struct {
	domain, category, note string
}{
	{"quizforge.io", "Brand", "Short and brandable"},
	{"testpilot.app", "Product", ""},
	{"examready.com", "Marketing", "Landing page candidate"},
	{"mocktest.dev", "Product", "Developer sandbox"},
	{"studyloop.ai", "Brand", ""},
}
