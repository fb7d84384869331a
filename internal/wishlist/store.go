package wishlist

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/berckan/domainwishlist/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidDomain = errors.New("invalid domain")
)

// record is a stored entry plus the version used to detect edits made while
// a refresh cycle was in flight.
type record struct {
	entry   models.WishlistEntry
	version uint64
}

// snapshot is what a refresh cycle remembers about an entry it is checking.
type snapshot struct {
	id      uuid.UUID
	domain  string
	version uint64
	prev    models.Availability
}

// Store is the in-memory ordered wishlist, newest entry first.
type Store struct {
	mu      sync.Mutex
	records []*record
	now     func() time.Time
}

// NewStore returns an empty store. If now is nil, time.Now is used.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{now: now}
}

// NormalizeDomain trims and lower-cases a domain and appends .com when no
// TLD was given. Only letters, digits, '-' and '.' are accepted.
func NormalizeDomain(domain string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(domain))
	d = strings.TrimSuffix(d, ".")
	if d == "" || strings.HasPrefix(d, ".") || strings.Contains(d, "..") || !validLabelChars(d) {
		return "", fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}
	if !strings.Contains(d, ".") {
		d += ".com"
	}
	return d, nil
}

func validLabelChars(d string) bool {
	for _, r := range d {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
		default:
			return false
		}
	}
	return true
}

// Add prepends a new pending entry.
func (s *Store) Add(domain, category, note string) (models.WishlistEntry, error) {
	d, err := NormalizeDomain(domain)
	if err != nil {
		return models.WishlistEntry{}, err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.WishlistEntry{}, fmt.Errorf("generating id: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := &record{entry: models.WishlistEntry{
		ID:        id,
		Domain:    d,
		Category:  strings.TrimSpace(category),
		Note:      strings.TrimSpace(note),
		DateAdded: now,
		Availability: models.Availability{
			Status:      models.StatusPending,
			LastChecked: now,
		},
	}}
	s.records = append([]*record{rec}, s.records...)
	return rec.entry, nil
}

// Update replaces domain, category and note. Availability is kept.
func (s *Store) Update(id uuid.UUID, domain, category, note string) (models.WishlistEntry, error) {
	d, err := NormalizeDomain(domain)
	if err != nil {
		return models.WishlistEntry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.find(id)
	if rec == nil {
		return models.WishlistEntry{}, ErrNotFound
	}
	if rec.entry.Domain != d {
		rec.version++
	}
	rec.entry.Domain = d
	rec.entry.Category = strings.TrimSpace(category)
	rec.entry.Note = strings.TrimSpace(note)
	return rec.entry, nil
}

// ToggleNotification flips NotificationsEnabled.
func (s *Store) ToggleNotification(id uuid.UUID) (models.WishlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.find(id)
	if rec == nil {
		return models.WishlistEntry{}, ErrNotFound
	}
	rec.entry.NotificationsEnabled = !rec.entry.NotificationsEnabled
	return rec.entry, nil
}

// Delete removes every entry whose id is in ids and returns how many went.
func (s *Store) Delete(ids map[uuid.UUID]struct{}) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, rec := range s.records {
		if _, ok := ids[rec.entry.ID]; !ok {
			kept = append(kept, rec)
		}
	}
	removed := len(s.records) - len(kept)
	clear(s.records[len(kept):])
	s.records = kept
	return removed
}

// Get returns one entry.
func (s *Store) Get(id uuid.UUID) (models.WishlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.find(id)
	if rec == nil {
		return models.WishlistEntry{}, ErrNotFound
	}
	return rec.entry, nil
}

// Entries returns a copy of all entries in store order.
func (s *Store) Entries() []models.WishlistEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.WishlistEntry, len(s.records))
	for i, rec := range s.records {
		out[i] = rec.entry
	}
	return out
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) find(id uuid.UUID) *record {
	for _, rec := range s.records {
		if rec.entry.ID == id {
			return rec
		}
	}
	return nil
}

// beginCycle marks the entries chosen by pick as pending and returns what the
// cycle should check. With whole set, every entry is returned for checking
// even though only picked ones gate the cycle.
func (s *Store) beginCycle(pick func(models.WishlistEntry) bool, whole bool) []snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	prev := make(map[uuid.UUID]models.Availability)
	var picked []snapshot
	for _, rec := range s.records {
		if !pick(rec.entry) {
			continue
		}
		prev[rec.entry.ID] = rec.entry.Availability
		rec.entry.Availability = models.Availability{
			Status:      models.StatusPending,
			LastChecked: now,
		}
		picked = append(picked, snapshot{
			id:      rec.entry.ID,
			domain:  rec.entry.Domain,
			version: rec.version,
			prev:    prev[rec.entry.ID],
		})
	}
	if len(picked) == 0 || !whole {
		return picked
	}

	all := make([]snapshot, len(s.records))
	for i, rec := range s.records {
		p, ok := prev[rec.entry.ID]
		if !ok {
			p = rec.entry.Availability
		}
		all[i] = snapshot{id: rec.entry.ID, domain: rec.entry.Domain, version: rec.version, prev: p}
	}
	return all
}

// outcome is the availability a cycle computed for one snapshot.
type outcome struct {
	snap         snapshot
	availability models.Availability
}

// commit writes a cycle's outcomes back in one step. An outcome is dropped
// when its entry was deleted or its domain edited since the cycle started.
// It returns the entries that became available with notifications on.
func (s *Store) commit(outcomes []outcome) (dropped int, newlyAvailable []models.WishlistEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range outcomes {
		rec := s.find(o.snap.id)
		if rec == nil || rec.version != o.snap.version {
			dropped++
			continue
		}
		rec.entry.Availability = o.availability
		if rec.entry.NotificationsEnabled && o.snap.prev.Status != models.StatusAvailable &&
			o.availability.Status == models.StatusAvailable {
			newlyAvailable = append(newlyAvailable, rec.entry)
		}
	}
	return dropped, newlyAvailable
}

// abandon puts back the availability an entry had before a cycle that will
// not write back. Entries edited or resolved since then are left alone.
func (s *Store) abandon(snaps []snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range snaps {
		rec := s.find(snap.id)
		if rec == nil || rec.version != snap.version ||
			rec.entry.Availability.Status != models.StatusPending {
			continue
		}
		rec.entry.Availability = snap.prev
	}
}
