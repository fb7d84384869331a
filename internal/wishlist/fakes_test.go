package wishlist

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/berckan/domainwishlist/internal/models"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fakeChecker struct {
	mu      sync.Mutex
	results map[string]models.CheckResult
	calls   [][]string
	onCall  func(domains []string)
}

func (f *fakeChecker) CheckBulk(_ context.Context, domains []string) []models.CheckResult {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string(nil), domains...))
	hook := f.onCall
	f.mu.Unlock()

	if hook != nil {
		hook(domains)
	}
	out := make([]models.CheckResult, len(domains))
	for i, d := range domains {
		r, ok := f.results[d]
		if !ok {
			r = models.CheckResult{Available: false}
		}
		r.Domain = d
		out[i] = r
	}
	return out
}

func (f *fakeChecker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeWhois struct {
	mu      sync.Mutex
	records map[string]models.WhoisRecord
	calls   []string
	onCall  func(domain string)
}

var errWhois = errors.New("whois: no server")

func (f *fakeWhois) Lookup(_ context.Context, domain string) (models.WhoisRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, domain)
	hook := f.onCall
	f.mu.Unlock()

	if hook != nil {
		hook(domain)
	}
	rec, ok := f.records[domain]
	if !ok {
		return models.WhoisRecord{}, errWhois
	}
	return rec, nil
}

type fakeNotifier struct {
	mu      sync.Mutex
	batches [][]models.WishlistEntry
}

func (f *fakeNotifier) Notify(_ context.Context, entries []models.WishlistEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batches = append(f.batches, entries)
	return nil
}

func at(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
