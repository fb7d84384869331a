package wishlist

import (
	"context"
	"log/slog"
	"time"

	"github.com/berckan/domainwishlist/internal/models"

	"golang.org/x/sync/errgroup"
)

// AvailabilityChecker answers one result per domain, in input order.
type AvailabilityChecker interface {
	CheckBulk(ctx context.Context, domains []string) []models.CheckResult
}

// WhoisLookup fetches registration data for a single domain.
type WhoisLookup interface {
	Lookup(ctx context.Context, domain string) (models.WhoisRecord, error)
}

// Notifier is told about entries that just became available.
type Notifier interface {
	Notify(ctx context.Context, entries []models.WishlistEntry) error
}

// Options configure a Refresher.
type Options struct {
	// WholeStore sends every entry to the bulk check once any entry is
	// pending, instead of only the pending ones.
	WholeStore bool
	// WhoisConcurrency caps parallel WHOIS lookups per cycle.
	WhoisConcurrency int
	Now              func() time.Time
}

// CycleReport summarises one refresh cycle.
type CycleReport struct {
	Checked     int `json:"checked"`
	Available   int `json:"available"`
	Unavailable int `json:"unavailable"`
	Deferred    int `json:"deferred"`
	Dropped     int `json:"dropped"`
}

// Refresher checks wishlist availability and writes the results back.
type Refresher struct {
	store    *Store
	checker  AvailabilityChecker
	whois    WhoisLookup
	notifier Notifier
	opts     Options
}

// NewRefresher wires a refresher. notifier may be nil.
func NewRefresher(store *Store, checker AvailabilityChecker, whois WhoisLookup, notifier Notifier, opts Options) *Refresher {
	if opts.WhoisConcurrency <= 0 {
		opts.WhoisConcurrency = 5
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Refresher{store: store, checker: checker, whois: whois, notifier: notifier, opts: opts}
}

func isPending(e models.WishlistEntry) bool {
	return e.Availability.Status == "" || e.Availability.Status == models.StatusPending
}

func everything(models.WishlistEntry) bool { return true }

// Refresh runs a cycle if any entry is pending. It is a no-op otherwise.
func (r *Refresher) Refresh(ctx context.Context) (CycleReport, error) {
	return r.cycle(ctx, r.store.beginCycle(isPending, r.opts.WholeStore))
}

// CheckAll re-checks every entry regardless of its status.
func (r *Refresher) CheckAll(ctx context.Context) (CycleReport, error) {
	return r.cycle(ctx, r.store.beginCycle(everything, false))
}

func (r *Refresher) cycle(ctx context.Context, snaps []snapshot) (CycleReport, error) {
	var report CycleReport
	if len(snaps) == 0 {
		return report, nil
	}

	domains := make([]string, len(snaps))
	for i, s := range snaps {
		domains[i] = s.domain
	}
	results := r.checker.CheckBulk(ctx, domains)

	outcomes := make([]outcome, len(snaps))
	var g errgroup.Group
	g.SetLimit(r.opts.WhoisConcurrency)

	for i, snap := range snaps {
		outcomes[i].snap = snap

		var res models.CheckResult
		if i < len(results) {
			res = results[i]
		} else {
			res = models.CheckResult{Domain: snap.domain, Error: "missing result"}
		}

		switch {
		case res.Available:
			outcomes[i].availability.Status = models.StatusAvailable
		case res.Error != "":
			slog.Debug("Deferring domain after failed check.", "domain", snap.domain, "error", res.Error)
			outcomes[i].availability.Status = models.StatusPending
		default:
			i, snap := i, snap
			g.Go(func() error {
				outcomes[i].availability.Status = models.StatusUnavailable
				rec, err := r.whois.Lookup(ctx, snap.domain)
				if err != nil {
					slog.Debug("Whois lookup failed.", "domain", snap.domain, "error", err)
					return nil
				}
				outcomes[i].availability.ExpiryDate = rec.Expiry()
				return nil
			})
		}
	}
	_ = g.Wait()

	// Abandoned cycles hand back what the entries showed before.
	if err := ctx.Err(); err != nil {
		r.store.abandon(snaps)
		return report, err
	}

	now := r.opts.Now()
	for i := range outcomes {
		outcomes[i].availability.LastChecked = now
		switch outcomes[i].availability.Status {
		case models.StatusAvailable:
			report.Available++
		case models.StatusUnavailable:
			report.Unavailable++
		default:
			report.Deferred++
		}
	}
	report.Checked = len(outcomes)

	dropped, fresh := r.store.commit(outcomes)
	report.Dropped = dropped

	if len(fresh) > 0 && r.notifier != nil {
		if err := r.notifier.Notify(ctx, fresh); err != nil {
			slog.Warn("Sending availability notification failed.", "count", len(fresh), "error", err)
		}
	}

	slog.Info("Wishlist refresh finished.",
		"checked", report.Checked,
		"available", report.Available,
		"unavailable", report.Unavailable,
		"deferred", report.Deferred,
		"dropped", report.Dropped,
	)
	return report, nil
}
