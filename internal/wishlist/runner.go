package wishlist

import (
	"context"
	"log/slog"
)

// Runner turns "refresh requested" signals into refresh cycles, one at a
// time. Requests arriving while a cycle runs collapse into one follow-up.
type Runner struct {
	refresher *Refresher
	requests  chan struct{}
}

func NewRunner(r *Refresher) *Runner {
	return &Runner{refresher: r, requests: make(chan struct{}, 1)}
}

// Request asks for a refresh cycle. It never blocks.
func (r *Runner) Request() {
	select {
	case r.requests <- struct{}{}:
	default:
	}
}

// Run serves requests until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.requests:
			if _, err := r.refresher.Refresh(ctx); err != nil && ctx.Err() == nil {
				slog.Error("Wishlist refresh failed.", "error", err)
			}
		}
	}
}
