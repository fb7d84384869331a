package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/berckan/domainwishlist/internal/models"
)

type fakeLookuper struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeLookuper) Lookup(_ context.Context, domain string) (models.WhoisRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, domain)
	f.mu.Unlock()
	if f.err != nil {
		return models.WhoisRecord{}, f.err
	}
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	return models.WhoisRecord{Domain: domain, ExpirationDate: &exp}, nil
}

// blockingLookuper holds every lookup until release is closed and fails
// if the lookup context is cancelled first.
type blockingLookuper struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (b *blockingLookuper) Lookup(ctx context.Context, domain string) (models.WhoisRecord, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-ctx.Done():
		return models.WhoisRecord{}, ctx.Err()
	case <-b.release:
		return models.WhoisRecord{Domain: domain}, nil
	}
}

func TestWhoisCache_Lookup(t *testing.T) {
	t.Run("should pass through without redis", func(t *testing.T) {
		next := &fakeLookuper{}
		c := NewWhoisCache(next, nil, time.Minute)

		got, err := c.Lookup(context.Background(), " Example.COM ")
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if got.Domain != "example.com" {
			t.Fatalf("\nwanted:\nexample.com\ngot:\n%s", got.Domain)
		}
		if got.Expiry() == nil {
			t.Fatalf("\nwanted:\nexpiry\ngot:\nnil")
		}
		if len(next.calls) != 1 || next.calls[0] != "example.com" {
			t.Fatalf("\nwanted:\n[example.com]\ngot:\n%v", next.calls)
		}
	})

	t.Run("should return lookup errors", func(t *testing.T) {
		wantErr := errors.New("whois down")
		c := NewWhoisCache(&fakeLookuper{err: wantErr}, nil, time.Minute)

		if _, err := c.Lookup(context.Background(), "a.com"); !errors.Is(err, wantErr) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", wantErr, err)
		}
	})

	t.Run("should not fail other callers when one gives up", func(t *testing.T) {
		next := &blockingLookuper{started: make(chan struct{}), release: make(chan struct{})}
		c := NewWhoisCache(next, nil, time.Minute)

		ctx, cancel := context.WithCancel(context.Background())
		first := make(chan error, 1)
		go func() {
			_, err := c.Lookup(ctx, "a.com")
			first <- err
		}()
		<-next.started

		second := make(chan error, 1)
		go func() {
			_, err := c.Lookup(context.Background(), "a.com")
			second <- err
		}()

		cancel()
		if err := <-first; !errors.Is(err, context.Canceled) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", context.Canceled, err)
		}
		close(next.release)
		if err := <-second; err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
	})

	t.Run("invalidate is a no-op without redis", func(t *testing.T) {
		c := NewWhoisCache(&fakeLookuper{}, nil, time.Minute)
		if err := c.Invalidate(context.Background(), "a.com"); err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
	})
}
