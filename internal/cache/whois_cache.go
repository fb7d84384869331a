package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/berckan/domainwishlist/internal/models"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const keyWhois = "whois:"

// Lookuper is anything that can fetch a WHOIS record.
type Lookuper interface {
	Lookup(ctx context.Context, domain string) (models.WhoisRecord, error)
}

// WhoisCache caches successful WHOIS records in Redis and coalesces
// concurrent lookups for the same domain.
type WhoisCache struct {
	next Lookuper
	rdb  *redis.Client
	ttl  time.Duration
	sf   singleflight.Group
}

// NewWhoisCache wraps next. If rdb is nil, only coalescing is done.
func NewWhoisCache(next Lookuper, rdb *redis.Client, ttl time.Duration) *WhoisCache {
	return &WhoisCache{next: next, rdb: rdb, ttl: ttl}
}

// Lookup returns the cached record or asks the wrapped lookuper.
// Redis errors are logged and treated as a miss. The shared lookup does not
// stop when one waiting caller gives up.
func (c *WhoisCache) Lookup(ctx context.Context, domain string) (models.WhoisRecord, error) {
	domain = normalizeDomain(domain)
	shared := context.WithoutCancel(ctx)
	ch := c.sf.DoChan(domain, func() (interface{}, error) {
		if rec, err := c.get(shared, domain); err != nil {
			slog.Warn("Reading whois cache failed.", "domain", domain, "error", err)
		} else if rec != nil {
			return *rec, nil
		}
		rec, err := c.next.Lookup(shared, domain)
		if err != nil {
			return nil, err
		}
		if err := c.set(shared, domain, rec); err != nil {
			slog.Warn("Writing whois cache failed.", "domain", domain, "error", err)
		}
		return rec, nil
	})

	select {
	case <-ctx.Done():
		return models.WhoisRecord{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return models.WhoisRecord{}, res.Err
		}
		return res.Val.(models.WhoisRecord), nil
	}
}

// get returns the cached record or nil on a miss.
func (c *WhoisCache) get(ctx context.Context, domain string) (*models.WhoisRecord, error) {
	if c.rdb == nil {
		return nil, nil
	}
	b, err := c.rdb.Get(ctx, keyWhois+domain).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec models.WhoisRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *WhoisCache) set(ctx context.Context, domain string, rec models.WhoisRecord) error {
	if c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyWhois+domain, b, c.ttl).Err()
}

// Invalidate drops the cached record for domain.
func (c *WhoisCache) Invalidate(ctx context.Context, domain string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, keyWhois+normalizeDomain(domain)).Err()
}

func normalizeDomain(d string) string {
	return strings.TrimSpace(strings.ToLower(d))
}
