package checker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/berckan/domainwishlist/internal/models"
	whoisparser "github.com/likexian/whois-parser"
)

// ErrNotRegistered is returned by Lookup when the registry has no record.
var ErrNotRegistered = errors.New("domain not registered")

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
	"2006/01/02",
}

// parseDate accepts the date formats registries commonly emit.
// Date-only values are taken as start of day UTC.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	// second pass drops trailing hints like "2030-01-01 (YYYY-MM-DD)"
	for _, candidate := range []string{s, strings.Fields(s)[0]} {
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, candidate); err == nil {
				t = t.UTC()
				return &t
			}
		}
	}
	return nil
}

// rawFields maps lower-cased WHOIS keys onto the record field they fill.
var rawFields = map[string]func(r *models.WhoisRecord) **time.Time{
	"expiration date":                        func(r *models.WhoisRecord) **time.Time { return &r.ExpirationDate },
	"registry expiry date":                   func(r *models.WhoisRecord) **time.Time { return &r.RegistryExpiryDate },
	"registrar registration expiration date": func(r *models.WhoisRecord) **time.Time { return &r.RegistrarExpirationDate },
	"paid-till":                              func(r *models.WhoisRecord) **time.Time { return &r.PaidTill },
	"expires":                                func(r *models.WhoisRecord) **time.Time { return &r.Expires },
	"expires on":                             func(r *models.WhoisRecord) **time.Time { return &r.Expires },
}

// scanRaw fills any still-empty expiry fields from "key: value" lines.
func scanRaw(raw string, rec *models.WhoisRecord) {
	sc := bufio.NewScanner(strings.NewReader(raw))
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		field, ok := rawFields[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			continue
		}
		dst := field(rec)
		if *dst != nil {
			continue
		}
		*dst = parseDate(value)
	}
}

// ParseRecord extracts the expiry fields from a raw WHOIS response.
func ParseRecord(domain, raw string) (models.WhoisRecord, error) {
	rec := models.WhoisRecord{Domain: domain}

	info, err := whoisparser.Parse(raw)
	switch {
	case errors.Is(err, whoisparser.ErrNotFoundDomain):
		return models.WhoisRecord{}, fmt.Errorf("%w: %s", ErrNotRegistered, domain)
	case err == nil:
		if info.Domain != nil {
			rec.ExpirationDate = parseDate(info.Domain.ExpirationDate)
		}
		if info.Registrar != nil {
			rec.Registrar = info.Registrar.Name
		}
	}
	// The parser does not know every registry; fall back to the raw lines.
	scanRaw(raw, &rec)
	return rec, nil
}

// Lookup fetches WHOIS data for one domain and returns its expiry fields.
func (c *Checker) Lookup(ctx context.Context, domain string) (models.WhoisRecord, error) {
	raw, err := c.fetch(ctx, domain)
	if err != nil {
		return models.WhoisRecord{}, err
	}
	return ParseRecord(domain, raw)
}
