package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/berckan/domainwishlist/internal/models"
	"github.com/likexian/whois"
)

// ErrLookup is returned when a WHOIS query could not be completed.
var ErrLookup = errors.New("whois lookup failed")

// queryFunc fetches the raw WHOIS text for a domain.
type queryFunc func(domain string) (string, error)

// hostFunc resolves a host name, as net.Resolver.LookupHost does.
type hostFunc func(ctx context.Context, host string) ([]string, error)

// Checker handles domain availability checks and WHOIS lookups
type Checker struct {
	query       queryFunc
	lookupHost  hostFunc
	timeout     time.Duration
	concurrency int
}

// Options tune a Checker. Zero values fall back to defaults.
type Options struct {
	Timeout     time.Duration
	Concurrency int
	Resolver    string
}

// New creates a new domain checker
func New(opts Options) *Checker {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 5
	}
	if opts.Resolver == "" {
		opts.Resolver = "8.8.8.8:53"
	}

	client := whois.NewClient().SetTimeout(opts.Timeout)
	resolver := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
			d := net.Dialer{Timeout: 5 * time.Second}
			return d.DialContext(ctx, network, opts.Resolver)
		},
	}

	return &Checker{
		query:       func(domain string) (string, error) { return client.Whois(domain) },
		lookupHost:  resolver.LookupHost,
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
	}
}

// Patterns that indicate domain IS registered (taken) - check these FIRST
var takenPatterns = []string{
	"registrar:",
	"registrant:",
	"creation date:",
	"created:",
	"registry expiry date:",
	"expiration date:",
	"name server:",
	"nameserver:",
	"nserver:",
	"dnssec:",
	"registrar iana id:",
	"domain status:",
	"admin contact:",
	"tech contact:",
	"billing contact:",
}

// Patterns that indicate domain is NOT registered (available)
var availablePatterns = []string{
	"no match for",
	"not found",
	"no entries found",
	"domain not found",
	"no data found",
	"status: free",
	"status: available",
	"no object found",
	"object does not exist",
	"nothing found",
	"no information available",
	"is available for registration",
	"is free",
	"domain is available",
	"the queried object does not exist",
	"no such domain",
	"domain name has not been registered",
	"no matching record",
}

// classify reports whether a raw WHOIS response says the domain can be registered.
// Anything ambiguous counts as taken.
func classify(raw string) bool {
	lower := strings.ToLower(raw)

	for _, pattern := range takenPatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}

	// Premium and platinum names show up as "available" but are held for sale.
	if (strings.Contains(lower, "premium") || strings.Contains(lower, "platinum")) &&
		(strings.Contains(lower, "purchase") || strings.Contains(lower, "contact") ||
			strings.Contains(lower, "offer") || strings.Contains(lower, "reserved")) {
		return false
	}
	if strings.Contains(lower, "this name is reserved") {
		return false
	}

	for _, pattern := range availablePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

// Check verifies if a single domain is available using WHOIS.
// A failed query is reported in Error rather than guessed.
func (c *Checker) Check(ctx context.Context, domain string) models.CheckResult {
	result := models.CheckResult{Domain: domain}

	raw, err := c.fetch(ctx, domain)
	if err != nil {
		slog.Debug("Availability check failed.", "domain", domain, "error", err)
		result.Error = err.Error()
		return result
	}

	result.Available = classify(raw)
	return result
}

// fetch runs the blocking WHOIS query but gives up when ctx is done.
func (c *Checker) fetch(ctx context.Context, domain string) (string, error) {
	type reply struct {
		raw string
		err error
	}
	ch := make(chan reply, 1)
	go func() {
		raw, err := c.query(domain)
		ch <- reply{raw: raw, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %s: %w", ErrLookup, domain, ctx.Err())
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrLookup, domain, r.err)
		}
		return r.raw, nil
	}
}

// checkDNS is the fast DNS pre-filter. NXDOMAIN marks a candidate; every
// other answer, including unknown errors, counts as taken.
func (c *Checker) checkDNS(ctx context.Context, domain string) models.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result := models.CheckResult{Domain: domain}

	_, err := c.lookupHost(ctx, domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			result.Available = true
		}
	}
	return result
}

// CheckBulk checks multiple domains with limited concurrency (WHOIS rate limiting).
// Results keep the input order.
func (c *Checker) CheckBulk(ctx context.Context, domains []string) []models.CheckResult {
	results := make([]models.CheckResult, len(domains))
	var wg sync.WaitGroup

	semaphore := make(chan struct{}, c.concurrency)

	for i, domain := range domains {
		wg.Add(1)
		go func(idx int, d string) {
			defer wg.Done()
			select {
			case semaphore <- struct{}{}:
			case <-ctx.Done():
				results[idx] = models.CheckResult{Domain: d, Error: ctx.Err().Error()}
				return
			}
			results[idx] = c.Check(ctx, d)
			<-semaphore
		}(i, domain)
	}

	wg.Wait()
	return results
}

// CheckBulkHybrid uses DNS first (fast), then WHOIS to confirm candidates
func (c *Checker) CheckBulkHybrid(ctx context.Context, domains []string) []models.CheckResult {
	results := make([]models.CheckResult, len(domains))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, 50)

	for i, domain := range domains {
		wg.Add(1)
		go func(idx int, d string) {
			defer wg.Done()
			semaphore <- struct{}{}
			results[idx] = c.checkDNS(ctx, d)
			<-semaphore
		}(i, domain)
	}
	wg.Wait()

	var candidates []string
	var positions []int
	for i, r := range results {
		if r.Available {
			candidates = append(candidates, r.Domain)
			positions = append(positions, i)
		}
	}
	if len(candidates) == 0 {
		return results
	}

	confirmed := c.CheckBulk(ctx, candidates)
	for i, pos := range positions {
		results[pos] = confirmed[i]
	}
	return results
}
