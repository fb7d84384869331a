package checker

import (
	"context"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestChecker(query queryFunc, lookupHost hostFunc) *Checker {
	return &Checker{
		query:       query,
		lookupHost:  lookupHost,
		timeout:     time.Second,
		concurrency: 2,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{name: "no match", raw: "No match for \"EXAMPLE-FREE.COM\".", want: true},
		{name: "status free", raw: "Domain: x.de\nStatus: free", want: true},
		{name: "registered", raw: "Domain Name: EXAMPLE.COM\nRegistrar: Example Registrar\nCreation Date: 1995-08-14", want: false},
		{name: "taken wins over not found", raw: "Registrar: X\nnot found in cache", want: false},
		{name: "premium", raw: "This premium domain is available for purchase", want: false},
		{name: "reserved", raw: "This name is reserved by the registry", want: false},
		{name: "unclear", raw: "rate limit exceeded", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.raw); got != tt.want {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", tt.want, got)
			}
		})
	}
}

func TestChecker_Check(t *testing.T) {
	t.Run("should report lookup failures as errors", func(t *testing.T) {
		c := newTestChecker(func(string) (string, error) { return "", errors.New("connection refused") }, nil)

		got := c.Check(context.Background(), "a.com")
		if got.Available {
			t.Fatalf("\nwanted:\nfalse\ngot:\ntrue")
		}
		if !strings.Contains(got.Error, "connection refused") {
			t.Fatalf("\nwanted:\nconnection refused\ngot:\n%q", got.Error)
		}
	})

	t.Run("should give up when the context ends", func(t *testing.T) {
		block := make(chan struct{})
		defer close(block)
		c := newTestChecker(func(string) (string, error) { <-block; return "", nil }, nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		got := c.Check(ctx, "slow.com")
		if got.Error == "" {
			t.Fatalf("\nwanted:\ncontext error\ngot:\n%+v", got)
		}
	})
}

func TestChecker_CheckBulk(t *testing.T) {
	var inFlight, peak int32
	c := newTestChecker(func(domain string) (string, error) {
		n := atomic.AddInt32(&inFlight, 1)
		defer atomic.AddInt32(&inFlight, -1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		if strings.HasPrefix(domain, "free") {
			return "No match for domain", nil
		}
		return "Registrar: Example", nil
	}, nil)

	domains := []string{"free1.com", "taken.com", "free2.io", "taken2.net", "free3.dev"}
	got := c.CheckBulk(context.Background(), domains)

	if len(got) != len(domains) {
		t.Fatalf("\nwanted:\n%d\ngot:\n%d", len(domains), len(got))
	}
	for i, r := range got {
		if r.Domain != domains[i] {
			t.Fatalf("result %d out of order\nwanted:\n%s\ngot:\n%s", i, domains[i], r.Domain)
		}
		want := strings.HasPrefix(domains[i], "free")
		if r.Available != want {
			t.Fatalf("%s\nwanted:\n%v\ngot:\n%v", r.Domain, want, r.Available)
		}
	}
	if peak > 2 {
		t.Fatalf("concurrency limit exceeded\nwanted:\n<= 2\ngot:\n%d", peak)
	}
}

func TestChecker_CheckBulkHybrid(t *testing.T) {
	var whoisCalls int32
	c := newTestChecker(
		func(domain string) (string, error) {
			atomic.AddInt32(&whoisCalls, 1)
			if domain == "parked.io" {
				return "Registrar: Parking Inc", nil
			}
			return "Domain not found.", nil
		},
		func(ctx context.Context, host string) ([]string, error) {
			if host == "live.com" {
				return []string{"93.184.216.34"}, nil
			}
			return nil, &net.DNSError{Err: "no such host", Name: host, IsNotFound: true}
		},
	)

	got := c.CheckBulkHybrid(context.Background(), []string{"live.com", "parked.io", "free.dev"})

	if got[0].Available {
		t.Fatalf("live.com should be taken from DNS alone")
	}
	if got[1].Available {
		t.Fatalf("parked.io should be taken after WHOIS confirmation")
	}
	if !got[2].Available {
		t.Fatalf("free.dev should be available")
	}
	if whoisCalls != 2 {
		t.Fatalf("only DNS candidates should reach WHOIS\nwanted:\n2\ngot:\n%d", whoisCalls)
	}
}
