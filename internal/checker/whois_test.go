package checker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/berckan/domainwishlist/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want *time.Time
	}{
		{in: "2030-01-01", want: ptr(date(2030, 1, 1))},
		{in: "2030-01-01T00:00:00Z", want: ptr(date(2030, 1, 1))},
		{in: "01-Jan-2030", want: ptr(date(2030, 1, 1))},
		{in: "2030.01.01", want: ptr(date(2030, 1, 1))},
		{in: " 2030-01-01 (YYYY-MM-DD)", want: ptr(date(2030, 1, 1))},
		{in: "", want: nil},
		{in: "never", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := parseDate(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("\nwanted:\nnil\ngot:\n%v", got)
				}
				return
			}
			if got == nil || !got.Equal(*tt.want) {
				t.Fatalf("\nwanted:\n%v\ngot:\n%v", tt.want, got)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }

func TestParseRecord(t *testing.T) {
	t.Run("should read raw expiry fields the parser leaves empty", func(t *testing.T) {
		raw := "domain: example.ru\n" +
			"nserver: a.dns.ripn.net.\n" +
			"paid-till: 2031-03-04T21:00:00Z\n"

		rec, err := ParseRecord("example.ru", raw)
		if err != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
		}
		if rec.PaidTill == nil || !rec.PaidTill.Equal(time.Date(2031, 3, 4, 21, 0, 0, 0, time.UTC)) {
			t.Fatalf("\nwanted:\n2031-03-04T21:00:00Z\ngot:\n%v", rec.PaidTill)
		}
		if exp := rec.Expiry(); exp == nil || !exp.Equal(*rec.PaidTill) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", rec.PaidTill, exp)
		}
	})

	t.Run("should fill each raw field under its own name", func(t *testing.T) {
		raw := "Registrar Registration Expiration Date: 2032-05-05T00:00:00Z\n" +
			"Registry Expiry Date: 2030-01-01T00:00:00Z\n" +
			"Expires On: 2033-01-01\n" +
			"Registry Expiry Date: 2099-01-01T00:00:00Z\n"

		var rec models.WhoisRecord
		scanRaw(raw, &rec)

		if rec.ExpirationDate != nil {
			t.Fatalf("\nwanted:\nnil\ngot:\n%v", rec.ExpirationDate)
		}
		if rec.RegistryExpiryDate == nil || !rec.RegistryExpiryDate.Equal(date(2030, 1, 1)) {
			t.Fatalf("first value should win\nwanted:\n2030-01-01\ngot:\n%v", rec.RegistryExpiryDate)
		}
		if rec.RegistrarExpirationDate == nil || rec.RegistrarExpirationDate.Year() != 2032 {
			t.Fatalf("\nwanted:\n2032-05-05\ngot:\n%v", rec.RegistrarExpirationDate)
		}
		if rec.Expires == nil || rec.Expires.Year() != 2033 {
			t.Fatalf("\nwanted:\n2033-01-01\ngot:\n%v", rec.Expires)
		}
		if exp := rec.Expiry(); !exp.Equal(date(2030, 1, 1)) {
			t.Fatalf("\nwanted:\n2030-01-01\ngot:\n%v", exp)
		}
	})
}

func TestChecker_Lookup(t *testing.T) {
	t.Run("should fail when the query fails", func(t *testing.T) {
		c := newTestChecker(func(string) (string, error) { return "", errors.New("timeout") }, nil)

		_, err := c.Lookup(context.Background(), "b.com")
		if !errors.Is(err, ErrLookup) {
			t.Fatalf("\nwanted:\n%v\ngot:\n%v", ErrLookup, err)
		}
	})
}
