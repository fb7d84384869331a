package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/berckan/domainwishlist/internal/models"
)

func TestReadDomains(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domains.txt")
	content := "# wishlist\nquizforge.io\n\n  examready.com  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := readDomains(path)
	if err != nil {
		t.Fatalf("\nwanted:\nnil\ngot:\n%v", err)
	}
	if strings.Join(got, ",") != "quizforge.io,examready.com" {
		t.Fatalf("\nwanted:\nquizforge.io,examready.com\ngot:\n%v", got)
	}
}

func TestPrintEntries(t *testing.T) {
	exp := time.Date(2029, 7, 1, 0, 0, 0, 0, time.UTC)
	entries := []models.WishlistEntry{
		{Domain: "quizforge.io", Availability: models.Availability{Status: models.StatusAvailable}},
		{Domain: "examready.com", Availability: models.Availability{Status: models.StatusUnavailable, ExpiryDate: &exp}},
	}

	var buf bytes.Buffer
	printEntries(&buf, entries)

	for _, want := range []string{"DOMAIN", "quizforge.io", "examready.com", "2029-07-01"} {
		if !strings.Contains(buf.String(), want) {
			t.Fatalf("\nwanted:\n%q in output\ngot:\n%s", want, buf.String())
		}
	}
}

func TestEntriesOutput(t *testing.T) {
	got := entriesOutput([]models.WishlistEntry{{Domain: "a.com", Availability: models.Availability{Status: models.StatusPending}}})
	if len(got) != 1 || got[0].Status != "pending" || got[0].Expires != nil {
		t.Fatalf("\nwanted:\none pending entry\ngot:\n%+v", got)
	}
}
