package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/berckan/domainwishlist/internal/models"

	"github.com/yosssi/gohtml"
)

const resendEndpoint = "https://api.resend.com/emails"

// Log writes notifications to the default logger.
type Log struct{}

func (Log) Notify(_ context.Context, entries []models.WishlistEntry) error {
	for _, e := range entries {
		slog.Info("Wishlist domain is available.", "domain", e.Domain, "category", e.Category)
	}
	return nil
}

// Resend emails notifications through the Resend API.
type Resend struct {
	APIKey   string
	To       string
	From     string
	Endpoint string
	Client   *http.Client
}

// NewResend returns a Resend notifier with the default sender and endpoint.
func NewResend(apiKey, to string) *Resend {
	return &Resend{
		APIKey:   apiKey,
		To:       to,
		From:     "Domain Wishlist <onboarding@resend.dev>",
		Endpoint: resendEndpoint,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify sends one email listing the domains.
func (r *Resend) Notify(ctx context.Context, entries []models.WishlistEntry) error {
	if len(entries) == 0 {
		return nil
	}
	domains := make([]string, len(entries))
	for i, e := range entries {
		domains[i] = e.Domain
	}
	return r.Send(ctx, domains)
}

// Send emails a report of the given available domains.
func (r *Resend) Send(ctx context.Context, domains []string) error {
	payload := map[string]interface{}{
		"from":    r.From,
		"to":      []string{r.To},
		"subject": fmt.Sprintf("%d domains available - %s", len(domains), time.Now().Format("Jan 2")),
		"html":    RenderReport(domains, time.Now()),
	}

	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+r.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("resend API returned status %d", resp.StatusCode)
	}
	return nil
}

// RenderReport builds the HTML body, grouping domains by TLD.
func RenderReport(domains []string, at time.Time) string {
	byTLD := make(map[string][]string)
	for _, d := range domains {
		if i := strings.LastIndex(d, "."); i >= 0 && i < len(d)-1 {
			byTLD[d[i+1:]] = append(byTLD[d[i+1:]], d)
		}
	}
	tlds := make([]string, 0, len(byTLD))
	for tld := range byTLD {
		tlds = append(tlds, tld)
	}
	sort.Strings(tlds)

	var b strings.Builder
	b.WriteString(`<html><body style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h1 style="color: #22c55e;">Domain Wishlist</h1>`)
	fmt.Fprintf(&b, `<p style="color: #666;">Found <strong>%d</strong> available domains</p>`, len(domains))
	fmt.Fprintf(&b, `<p style="color: #999; font-size: 12px;">%s</p>`, at.Format("January 2, 2006 at 15:04 MST"))

	for _, tld := range tlds {
		list := byTLD[tld]
		fmt.Fprintf(&b, `<h3 style="color: #333; margin-top: 20px;">.%s (%d)</h3>`, html.EscapeString(tld), len(list))
		b.WriteString(`<div style="display: flex; flex-wrap: wrap; gap: 8px;">`)
		for _, d := range list {
			fmt.Fprintf(&b, `<span style="background: #f0fdf4; border: 1px solid #22c55e; padding: 4px 8px; border-radius: 4px; font-family: monospace;">%s</span>`, html.EscapeString(d))
		}
		b.WriteString(`</div>`)
	}
	b.WriteString(`</body></html>`)
	return gohtml.Format(b.String())
}
