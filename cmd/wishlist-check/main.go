package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/berckan/domainwishlist/internal/cache"
	"github.com/berckan/domainwishlist/internal/checker"
	"github.com/berckan/domainwishlist/internal/config"
	"github.com/berckan/domainwishlist/internal/logging"
	"github.com/berckan/domainwishlist/internal/models"
	"github.com/berckan/domainwishlist/internal/notify"
	"github.com/berckan/domainwishlist/internal/wishlist"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		file     string
		category string
		email    bool
		output   string
		logLevel string
	)

	cmd := &cobra.Command{
		Use:   "wishlist-check [domain...]",
		Short: "Check availability and expiry of a list of domains",
		Long: "Loads domains from arguments or a file (one per line), runs one full\n" +
			"availability check and prints the results. Taken domains get their\n" +
			"WHOIS expiry date.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Configure(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			domains := args
			if file != "" {
				fromFile, err := readDomains(file)
				if err != nil {
					return err
				}
				domains = append(domains, fromFile...)
			}
			if len(domains) == 0 {
				return fmt.Errorf("no domains given")
			}

			store := wishlist.NewStore(nil)
			for _, d := range domains {
				if _, err := store.Add(d, category, ""); err != nil {
					return err
				}
			}

			c := newChecker(cfg)
			refresher := wishlist.NewRefresher(store, c, cache.NewWhoisCache(c, nil, 0), nil, wishlist.Options{
				WhoisConcurrency: cfg.Checker.Concurrency,
			})
			report, err := refresher.CheckAll(cmd.Context())
			if err != nil {
				return err
			}

			entries := store.Entries()
			wishlist.Sort(entries, wishlist.SortAsc)
			switch output {
			case "table":
				printEntries(cmd.OutOrStdout(), entries)
				fmt.Fprintf(cmd.OutOrStdout(), "\n%d checked, %d available, %d taken, %d deferred\n",
					report.Checked, report.Available, report.Unavailable, report.Deferred)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(entriesOutput(entries)); err != nil {
					return err
				}
				if err := enc.Close(); err != nil {
					return err
				}
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(entriesOutput(entries)); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown output format %q", output)
			}

			if email {
				var available []string
				for _, e := range entries {
					if e.Availability.Status == models.StatusAvailable {
						available = append(available, e.Domain)
					}
				}
				return sendReport(cmd.Context(), cfg, available)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "read domains from file, one per line")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category to tag the domains with")
	cmd.Flags().BoolVar(&email, "email", false, "email available domains via Resend (needs RESEND_API_KEY and EMAIL_TO)")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: table, json, yaml")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.LevelWarn, "log level: debug, info, warn, error")

	cmd.AddCommand(newScanCmd())
	return cmd
}

func newScanCmd() *cobra.Command {
	var (
		length   int
		prefixes []string
		email    bool
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan short domains across premium TLDs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c := newChecker(cfg)

			if len(prefixes) == 0 {
				prefixes = []string{""}
			}
			var available []string
			for i, prefix := range prefixes {
				domains := checker.GenerateShortDomains(length, prefix)
				fmt.Fprintf(cmd.OutOrStdout(), "Scanning %d-char domains (prefix: %q)...\n", length, prefix)
				for _, r := range c.CheckBulkHybrid(cmd.Context(), domains) {
					if r.Available {
						available = append(available, r.Domain)
					}
				}
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				// rate limit between batches
				if i < len(prefixes)-1 {
					time.Sleep(2 * time.Second)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Total available domains found: %d\n", len(available))
			for _, d := range available {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
			if email && len(available) > 0 {
				return sendReport(cmd.Context(), cfg, available)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "l", 2, "name length, 1 to 3")
	cmd.Flags().StringSliceVarP(&prefixes, "prefix", "p", nil, "name prefixes to scan")
	cmd.Flags().BoolVar(&email, "email", false, "email available domains via Resend")
	return cmd
}

func newChecker(cfg config.Config) *checker.Checker {
	return checker.New(checker.Options{
		Timeout:     cfg.Checker.Timeout.Duration(),
		Concurrency: cfg.Checker.Concurrency,
		Resolver:    cfg.Checker.Resolver,
	})
}

func sendReport(ctx context.Context, cfg config.Config, domains []string) error {
	if !cfg.Email.Enabled() {
		return fmt.Errorf("RESEND_API_KEY and EMAIL_TO environment variables required")
	}
	if len(domains) == 0 {
		return nil
	}
	return notify.NewResend(cfg.Email.ResendAPIKey, cfg.Email.To).Send(ctx, domains)
}

func readDomains(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

func printEntries(w io.Writer, entries []models.WishlistEntry) {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		expires := "-"
		if e.Availability.ExpiryDate != nil {
			expires = e.Availability.ExpiryDate.Format("2006-01-02")
		}
		rows = append(rows, []string{e.Domain, e.Category, statusText(e.Availability.Status), expires})
	}
	fmt.Fprintln(w, renderTable([]string{"DOMAIN", "CATEGORY", "STATUS", "EXPIRES"}, rows))
}

type entryOutput struct {
	Domain   string     `json:"domain" yaml:"domain"`
	Category string     `json:"category,omitempty" yaml:"category,omitempty"`
	Status   string     `json:"status" yaml:"status"`
	Checked  time.Time  `json:"last_checked" yaml:"last_checked"`
	Expires  *time.Time `json:"expires,omitempty" yaml:"expires,omitempty"`
}

func entriesOutput(entries []models.WishlistEntry) []entryOutput {
	out := make([]entryOutput, len(entries))
	for i, e := range entries {
		out[i] = entryOutput{
			Domain:   e.Domain,
			Category: e.Category,
			Status:   string(e.Availability.Status),
			Checked:  e.Availability.LastChecked,
			Expires:  e.Availability.ExpiryDate,
		}
	}
	return out
}
