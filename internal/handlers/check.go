package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/berckan/domainwishlist/internal/models"
	"github.com/berckan/domainwishlist/internal/wishlist"

	"github.com/gin-gonic/gin"
)

const maxBulkDomains = 50

// Checker answers availability questions.
type Checker interface {
	Check(ctx context.Context, domain string) models.CheckResult
	CheckBulk(ctx context.Context, domains []string) []models.CheckResult
}

// WhoisLookup fetches WHOIS expiry data.
type WhoisLookup interface {
	Lookup(ctx context.Context, domain string) (models.WhoisRecord, error)
}

type invalidator interface {
	Invalidate(ctx context.Context, domain string) error
}

type CheckHandler struct {
	checker Checker
	whois   WhoisLookup
}

func NewCheckHandler(checker Checker, whois WhoisLookup) *CheckHandler {
	return &CheckHandler{checker: checker, whois: whois}
}

type checkRequest struct {
	Domain string `json:"domain" binding:"required"`
}

type checkBulkRequest struct {
	Domains []string `json:"domains" binding:"required"`
}

type checkBulkResponse struct {
	Items     []models.CheckResult `json:"items"`
	Truncated bool                 `json:"truncated"`
}

// CheckDomain handles a single availability check
func (h *CheckHandler) CheckDomain(c *gin.Context) {
	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	domain, err := wishlist.NormalizeDomain(req.Domain)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.checker.Check(c.Request.Context(), domain))
}

// CheckBulk handles multiple domain checks, at most maxBulkDomains per request
func (h *CheckHandler) CheckBulk(c *gin.Context) {
	var req checkBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var domains []string
	for _, raw := range req.Domains {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		d, err := wishlist.NormalizeDomain(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		domains = append(domains, d)
	}
	if len(domains) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no domains provided"})
		return
	}

	truncated := len(domains) > maxBulkDomains
	if truncated {
		domains = domains[:maxBulkDomains]
	}
	c.JSON(http.StatusOK, checkBulkResponse{
		Items:     h.checker.CheckBulk(c.Request.Context(), domains),
		Truncated: truncated,
	})
}

type whoisResponse struct {
	models.WhoisRecord
	Expiry *time.Time `json:"expiry"`
}

// Whois returns the expiry fields for one domain. ?refresh=true bypasses the cache.
func (h *CheckHandler) Whois(c *gin.Context) {
	domain, err := wishlist.NormalizeDomain(c.Param("domain"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx := c.Request.Context()
	if c.Query("refresh") == "true" {
		if inv, ok := h.whois.(invalidator); ok {
			if err := inv.Invalidate(ctx, domain); err != nil {
				slog.Warn("Invalidating whois cache failed.", "domain", domain, "error", err)
			}
		}
	}
	rec, err := h.whois.Lookup(ctx, domain)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, whoisResponse{WhoisRecord: rec, Expiry: rec.Expiry()})
}
