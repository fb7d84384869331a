package models

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityStatus represents whether a wishlist domain can be registered
type AvailabilityStatus string

const (
	StatusPending     AvailabilityStatus = "pending"
	StatusAvailable   AvailabilityStatus = "available"
	StatusUnavailable AvailabilityStatus = "unavailable"
)

// CheckResult holds the outcome of one bulk availability check.
// Error is set when the lookup itself failed and says nothing about availability.
type CheckResult struct {
	Domain    string `json:"domain"`
	Available bool   `json:"available"`
	Error     string `json:"error,omitempty"`
}

// Availability is the last known registration state of a wishlist entry
type Availability struct {
	Status      AvailabilityStatus `json:"status"`
	LastChecked time.Time          `json:"last_checked"`
	ExpiryDate  *time.Time         `json:"expiry_date"`
}

// WishlistEntry represents a domain on the wishlist
type WishlistEntry struct {
	ID                   uuid.UUID    `json:"id"`
	Domain               string       `json:"domain"`
	Category             string       `json:"category"`
	Note                 string       `json:"note,omitempty"`
	DateAdded            time.Time    `json:"date_added"`
	NotificationsEnabled bool         `json:"notifications_enabled"`
	Availability         Availability `json:"availability"`
}

// WhoisRecord carries the expiry fields a registry may report, each under its
// own name. Field order is lookup priority.
type WhoisRecord struct {
	Domain                  string     `json:"domain"`
	Registrar               string     `json:"registrar,omitempty"`
	ExpirationDate          *time.Time `json:"expiration_date,omitempty"`
	RegistryExpiryDate      *time.Time `json:"registry_expiry_date,omitempty"`
	RegistrarExpirationDate *time.Time `json:"registrar_expiration_date,omitempty"`
	PaidTill                *time.Time `json:"paid_till,omitempty"`
	Expires                 *time.Time `json:"expires,omitempty"`
}

// Expiry returns the first expiry field present, or nil.
func (r WhoisRecord) Expiry() *time.Time {
	for _, t := range []*time.Time{
		r.ExpirationDate,
		r.RegistryExpiryDate,
		r.RegistrarExpirationDate,
		r.PaidTill,
		r.Expires,
	} {
		if t != nil {
			return t
		}
	}
	return nil
}
