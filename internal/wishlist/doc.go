// Package wishlist keeps the domain wishlist in memory and refreshes the
// availability of its entries.
//
// A refresh cycle marks the entries it is about to check as pending, sends
// them to the bulk availability checker and, for every domain that is taken,
// looks up the WHOIS expiry date. All lookups settle before the results are
// written back in one step. Results for entries that were deleted, or whose
// domain was edited, while the cycle was running are dropped.
//
// Failures never surface: a failed bulk check leaves the entry pending for
// the next cycle and a failed WHOIS lookup leaves it unavailable without an
// expiry date.
package wishlist
