package booking

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Cancel moves b to cancelled. It reports false when b already was.
func Cancel(b *models.Booking, now time.Time) bool {
	if !NeedsCancel(b.Status) {
		return false
	}

	b.Status = models.BookingCancelled
	b.CancelledAt = &now
	return true
}

// ServiceOrDefault never returns an empty label.
func ServiceOrDefault(service string) string {
	if s := strings.TrimSpace(service); s != "" {
		return s
	}
	return models.DefaultService
}

// DisplayName prefers the free-text customer name of anonymous bookings
// over the requester's username.
func DisplayName(customerName, username string) string {
	if strings.TrimSpace(customerName) != "" {
		return customerName
	}
	return username
}
