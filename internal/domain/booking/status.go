package booking

import "github.com/BruksfildServices01/barber-agenda/internal/models"

// ===============================
// Booking Status
// ===============================

func InitialStatus() models.BookingStatus {
	return models.BookingConfirmed
}

// IsLive reports whether a booking occupies its slot.
func IsLive(s models.BookingStatus) bool {
	return s == models.BookingConfirmed
}

// NeedsCancel is false for bookings already cancelled; cancelling twice is a no-op.
func NeedsCancel(s models.BookingStatus) bool {
	return s != models.BookingCancelled
}
