package models

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// DefaultService is used when a booking request names no service.
const DefaultService = "corte de cabelo"

// Booking is correlated with Slot only through partition + date + time.
// At most one confirmed row may exist per key (partial unique index).
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID *uint `gorm:"index" json:"barbershop_id"`
	BarberID     *uint `gorm:"index" json:"barber_id"`

	Year  int    `gorm:"not null;index:idx_bookings_date,priority:1" json:"year"`
	Month int    `gorm:"not null;index:idx_bookings_date,priority:2" json:"month"`
	Day   int    `gorm:"not null;index:idx_bookings_date,priority:3" json:"day"`
	Time  string `gorm:"column:start_time;size:5;not null" json:"time"`

	UserID uint `gorm:"not null;index" json:"user_id"`

	CustomerName  string `gorm:"column:customer_display_name;size:100" json:"customer_name"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	Service string        `gorm:"size:100;not null" json:"service"`
	Status  BookingStatus `gorm:"size:20;not null;index" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
