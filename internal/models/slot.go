package models

import "time"

// Slot is one bookable time of day for a (barbershop, barber) partition.
// Nil partition columns are the legacy/global scope. Uniqueness of
// (partition, year, month, day, time) is enforced by an expression index
// created in db.Migrate.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarbershopID *uint `gorm:"index" json:"barbershop_id"`
	BarberID     *uint `gorm:"index" json:"barber_id"`

	Year  int    `gorm:"not null;index:idx_slots_date,priority:1" json:"year"`
	Month int    `gorm:"not null;index:idx_slots_date,priority:2" json:"month"`
	Day   int    `gorm:"not null;index:idx_slots_date,priority:3" json:"day"`
	Time  string `gorm:"column:start_time;size:5;not null" json:"time"`

	Active bool `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
