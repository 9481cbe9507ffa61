package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleClient Role = "client"
	RoleBarber Role = "barber"
	RoleAdmin  Role = "admin"
)

// PublicClientUsername is the placeholder requester of anonymous bookings.
const PublicClientUsername = "Cliente"

// IsReservedUsername reports whether name would pass for the public
// client. Case and surrounding spaces are ignored.
func IsReservedUsername(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), PublicClientUsername)
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Required for barbers, nil for admins and public clients.
	BarbershopID *uint `gorm:"index" json:"barbershop_id"`

	Username     string `gorm:"size:100;uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:20;not null" json:"role"`
	BusinessName string `gorm:"size:100" json:"business_name"`
	Phone        string `gorm:"size:20;index" json:"phone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
