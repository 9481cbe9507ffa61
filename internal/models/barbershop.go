package models

import "time"

type Barbershop struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:100;not null;index" json:"name"`
	Slug    string `gorm:"size:120;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20;index" json:"phone"`
	Address string `gorm:"size:255" json:"address"`
	LogoURL string `gorm:"size:500" json:"logo_url"`

	// Active=false means suspended by an admin.
	Active bool `gorm:"not null" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
