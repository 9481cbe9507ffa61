package barbershop

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Stats are the admin dashboard aggregates of one tenant.
type Stats struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Active        bool   `json:"active"`
	BarbersCount  int64  `json:"barbers_count"`
	BookingsCount int64  `json:"bookings_count"`
}

type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBySlug(ctx context.Context, slug string) (*models.Barbershop, error)

	ExistsByName(ctx context.Context, name string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsBySlug(ctx context.Context, slug string, exceptID uint) (bool, error)

	// CreateWithOwner inserts the tenant and its first barber atomically.
	CreateWithOwner(ctx context.Context, shop *models.Barbershop, owner *models.User) error

	Update(ctx context.Context, shop *models.Barbershop) error

	// Delete removes the tenant with its users, slots, bookings and audit logs.
	Delete(ctx context.Context, id uint) error

	List(ctx context.Context) ([]models.Barbershop, error)
	CountBarbers(ctx context.Context) (map[uint]int64, error)
	CountBookingsInMonth(ctx context.Context, year, month int) (map[uint]int64, error)
}
