package account

import (
	"context"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type Repository interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// CreateIfAbsent inserts u unless its username exists; either way the
	// stored row is returned.
	CreateIfAbsent(ctx context.Context, u *models.User) (*models.User, error)

	ExistsBarberWithPhone(ctx context.Context, phone string) (bool, error)
	MainBarber(ctx context.Context, barbershopID uint) (*models.User, error)

	Update(ctx context.Context, u *models.User) error
}
