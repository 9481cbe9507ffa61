package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/account"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

var _ domain.Repository = (*UserGormRepository)(nil)

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserGormRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// CreateIfAbsent loses gracefully to a concurrent insert of the same
// username and then returns the winner's row.
func (r *UserGormRepository) CreateIfAbsent(ctx context.Context, u *models.User) (*models.User, error) {
	existing, err := r.GetByUsername(ctx, u.Username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return r.GetByUsername(ctx, u.Username)
		}
		return nil, err
	}
	return u, nil
}

func (r *UserGormRepository) ExistsBarberWithPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ? AND phone = ?", models.RoleBarber, phone).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// MainBarber is the first barber registered for the tenant.
func (r *UserGormRepository) MainBarber(ctx context.Context, barbershopID uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND role = ?", barbershopID, models.RoleBarber).
		Order("id ASC").
		First(&u).Error; err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *UserGormRepository) Update(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}
