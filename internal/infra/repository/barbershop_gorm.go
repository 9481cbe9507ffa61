package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

type BarbershopGormRepository struct {
	db *gorm.DB
}

func NewBarbershopGormRepository(db *gorm.DB) *BarbershopGormRepository {
	return &BarbershopGormRepository{db: db}
}

var _ domain.Repository = (*BarbershopGormRepository)(nil)

// --------------------------------------------------
// Lookup
// --------------------------------------------------

func (r *BarbershopGormRepository) GetByID(ctx context.Context, id uint) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *BarbershopGormRepository) GetBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, notFound(err)
	}
	return &shop, nil
}

func (r *BarbershopGormRepository) exists(ctx context.Context, query string, args ...any) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Barbershop{}).
		Where(query, args...).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BarbershopGormRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, "name = ?", name)
}

func (r *BarbershopGormRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone = ?", phone)
}

func (r *BarbershopGormRepository) ExistsBySlug(ctx context.Context, slug string, exceptID uint) (bool, error) {
	return r.exists(ctx, "slug = ? AND id <> ?", slug, exceptID)
}

// --------------------------------------------------
// Write
// --------------------------------------------------

func (r *BarbershopGormRepository) CreateWithOwner(
	ctx context.Context,
	shop *models.Barbershop,
	owner *models.User,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(shop).Error; err != nil {
			return err
		}

		owner.BarbershopID = &shop.ID
		return tx.Create(owner).Error
	})
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (r *BarbershopGormRepository) Update(ctx context.Context, shop *models.Barbershop) error {
	if err := r.db.WithContext(ctx).Save(shop).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *BarbershopGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&models.Booking{},
			&models.Slot{},
			&models.AuditLog{},
			&models.User{},
		} {
			if err := tx.Where("barbershop_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Barbershop{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Stats
// --------------------------------------------------

func (r *BarbershopGormRepository) List(ctx context.Context) ([]models.Barbershop, error) {
	var shops []models.Barbershop
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&shops).Error; err != nil {
		return nil, err
	}
	return shops, nil
}

type shopCount struct {
	BarbershopID uint
	Total        int64
}

func toCountMap(rows []shopCount) map[uint]int64 {
	out := make(map[uint]int64, len(rows))
	for _, row := range rows {
		out[row.BarbershopID] = row.Total
	}
	return out
}

func (r *BarbershopGormRepository) CountBarbers(ctx context.Context) (map[uint]int64, error) {
	var rows []shopCount
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("barbershop_id, COUNT(*) AS total").
		Where("role = ? AND barbershop_id IS NOT NULL", models.RoleBarber).
		Group("barbershop_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}

// CountBookingsInMonth counts bookings of any status, per tenant.
func (r *BarbershopGormRepository) CountBookingsInMonth(ctx context.Context, year, month int) (map[uint]int64, error) {
	var rows []shopCount
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("barbershop_id, COUNT(*) AS total").
		Where("year = ? AND month = ? AND barbershop_id IS NOT NULL", year, month).
		Group("barbershop_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return toCountMap(rows), nil
}
