package barbershop

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/barbershop"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/logger"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// Service is tenant read/update/delete. Callers restrict it to admins,
// or to a barber acting on their own shop.
type Service struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewService(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Service {
	return &Service{repo: repo, clock: clk, audit: audit, log: logger.OrNop(log)}
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return httperr.ErrBusiness("not_found")
	}
	return err
}

// ======================================================
// READ
// ======================================================

func (s *Service) Get(ctx context.Context, id uint) (*models.Barbershop, error) {
	shop, err := s.repo.GetByID(ctx, id)
	return shop, notFound(err)
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	shop, err := s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	return shop, notFound(err)
}

// ListWithStats adds barber count and bookings of the current month.
func (s *Service) ListWithStats(ctx context.Context) ([]domain.Stats, error) {
	shops, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	barbers, err := s.repo.CountBarbers(ctx)
	if err != nil {
		return nil, fmt.Errorf("count barbers: %w", err)
	}

	today := clock.Today(s.clock)
	bookings, err := s.repo.CountBookingsInMonth(ctx, today.Year, today.Month)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	out := make([]domain.Stats, 0, len(shops))
	for _, shop := range shops {
		out = append(out, domain.Stats{
			ID:            shop.ID,
			Name:          shop.Name,
			Slug:          shop.Slug,
			Active:        shop.Active,
			BarbersCount:  barbers[shop.ID],
			BookingsCount: bookings[shop.ID],
		})
	}
	return out, nil
}

// ======================================================
// UPDATE
// ======================================================

// Patch fields are optional; nil leaves the column unchanged.
type Patch struct {
	Name    *string
	Slug    *string
	Phone   *string
	Address *string
	Active  *bool
}

func (s *Service) Update(ctx context.Context, by actor.Actor, id uint, p Patch) (*models.Barbershop, error) {
	shop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name != shop.Name {
			taken, err := s.repo.ExistsByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, httperr.ErrBusiness("name_taken")
			}
		}
		shop.Name = name
	}

	if p.Slug != nil {
		slug := Slugify(*p.Slug)
		taken, err := s.repo.ExistsBySlug(ctx, slug, shop.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, httperr.ErrBusiness("slug_taken")
		}
		shop.Slug = slug
	}

	if p.Phone != nil {
		shop.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		shop.Address = strings.TrimSpace(*p.Address)
	}
	if p.Active != nil {
		shop.Active = *p.Active
	}

	if err := s.save(ctx, by, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// ToggleStatus flips active/suspended.
func (s *Service) ToggleStatus(ctx context.Context, by actor.Actor, id uint) (*models.Barbershop, error) {
	shop, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	shop.Active = !shop.Active
	if err := s.save(ctx, by, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *Service) save(ctx context.Context, by actor.Actor, shop *models.Barbershop) error {
	if err := s.repo.Update(ctx, shop); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return httperr.ErrBusiness("slug_taken")
		}
		return fmt.Errorf("update barbershop: %w", err)
	}

	s.audit.Dispatch(audit.Event{
		BarbershopID: audit.U(shop.ID),
		UserID:       by.UserRef(),
		Action:       audit.ActionShopUpdated,
		Entity:       "barbershop",
		EntityID:     audit.U(shop.ID),
		Metadata:     map[string]any{"active": shop.Active, "slug": shop.Slug},
	})
	return nil
}

// ======================================================
// DELETE
// ======================================================

// Delete removes the tenant with its users, slots, bookings and audit logs.
func (s *Service) Delete(ctx context.Context, by actor.Actor, id uint) error {
	if err := notFound(s.repo.Delete(ctx, id)); err != nil {
		return err
	}

	// The shop's own audit rows are gone; keep this one unscoped.
	s.audit.Dispatch(audit.Event{
		UserID:   by.UserRef(),
		Action:   audit.ActionShopDeleted,
		Entity:   "barbershop",
		EntityID: audit.U(id),
	})
	s.log.Info("barbershop deleted", zap.Uint("barbershop_id", id))
	return nil
}
