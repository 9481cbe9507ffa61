package booking

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/logger"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// canceller is the write path shared by both cancel use cases.
type canceller struct {
	repo  domain.Repository
	clock clock.Clock
	audit *audit.Dispatcher
	log   *zap.Logger
}

func (c canceller) cancel(ctx context.Context, by actor.Actor, b *models.Booking) error {
	if !domain.Cancel(b, c.clock.Now()) {
		return nil
	}

	if err := c.repo.Update(ctx, b); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	metrics.BookingsCancelled.Inc()

	c.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		UserID:       by.UserRef(),
		Action:       audit.ActionBookingCancelled,
		Entity:       "booking",
		EntityID:     audit.U(b.ID),
	})
	c.log.Info("booking cancelled", zap.Uint("booking_id", b.ID))
	return nil
}

// ======================================================
// BY ID
// ======================================================

type CancelBookingInput struct {
	By        actor.Actor
	BookingID uint

	// Authorize, when set, is asked before anything changes. Returning
	// false yields not_allowed.
	Authorize func(b *models.Booking) bool
}

type CancelBooking struct {
	canceller
}

func NewCancelBooking(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CancelBooking {
	return &CancelBooking{canceller{repo: repo, clock: clk, audit: audit, log: logger.OrNop(log)}}
}

// Execute cancels the booking. Cancelling a cancelled booking succeeds
// without changes.
func (uc *CancelBooking) Execute(
	ctx context.Context,
	in CancelBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetByID(ctx, in.BookingID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, httperr.ErrBusiness("not_found")
	}
	if err != nil {
		return nil, err
	}

	if in.Authorize != nil && !in.Authorize(b) {
		return nil, httperr.ErrBusiness("not_allowed")
	}

	if err := uc.cancel(ctx, in.By, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ======================================================
// BY DETAILS
// ======================================================

type CancelBookingByDetails struct {
	canceller
}

func NewCancelBookingByDetails(
	repo domain.Repository,
	clk clock.Clock,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CancelBookingByDetails {
	return &CancelBookingByDetails{canceller{repo: repo, clock: clk, audit: audit, log: logger.OrNop(log)}}
}

// Execute cancels the confirmed booking holding (p, d, t) and reports
// whether there was one. No booking is not an error.
func (uc *CancelBookingByDetails) Execute(
	ctx context.Context,
	by actor.Actor,
	p partition.Partition,
	d calendar.Date,
	t string,
) (bool, error) {

	b, err := uc.repo.FindConfirmed(ctx, p, d, t)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := uc.cancel(ctx, by, b); err != nil {
		return false, err
	}
	return true, nil
}
