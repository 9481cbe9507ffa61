package booking

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/actor"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/booking"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/timegrid"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/logger"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	By          actor.Actor
	RequesterID uint

	Partition partition.Partition
	Date      calendar.Date
	Time      string

	Service       string
	CustomerName  string
	CustomerPhone string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	locker lock.Locker
	clock  clock.Clock
	audit  *audit.Dispatcher
	log    *zap.Logger
}

func NewCreateBooking(
	repo domain.Repository,
	locker lock.Locker,
	clk clock.Clock,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		locker: lock.OrNoop(locker),
		clock:  clk,
		audit:  audit,
		log:    logger.OrNop(log),
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute admits a booking or returns one of the business errors
// invalid_time, invalid_day, past_date or slot_taken. Same-day times that
// already elapsed are accepted; hiding them is up to the caller.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Input
	// --------------------------------------------------
	in.Time = strings.TrimSpace(in.Time)
	if !timegrid.ValidTime(in.Time) {
		return nil, uc.reject(in, "invalid_time")
	}
	if !in.Date.Valid() {
		return nil, uc.reject(in, "invalid_day")
	}

	// --------------------------------------------------
	// 2. Date only, never time of day
	// --------------------------------------------------
	if in.Date.Before(clock.Today(uc.clock)) {
		return nil, uc.reject(in, "past_date")
	}

	// --------------------------------------------------
	// 3. Admission
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, "booking:"+in.Partition.Key()+":"+in.Date.String()+":"+in.Time)
	if err != nil {
		return nil, fmt.Errorf("booking lock: %w", err)
	}
	defer unlock()

	taken, err := uc.repo.IsTaken(ctx, in.Partition, in.Date, in.Time)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, uc.reject(in, "slot_taken")
	}

	b := &models.Booking{
		BarbershopID:  in.Partition.Shop.Ptr(),
		BarberID:      in.Partition.Staff.Ptr(),
		Year:          in.Date.Year,
		Month:         in.Date.Month,
		Day:           in.Date.Day,
		Time:          in.Time,
		UserID:        in.RequesterID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Service:       domain.ServiceOrDefault(in.Service),
		Status:        domain.InitialStatus(),
	}

	// The unique index decides races the pre-check could not see.
	if err := uc.repo.Create(ctx, b); err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			return nil, uc.reject(in, "slot_taken")
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	// --------------------------------------------------
	// 4. Side effects
	// --------------------------------------------------
	metrics.BookingsCreated.Inc()

	uc.audit.Dispatch(audit.Event{
		BarbershopID: b.BarbershopID,
		UserID:       in.By.UserRef(),
		Action:       audit.ActionBookingCreated,
		Entity:       "booking",
		EntityID:     audit.U(b.ID),
		Metadata: map[string]any{
			"date":    in.Date.String(),
			"time":    b.Time,
			"service": b.Service,
		},
	})

	uc.log.Info("booking created",
		zap.Uint("booking_id", b.ID),
		zap.String("partition", in.Partition.Key()),
		zap.String("date", in.Date.String()),
		zap.String("time", b.Time),
	)

	return b, nil
}

func (uc *CreateBooking) reject(in CreateBookingInput, code string) error {
	metrics.BookingsRejected.WithLabelValues(code).Inc()

	uc.log.Warn("booking rejected",
		zap.String("reason", code),
		zap.String("partition", in.Partition.Key()),
		zap.String("date", in.Date.String()),
		zap.String("time", in.Time),
	)

	if code == "slot_taken" {
		uc.audit.Dispatch(audit.Event{
			BarbershopID: in.Partition.Shop.Ptr(),
			UserID:       in.By.UserRef(),
			Action:       audit.ActionBookingConflict,
			Entity:       "booking",
			Metadata:     map[string]any{"date": in.Date.String(), "time": in.Time},
		})
	}

	return httperr.ErrBusiness(code)
}
