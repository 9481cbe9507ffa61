package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/calendar"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/account"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/availability"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/barbershop"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	shops      *barbershop.Service
	accounts   *account.Service
	resolver   *availability.Resolver
	create     *booking.CreateBooking
	partitions partitionResolver
	clock      clock.Clock
	log        *zap.Logger
}

func NewPublicHandler(
	shops *barbershop.Service,
	accounts *account.Service,
	resolver *availability.Resolver,
	create *booking.CreateBooking,
	clk clock.Clock,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		shops:      shops,
		accounts:   accounts,
		resolver:   resolver,
		create:     create,
		partitions: partitionResolver{accounts: accounts},
		clock:      clk,
		log:        log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

// PublicCreateBookingRequest: month and year default to the current ones.
type PublicCreateBookingRequest struct {
	Day   looseString `json:"day"`
	Month looseString `json:"month"`
	Year  looseString `json:"year"`
	Time  string      `json:"time"`

	Service       string `json:"service"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

////////////////////////////////////////////////////////
// LOOKUP
////////////////////////////////////////////////////////

// shopPartition loads an active shop by :slug and resolves the partition
// selected by barber_id. Suspended shops look like missing ones.
func (h *PublicHandler) shopPartition(c *gin.Context) (*models.Barbershop, partition.Partition, bool) {
	ctx := c.Request.Context()

	shop, err := h.shops.GetBySlug(ctx, c.Param("slug"))
	if err == nil && !shop.Active {
		err = httperr.ErrBusiness("not_found")
	}
	if err != nil {
		fail(c, h.log, err, "failed_to_load_barbershop")
		return nil, partition.Partition{}, false
	}

	p, err := h.partitions.resolve(ctx, partition.Some(shop.ID), c.Query("barber_id"))
	if err != nil {
		fail(c, h.log, err, "failed_to_resolve_partition")
		return nil, partition.Partition{}, false
	}
	return shop, p, true
}

func (h *PublicHandler) GetBarbershop(c *gin.Context) {
	shop, _, ok := h.shopPartition(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       shop.ID,
		"name":     shop.Name,
		"slug":     shop.Slug,
		"phone":    shop.Phone,
		"address":  shop.Address,
		"logo_url": shop.LogoURL,
	})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Calendar is always the current month for clients.
func (h *PublicHandler) Calendar(c *gin.Context) {
	_, p, ok := h.shopPartition(c)
	if !ok {
		return
	}

	grid, err := h.resolver.BuildMonthGrid(c.Request.Context(), p, 0, 0)
	if err != nil {
		fail(c, h.log, err, "failed_to_build_calendar")
		return
	}
	c.JSON(http.StatusOK, grid)
}

func (h *PublicHandler) Day(c *gin.Context) {
	_, p, ok := h.shopPartition(c)
	if !ok {
		return
	}

	d, err := dayFromPath(c, clock.Today(h.clock))
	if err != nil {
		fail(c, h.log, err, "failed_to_parse_day")
		return
	}

	times, slots, err := h.resolver.OpenTimes(c.Request.Context(), p, d)
	if err != nil {
		fail(c, h.log, err, "failed_to_load_day")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  d.String(),
		"times": times,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	_, p, ok := h.shopPartition(c)
	if !ok {
		return
	}

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ctx := c.Request.Context()
	by := middleware.ActorFrom(c)

	d, err := calendar.ParseParts(string(req.Year), string(req.Month), string(req.Day), clock.Today(h.clock))
	if err != nil {
		fail(c, h.log, err, "failed_to_parse_day")
		return
	}

	requester, err := h.requester(ctx, by.UserID, by.IsAuthenticated())
	if err != nil {
		fail(c, h.log, err, "failed_to_resolve_requester")
		return
	}

	b, err := h.create.Execute(ctx, booking.CreateBookingInput{
		By:            by,
		RequesterID:   requester,
		Partition:     p,
		Date:          d,
		Time:          req.Time,
		Service:       req.Service,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		fail(c, h.log, err, "failed_to_create_booking")
		return
	}

	httpresp.Created(c, b)
}

// requester is the logged-in user, or the shared public client for
// anonymous bookings.
func (h *PublicHandler) requester(ctx context.Context, userID uint, authenticated bool) (uint, error) {
	if authenticated {
		return userID, nil
	}

	u, err := h.accounts.PublicClient(ctx)
	if err != nil {
		return 0, err
	}
	return u.ID, nil
}
