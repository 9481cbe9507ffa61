package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/account"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/availability"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/barbershop"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/booking"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/slot"
)

const maxLogoBytes = 5 << 20

// ======================================================
// HANDLER
// ======================================================

// BarberHandler is the staff panel. Every route works on the caller's own
// barbershop; barber_id narrows it to one barber's agenda.
type BarberHandler struct {
	slots      *slot.Store
	resolver   *availability.Resolver
	list       *booking.ListBookings
	release    *booking.ReleaseSlot
	logo       *barbershop.UploadLogo
	partitions partitionResolver
	clock      clock.Clock
	log        *zap.Logger
}

type BarberDeps struct {
	Accounts *account.Service
	Slots    *slot.Store
	Resolver *availability.Resolver
	List     *booking.ListBookings
	Release  *booking.ReleaseSlot
	Logo     *barbershop.UploadLogo
	Clock    clock.Clock
	Log      *zap.Logger
}

func NewBarberHandler(d BarberDeps) *BarberHandler {
	return &BarberHandler{
		slots:      d.Slots,
		resolver:   d.Resolver,
		list:       d.List,
		release:    d.Release,
		logo:       d.Logo,
		partitions: partitionResolver{accounts: d.Accounts},
		clock:      d.Clock,
		log:        d.Log,
	}
}

func (h *BarberHandler) scope(c *gin.Context) (partition.Partition, bool) {
	p, err := h.partitions.resolve(c.Request.Context(), middleware.ActorFrom(c).BarbershopID, c.Query("barber_id"))
	if err != nil {
		fail(c, h.log, err, "failed_to_resolve_partition")
		return partition.Partition{}, false
	}
	return p, true
}

// ======================================================
// AGENDA
// ======================================================

func (h *BarberHandler) Calendar(c *gin.Context) {
	p, ok := h.scope(c)
	if !ok {
		return
	}

	year, err := queryInt(c, "year")
	if err != nil {
		fail(c, h.log, err, "")
		return
	}
	month, err := queryInt(c, "month")
	if err != nil {
		fail(c, h.log, err, "")
		return
	}

	grid, err := h.resolver.BuildMonthGrid(c.Request.Context(), p, year, month)
	if err != nil {
		fail(c, h.log, err, "failed_to_build_calendar")
		return
	}
	c.JSON(http.StatusOK, grid)
}

// Day shows every slot, inactive and past ones included, plus the
// bookings holding them.
func (h *BarberHandler) Day(c *gin.Context) {
	p, ok := h.scope(c)
	if !ok {
		return
	}

	d, err := dayFromPath(c, clock.Today(h.clock))
	if err != nil {
		fail(c, h.log, err, "")
		return
	}

	ctx := c.Request.Context()
	slots, err := h.resolver.ResolveDay(ctx, p, d)
	if err != nil {
		fail(c, h.log, err, "failed_to_load_day")
		return
	}
	bookings, err := h.list.ForDay(ctx, p, d)
	if err != nil {
		fail(c, h.log, err, "failed_to_list_bookings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":     d.String(),
		"slots":    slots,
		"bookings": bookings,
	})
}

func (h *BarberHandler) Bookings(c *gin.Context) {
	p, ok := h.scope(c)
	if !ok {
		return
	}

	out, err := h.list.ForPartition(c.Request.Context(), p)
	if err != nil {
		fail(c, h.log, err, "failed_to_list_bookings")
		return
	}
	httpresp.List(c, out)
}

func (h *BarberHandler) TodayBookings(c *gin.Context) {
	p, ok := h.scope(c)
	if !ok {
		return
	}

	out, err := h.list.ForDay(c.Request.Context(), p, clock.Today(h.clock))
	if err != nil {
		fail(c, h.log, err, "failed_to_list_bookings")
		return
	}
	httpresp.List(c, out)
}

// ======================================================
// SLOTS
// ======================================================

type UpdateSlotRequest struct {
	Time   *string `json:"time"`
	Active *bool   `json:"active"`
}

type ReleaseSlotRequest struct {
	SlotID uint `json:"slot_id" binding:"required"`
}

func (h *BarberHandler) UpdateSlot(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ctx := c.Request.Context()
	by := middleware.ActorFrom(c)

	current, err := h.slots.GetSlot(ctx, id)
	if err != nil {
		fail(c, h.log, err, "failed_to_load_slot")
		return
	}
	if !by.WorksAt(partition.FromPtr(current.BarbershopID)) {
		httperr.FromError(c, httperr.ErrBusiness("not_allowed"), "")
		return
	}

	updated, err := h.slots.UpdateSlot(ctx, by, id, slot.SlotPatch{Time: req.Time, Active: req.Active})
	if err != nil {
		fail(c, h.log, err, "failed_to_update_slot")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BarberHandler) ReleaseSlot(c *gin.Context) {
	p, ok := h.scope(c)
	if !ok {
		return
	}

	var req ReleaseSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	cancelled, err := h.release.Execute(c.Request.Context(), middleware.ActorFrom(c), p, req.SlotID)
	if err != nil {
		fail(c, h.log, err, "failed_to_release_slot")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled_booking": cancelled})
}

// ======================================================
// DAYS
// ======================================================

func (h *BarberHandler) DeactivateDay(c *gin.Context) {
	h.setDay(c, false)
}

func (h *BarberHandler) RestoreDay(c *gin.Context) {
	h.setDay(c, true)
}

func (h *BarberHandler) setDay(c *gin.Context, active bool) {
	p, ok := h.scope(c)
	if !ok {
		return
	}

	d, err := dayFromPath(c, clock.Today(h.clock))
	if err != nil {
		fail(c, h.log, err, "")
		return
	}

	ctx := c.Request.Context()
	by := middleware.ActorFrom(c)
	if active {
		err = h.slots.RestoreDay(ctx, by, p, d)
	} else {
		err = h.slots.SetDayActive(ctx, by, p, d, false)
	}
	if err != nil {
		fail(c, h.log, err, "failed_to_update_day")
		return
	}

	slots, err := h.resolver.ResolveDay(ctx, p, d)
	if err != nil {
		fail(c, h.log, err, "failed_to_load_day")
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": d.String(), "slots": slots})
}

// ======================================================
// LOGO
// ======================================================

func (h *BarberHandler) UploadLogo(c *gin.Context) {
	by := middleware.ActorFrom(c)
	shopID, ok := by.BarbershopID.Get()
	if !ok {
		httperr.FromError(c, httperr.ErrBusiness("no_shop_selected"), "")
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxLogoBytes)
	fh, err := c.FormFile("logo")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Envie o arquivo no campo logo.")
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.log, err, "failed_to_read_upload")
		return
	}
	defer f.Close()

	shop, err := h.logo.Execute(c.Request.Context(), by, shopID, f)
	if err != nil {
		fail(c, h.log, err, "failed_to_upload_logo")
		return
	}
	c.JSON(http.StatusOK, shop)
}
