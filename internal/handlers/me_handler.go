package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/domain/partition"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/account"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/barbershop"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/booking"
)

type MeHandler struct {
	accounts *account.Service
	shops    *barbershop.Service
	list     *booking.ListBookings
	cancel   *booking.CancelBooking
	log      *zap.Logger
}

func NewMeHandler(
	accounts *account.Service,
	shops *barbershop.Service,
	list *booking.ListBookings,
	cancel *booking.CancelBooking,
	log *zap.Logger,
) *MeHandler {
	return &MeHandler{
		accounts: accounts,
		shops:    shops,
		list:     list,
		cancel:   cancel,
		log:      log,
	}
}

// ======================================================
// PROFILE
// ======================================================

type UpdateMeRequest struct {
	Username     *string `json:"username"`
	BusinessName *string `json:"business_name"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`

	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *MeHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	by := middleware.ActorFrom(c)

	u, err := h.accounts.Get(ctx, by.UserID)
	if err != nil {
		fail(c, h.log, err, "failed_to_load_user")
		return
	}

	resp := gin.H{"user": userView(u)}
	if shopID, ok := partition.FromPtr(u.BarbershopID).Get(); ok {
		shop, err := h.shops.Get(ctx, shopID)
		if err != nil {
			fail(c, h.log, err, "failed_to_load_barbershop")
			return
		}
		resp["barbershop"] = shop
	}

	c.JSON(http.StatusOK, resp)
}

func (h *MeHandler) Update(c *gin.Context) {
	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	u, err := h.accounts.UpdateProfile(c.Request.Context(), middleware.ActorFrom(c), account.ProfilePatch{
		Username:        req.Username,
		BusinessName:    req.BusinessName,
		Phone:           req.Phone,
		Address:         req.Address,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		fail(c, h.log, err, "failed_to_update_profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userView(u)})
}

// ======================================================
// BOOKINGS
// ======================================================

func (h *MeHandler) Bookings(c *gin.Context) {
	out, err := h.list.ForUser(c.Request.Context(), middleware.ActorFrom(c).UserID)
	if err != nil {
		fail(c, h.log, err, "failed_to_list_bookings")
		return
	}
	httpresp.List(c, out)
}

// CancelBooking is open to the requester, staff of the booking's shop,
// and admins.
func (h *MeHandler) CancelBooking(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	by := middleware.ActorFrom(c)
	b, err := h.cancel.Execute(c.Request.Context(), booking.CancelBookingInput{
		By:        by,
		BookingID: id,
		Authorize: func(b *models.Booking) bool {
			return canCancel(by.UserID, by.IsAdmin(), by.WorksAt(partition.FromPtr(b.BarbershopID)), b)
		},
	})
	if err != nil {
		fail(c, h.log, err, "failed_to_cancel_booking")
		return
	}

	c.JSON(http.StatusOK, b)
}

func canCancel(userID uint, admin, staff bool, b *models.Booking) bool {
	return admin || staff || b.UserID == userID
}
