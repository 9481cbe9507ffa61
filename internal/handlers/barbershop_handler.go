package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/account"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/barbershop"
)

// BarbershopHandler is the admin tenant console.
type BarbershopHandler struct {
	shops    *barbershop.Service
	accounts *account.Service
	log      *zap.Logger
}

func NewBarbershopHandler(shops *barbershop.Service, accounts *account.Service, log *zap.Logger) *BarbershopHandler {
	return &BarbershopHandler{shops: shops, accounts: accounts, log: log}
}

// UpdateBarbershopRequest edits the shop and, optionally, the login of
// its main barber.
type UpdateBarbershopRequest struct {
	Name    *string `json:"name"`
	Slug    *string `json:"slug"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`

	Username *string `json:"username"`
	Password *string `json:"password"`
}

func (h *BarbershopHandler) List(c *gin.Context) {
	out, err := h.shops.ListWithStats(c.Request.Context())
	if err != nil {
		fail(c, h.log, err, "failed_to_list_barbershops")
		return
	}
	httpresp.List(c, out)
}

func (h *BarbershopHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	shop, err := h.shops.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, err, "failed_to_get_barbershop")
		return
	}
	httpresp.OK(c, shop)
}

func (h *BarbershopHandler) Update(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBarbershopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	ctx := c.Request.Context()
	shop, err := h.shops.Update(ctx, middleware.ActorFrom(c), id, barbershop.Patch{
		Name:    req.Name,
		Slug:    req.Slug,
		Phone:   req.Phone,
		Address: req.Address,
		Active:  req.Active,
	})
	if err != nil {
		fail(c, h.log, err, "failed_to_update_barbershop")
		return
	}

	resp := gin.H{"barbershop": shop}
	if req.Username != nil || req.Password != nil {
		u, err := h.accounts.AdminUpdateCredentials(ctx, shop.ID, req.Username, req.Password)
		if err != nil {
			fail(c, h.log, err, "failed_to_update_credentials")
			return
		}
		resp["user"] = userView(u)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BarbershopHandler) ToggleStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	shop, err := h.shops.ToggleStatus(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		fail(c, h.log, err, "failed_to_toggle_barbershop")
		return
	}
	httpresp.OK(c, shop)
}

// Delete removes the shop with its users, slots, bookings and audit rows.
func (h *BarbershopHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.shops.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		fail(c, h.log, err, "failed_to_delete_barbershop")
		return
	}
	c.Status(http.StatusNoContent)
}
