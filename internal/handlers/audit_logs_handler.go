package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/httpresp"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	store *audit.Store
	clock clock.Clock
	log   *zap.Logger
}

func NewAuditLogsHandler(store *audit.Store, clk clock.Clock, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{store: store, clock: clk, log: log}
}

// List pages through the audit trail of the caller's own barbershop.
// from/to are YYYY-MM-DD in the shop's timezone, both inclusive.
func (h *AuditLogsHandler) List(c *gin.Context) {
	shopID, ok := middleware.ActorFrom(c).BarbershopID.Get()
	if !ok {
		httperr.FromError(c, httperr.ErrBusiness("no_shop_selected"), "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditLimit)))
	if limit <= 0 || limit > maxAuditLimit {
		limit = defaultAuditLimit
	}

	f := audit.Filter{
		BarbershopID: shopID,
		Action:       c.Query("action"),
		Entity:       c.Query("entity"),
		Page:         page,
		Limit:        limit,
	}

	loc := h.clock.Now().Location()
	if from, err := time.ParseInLocation("2006-01-02", c.Query("from"), loc); err == nil {
		f.From = &from
	}
	if to, err := time.ParseInLocation("2006-01-02", c.Query("to"), loc); err == nil {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}

	logs, total, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		fail(c, h.log, err, "audit_list_failed")
		return
	}

	httpresp.Page(c, logs, page, limit, total)
}
