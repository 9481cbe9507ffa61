package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/httperr"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/account"
	"github.com/BruksfildServices01/barber-agenda/internal/usecase/barbershop"
)

type AuthHandler struct {
	config   *config.Config
	register *barbershop.RegisterBarbershop
	accounts *account.Service
	clock    clock.Clock
	log      *zap.Logger
}

func NewAuthHandler(
	cfg *config.Config,
	register *barbershop.RegisterBarbershop,
	accounts *account.Service,
	clk clock.Clock,
	log *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		config:   cfg,
		register: register,
		accounts: accounts,
		clock:    clk,
		log:      log,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	BarbershopName string `json:"barbershop_name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Address        string `json:"address"`

	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=4"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.register.Execute(c.Request.Context(), barbershop.RegisterBarbershopInput{
		Name:     req.BarbershopName,
		Phone:    req.Phone,
		Address:  req.Address,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		fail(c, h.log, err, "failed_to_register")
		return
	}

	token, err := middleware.IssueToken(h.config, out.Owner, h.clock.Now())
	if err != nil {
		fail(c, h.log, err, "failed_to_generate_token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":       userView(out.Owner),
		"barbershop": out.Barbershop,
		"token":      token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	u, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, h.log, err, "failed_to_login")
		return
	}

	token, err := middleware.IssueToken(h.config, u, h.clock.Now())
	if err != nil {
		fail(c, h.log, err, "failed_to_generate_token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  userView(u),
		"token": token,
	})
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":            u.ID,
		"username":      u.Username,
		"role":          u.Role,
		"business_name": u.BusinessName,
		"phone":         u.Phone,
		"barbershop_id": u.BarbershopID,
	}
}
