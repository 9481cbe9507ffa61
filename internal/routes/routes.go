package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	"github.com/BruksfildServices01/barber-agenda/internal/config"
	"github.com/BruksfildServices01/barber-agenda/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/middleware"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
	"github.com/BruksfildServices01/barber-agenda/internal/storage"
	ucAccount "github.com/BruksfildServices01/barber-agenda/internal/usecase/account"
	ucAvailability "github.com/BruksfildServices01/barber-agenda/internal/usecase/availability"
	ucBarbershop "github.com/BruksfildServices01/barber-agenda/internal/usecase/barbershop"
	ucBooking "github.com/BruksfildServices01/barber-agenda/internal/usecase/booking"
	ucSlot "github.com/BruksfildServices01/barber-agenda/internal/usecase/slot"
)

// Deps are the process singletons. Locker and Storage may be nil.
type Deps struct {
	DB      *gorm.DB
	Config  *config.Config
	Log     *zap.Logger
	Clock   clock.Clock
	Locker  lock.Locker
	Storage storage.ObjectStore
	Audit   *audit.Dispatcher
}

// Services holds every use case, built once per process.
type Services struct {
	Accounts   *ucAccount.Service
	Shops      *ucBarbershop.Service
	Register   *ucBarbershop.RegisterBarbershop
	Logo       *ucBarbershop.UploadLogo
	Slots      *ucSlot.Store
	Resolver   *ucAvailability.Resolver
	Create     *ucBooking.CreateBooking
	Cancel     *ucBooking.CancelBooking
	Release    *ucBooking.ReleaseSlot
	List       *ucBooking.ListBookings
	AuditStore *audit.Store
}

func NewServices(d Deps) *Services {

	// ======================================================
	// INFRA
	// ======================================================
	slotRepo := infraRepo.NewSlotGormRepository(d.DB)
	bookingRepo := infraRepo.NewBookingGormRepository(d.DB)
	shopRepo := infraRepo.NewBarbershopGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	shops := ucBarbershop.NewService(shopRepo, d.Clock, d.Audit, d.Log)
	slots := ucSlot.NewStore(slotRepo, bookingRepo, d.Locker, d.Audit, d.Log)

	return &Services{
		Accounts: ucAccount.NewService(userRepo, shopRepo, d.Audit, d.Log),
		Shops:    shops,
		Register: ucBarbershop.NewRegisterBarbershop(shopRepo, userRepo, d.Clock, d.Audit, d.Log),
		Logo:     ucBarbershop.NewUploadLogo(shops, d.Storage),
		Slots:    slots,
		Resolver: ucAvailability.NewResolver(slots, bookingRepo, d.Clock),
		Create:   ucBooking.NewCreateBooking(bookingRepo, d.Locker, d.Clock, d.Audit, d.Log),
		Cancel:   ucBooking.NewCancelBooking(bookingRepo, d.Clock, d.Audit, d.Log),
		Release: ucBooking.NewReleaseSlot(
			slots,
			ucBooking.NewCancelBookingByDetails(bookingRepo, d.Clock, d.Audit, d.Log),
		),
		List:       ucBooking.NewListBookings(bookingRepo),
		AuditStore: audit.NewStore(d.DB),
	}
}

func RegisterRoutes(r *gin.Engine, d Deps, s *Services) {
	cfg := d.Config

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(cfg, s.Register, s.Accounts, d.Clock, d.Log)
	publicHandler := handlers.NewPublicHandler(s.Shops, s.Accounts, s.Resolver, s.Create, d.Clock, d.Log)
	meHandler := handlers.NewMeHandler(s.Accounts, s.Shops, s.List, s.Cancel, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(s.AuditStore, d.Clock, d.Log)
	barbershopHandler := handlers.NewBarbershopHandler(s.Shops, s.Accounts, d.Log)
	barberHandler := handlers.NewBarberHandler(handlers.BarberDeps{
		Accounts: s.Accounts,
		Slots:    s.Slots,
		Resolver: s.Resolver,
		List:     s.List,
		Release:  s.Release,
		Logo:     s.Logo,
		Clock:    d.Clock,
		Log:      d.Log,
	})

	// ======================================================
	// INFRA ROUTES
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.OptionalAuth(cfg, d.Clock))
		{
			publicAPI.GET("/:slug", publicHandler.GetBarbershop)
			publicAPI.GET("/:slug/calendar", publicHandler.Calendar)
			publicAPI.GET("/:slug/days/:day", publicHandler.Day)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.Auth(cfg, d.Clock))
		{
			secured.GET("", meHandler.Get)
			secured.PATCH("", meHandler.Update)
			secured.GET("/bookings", meHandler.Bookings)
			secured.POST("/bookings/:id/cancel", meHandler.CancelBooking)
			secured.GET("/audit-logs", middleware.RequireRole(models.RoleBarber), auditLogsHandler.List)
		}

		// ------------------------------
		// BARBER PANEL
		// ------------------------------
		barber := api.Group("/barber")
		barber.Use(middleware.Auth(cfg, d.Clock), middleware.RequireRole(models.RoleBarber))
		{
			barber.GET("/calendar", barberHandler.Calendar)
			barber.GET("/days/:day", barberHandler.Day)
			barber.POST("/days/:day/deactivate", barberHandler.DeactivateDay)
			barber.POST("/days/:day/restore", barberHandler.RestoreDay)
			barber.GET("/bookings", barberHandler.Bookings)
			barber.GET("/bookings/today", barberHandler.TodayBookings)
			barber.PATCH("/slots/:id", barberHandler.UpdateSlot)
			barber.POST("/slots/release", barberHandler.ReleaseSlot)
			barber.POST("/logo", barberHandler.UploadLogo)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.Auth(cfg, d.Clock), middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/barbershops", barbershopHandler.List)
			admin.GET("/barbershops/:id", barbershopHandler.Get)
			admin.PATCH("/barbershops/:id", barbershopHandler.Update)
			admin.DELETE("/barbershops/:id", barbershopHandler.Delete)
			admin.POST("/barbershops/:id/toggle-status", barbershopHandler.ToggleStatus)
		}
	}
}
