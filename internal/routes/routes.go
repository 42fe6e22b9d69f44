package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alexisallendez04/appBarberos-sub001/internal/audit"
	"github.com/alexisallendez04/appBarberos-sub001/internal/config"
	"github.com/alexisallendez04/appBarberos-sub001/internal/handlers"
	"github.com/alexisallendez04/appBarberos-sub001/internal/infra/cache"
	infraRepo "github.com/alexisallendez04/appBarberos-sub001/internal/infra/repository"
	"github.com/alexisallendez04/appBarberos-sub001/internal/middleware"
	ucAppointment "github.com/alexisallendez04/appBarberos-sub001/internal/usecase/appointment"
	ucBooking "github.com/alexisallendez04/appBarberos-sub001/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	repo := infraRepo.NewBookingGormRepository(db)
	availCache := cache.NewAvailabilityCache(rdb)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(repo, availCache)
	reserveUC := ucBooking.NewReserve(repo, availCache, auditDispatcher)
	cancelByCodeUC := ucBooking.NewCancelByCode(repo, availCache, auditDispatcher)

	listUC := ucAppointment.NewListAppointments(repo)
	transitionsUC := ucAppointment.NewTransitions(repo, availCache, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, reserveUC, cancelByCodeUC)
	appointmentHandler := handlers.NewAppointmentHandler(listUC, transitionsUC)

	workingHoursHandler := handlers.NewWorkingHoursHandler(db, auditDispatcher)
	specialDayHandler := handlers.NewSpecialDayHandler(db, availCache, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	barberConfigHandler := handlers.NewBarberConfigHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// API PÚBLICA (formulario de reservas)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/barbers/:barberId/services", publicHandler.ListServices)
			publicAPI.GET("/barbers/:barberId/availability", publicHandler.Availability)
			publicAPI.POST("/barbers/:barberId/appointments", publicHandler.Book)
			publicAPI.POST("/appointments/cancel", publicHandler.Cancel)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA (panel del barbero)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me", meHandler.UpdateMe)
			secured.GET("/me/clients", meHandler.ListClients)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)

			secured.GET("/me/working-hours", workingHoursHandler.Get)
			secured.PUT("/me/working-hours", workingHoursHandler.Update)

			secured.GET("/me/special-days", specialDayHandler.List)
			secured.POST("/me/special-days", specialDayHandler.Create)
			secured.DELETE("/me/special-days/:id", specialDayHandler.Delete)

			secured.GET("/me/config", barberConfigHandler.Get)
			secured.PUT("/me/config", barberConfigHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.ListByDate)
			secured.GET("/me/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/me/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/me/appointments/:id/start", appointmentHandler.Start)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/me/appointments/:id/no-show", appointmentHandler.NoShow)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
