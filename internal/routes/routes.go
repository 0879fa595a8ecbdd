package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// Deps are the singletons the API is built from. Redis and Clock are
// optional.
type Deps struct {
	Config   *config.Config
	Log      *slog.Logger
	Repo     domain.Repository
	Schedule domain.ScheduleStore
	Catalog  domain.CatalogStore
	Audit    *audit.Dispatcher
	AuditLog audit.Reader
	Redis    *redis.Client
	Clock    timezone.Clock
	Ready    map[string]handlers.ReadyFunc
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(d.Log),
		middleware.CORSMiddleware(),
	)

	clock := d.Clock
	if clock == nil {
		clock = timezone.SystemClock
	}

	settings := ucAppointment.Settings{
		DefaultTimezone:            d.Config.DefaultTimezone,
		DefaultSlotIntervalMinutes: d.Config.DefaultSlotIntervalMinutes,
		DefaultMinLeadMinutes:      d.Config.DefaultMinLeadMinutes,
	}

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(d.Repo, settings, clock)
	commitUC := ucAppointment.NewCommitAppointment(d.Repo, d.Audit, settings, clock)
	statusUC := ucAppointment.NewChangeStatus(d.Repo, d.Audit, settings, clock)
	listUC := ucAppointment.NewListAppointments(d.Repo, settings)

	// ======================================================
	// HANDLERS
	// ======================================================
	healthHandler := handlers.NewHealthHandler(d.Ready, d.Log)
	publicHandler := handlers.NewPublicHandler(d.Repo, availabilityUC, commitUC, d.Log)
	appointmentHandler := handlers.NewAppointmentHandler(availabilityUC, commitUC, statusUC, listUC, d.Log)
	scheduleHandler := handlers.NewScheduleHandler(d.Repo, d.Schedule, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditLog, d.Log)
	salonHandler := handlers.NewSalonHandler(d.Repo, d.Catalog, d.Audit, d.Log)
	serviceHandler := handlers.NewServiceHandler(d.Catalog, d.Audit, d.Log)
	staffHandler := handlers.NewStaffHandler(d.Catalog, d.Audit, d.Log)
	customerHandler := handlers.NewCustomerHandler(d.Catalog, d.Audit, d.Log)

	limiter := middleware.NewRateLimiter(d.Redis, d.Config.RateLimitPerMinute, time.Minute, d.Log)

	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(limiter.Middleware())
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/appointments", publicHandler.CreateAppointment)
		}

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(middleware.AuthMiddleware(d.Config.JWTSecret))
		{
			secured.GET("", salonHandler.GetMe)
			secured.GET("/salon", salonHandler.GetSalon)
			secured.PATCH("/salon", salonHandler.UpdateSalon)

			// ------------------------------
			// CATALOG
			// ------------------------------
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)

			secured.GET("/staff", staffHandler.List)
			secured.POST("/staff", staffHandler.Create)
			secured.PUT("/staff/:id/services", staffHandler.SetServices)

			secured.GET("/customers", customerHandler.List)
			secured.POST("/customers", customerHandler.Create)

			// ------------------------------
			// CALENDAR
			// ------------------------------
			secured.GET("/availability", appointmentHandler.Availability)

			secured.GET("/business-hours", scheduleHandler.GetBusinessHours)
			secured.PUT("/business-hours", scheduleHandler.UpdateBusinessHours)

			secured.GET("/staff/:id/shift-patterns", scheduleHandler.GetShiftPatterns)
			secured.PUT("/staff/:id/shift-patterns", scheduleHandler.UpdateShiftPatterns)
			secured.PUT("/staff/:id/shift-overrides/:date", scheduleHandler.PutShiftOverride)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/no-show", appointmentHandler.NoShow)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
