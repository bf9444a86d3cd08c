package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	"github.com/BruksfildServices01/barbershop-manager/internal/config"
	"github.com/BruksfildServices01/barbershop-manager/internal/handlers"
	infraRepo "github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/storage"
	"github.com/BruksfildServices01/barbershop-manager/internal/middleware"
	"github.com/BruksfildServices01/barbershop-manager/internal/notify"
	ucAppointment "github.com/BruksfildServices01/barbershop-manager/internal/usecase/appointment"
	ucReport "github.com/BruksfildServices01/barbershop-manager/internal/usecase/report"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log *slog.Logger,
	auditSink audit.Sink,
	notifier notify.Notifier,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.CORSMiddleware(),
		middleware.RequestID(),
		middleware.AccessLog(log),
	)

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	var uploader storage.Uploader
	if cfg.StorageEnabled() {
		uploader = storage.NewS3Uploader(cfg)
	}

	var publicLimit gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Error("invalid REDIS_URL, rate limit disabled", "error", err)
		} else {
			limiter := middleware.NewRateLimiter(
				redis.NewClient(opts),
				cfg.PublicRateLimit,
				time.Minute,
				"rl:public",
				log,
			)
			publicLimit = limiter.Middleware()
		}
	}

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditSink, notifier)
	updateAppointmentUC := ucAppointment.NewUpdateAppointment(appointmentRepo, auditSink)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, auditSink)
	completeAppointmentUC := ucAppointment.NewCompleteAppointment(appointmentRepo, auditSink)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditSink)
	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)
	availabilityUC := ucAppointment.NewGetAvailability(appointmentRepo)

	// ======================================================
	// USE CASES: REPORTS
	// ======================================================
	dashboardUC := ucReport.NewGetDashboard(appointmentRepo)
	reportUC := ucReport.NewGetReport(appointmentRepo)
	exportUC := ucReport.NewExportReport(appointmentRepo)
	employeePortalUC := ucReport.NewGetEmployeePortal(appointmentRepo)
	clientPortalUC := ucReport.NewGetClientPortal(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	barbershopHandler := handlers.NewBarbershopHandler(db, uploader, auditSink, log)

	serviceHandler := handlers.NewServiceHandler(db, auditSink)
	clientHandler := handlers.NewClientHandler(db, appointmentRepo, auditSink)
	employeeHandler := handlers.NewEmployeeHandler(db, auditSink)
	workingHoursHandler := handlers.NewWorkingHoursHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		completeAppointmentUC,
		cancelAppointmentUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
		availabilityUC,
	)

	reportHandler := handlers.NewReportHandler(dashboardUC, reportUC, exportUC, employeePortalUC)
	clientPortalHandler := handlers.NewClientPortalHandler(clientPortalUC, createAppointmentUC, cancelAppointmentUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(appointmentRepo, createAppointmentUC, availabilityUC)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PÚBLICA
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/shop", publicHandler.Shop)
			publicAPI.GET("/services", serviceHandler.ListActive)
			publicAPI.GET("/employees", employeeHandler.ListBarbers)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/appointments", publicLimit, publicHandler.CreateAppointment)
		}

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))

		// ------------------------------
		// FUNCIONÁRIO
		// ------------------------------
		me := secured.Group("/me")
		{
			me.GET("", meHandler.GetMe)

			staff := me.Group("")
			staff.Use(middleware.RequireEmployee())

			staff.GET("/portal", reportHandler.EmployeePortal)

			staff.GET("/appointments", appointmentHandler.ListMineByDate)
			staff.GET("/appointments/month", appointmentHandler.ListMineByMonth)
			staff.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			staff.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			staff.GET("/working-hours", workingHoursHandler.Get)
			staff.PUT("/working-hours", workingHoursHandler.Update)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := secured.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			admin.GET("/dashboard", reportHandler.Dashboard)
			admin.GET("/reports", reportHandler.Report)
			admin.GET("/reports/export", reportHandler.Export)

			admin.GET("/clients", clientHandler.List)
			admin.POST("/clients", clientHandler.Create)
			admin.GET("/clients/:id", clientHandler.Get)
			admin.PATCH("/clients/:id", clientHandler.Update)
			admin.DELETE("/clients/:id", clientHandler.Delete)
			admin.PATCH("/clients/:id/loyalty", clientHandler.SetLoyalty)
			admin.POST("/clients/:id/loyalty/reset", clientHandler.ResetLoyalty)
			admin.GET("/clients/:id/appointments/future", clientHandler.FutureAppointments)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.GET("/employees", employeeHandler.List)
			admin.POST("/employees", employeeHandler.Create)
			admin.PATCH("/employees/:id", employeeHandler.Update)
			admin.DELETE("/employees/:id", employeeHandler.Delete)

			admin.GET("/appointments", appointmentHandler.ListByDate)
			admin.GET("/appointments/month", appointmentHandler.ListByMonth)
			admin.GET("/appointments/availability", appointmentHandler.Availability)
			admin.POST("/appointments", appointmentHandler.Create)
			admin.PATCH("/appointments/:id", appointmentHandler.Update)
			admin.DELETE("/appointments/:id", appointmentHandler.Delete)
			admin.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			admin.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)

			admin.GET("/barbershop", barbershopHandler.Get)
			admin.PATCH("/barbershop", barbershopHandler.Update)
			admin.POST("/barbershop/logo", barbershopHandler.UploadLogo)
			admin.POST("/barbershop/banner", barbershopHandler.UploadBanner)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}

		// ------------------------------
		// PORTAL DO CLIENTE
		// ------------------------------
		client := secured.Group("/client")
		client.Use(middleware.RequireClient())
		{
			client.GET("/portal", clientPortalHandler.Portal)
			client.POST("/appointments", clientPortalHandler.CreateAppointment)
			client.PATCH("/appointments/:id/cancel", clientPortalHandler.Cancel)
		}
	}
}
