package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/massagehub/booking-api/internal/audit"
	"github.com/massagehub/booking-api/internal/auth"
	"github.com/massagehub/booking-api/internal/config"
	"github.com/massagehub/booking-api/internal/handlers"
	infraRepo "github.com/massagehub/booking-api/internal/infra/repository"
	"github.com/massagehub/booking-api/internal/mail"
	"github.com/massagehub/booking-api/internal/middleware"
	ucBooking "github.com/massagehub/booking-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	blacklist auth.Blacklist,
	mailer mail.Mailer,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	issuer := auth.NewTokenIssuer(cfg)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	createAppointmentUC := ucBooking.NewCreateAppointment(bookingRepo, auditDispatcher)
	updateAppointmentUC := ucBooking.NewUpdateAppointment(bookingRepo, auditDispatcher)
	deleteAppointmentUC := ucBooking.NewDeleteAppointment(bookingRepo, auditDispatcher)
	listAppointmentsUC := ucBooking.NewListAppointments(bookingRepo)
	getAppointmentUC := ucBooking.NewGetAppointment(bookingRepo)
	deleteShopUC := ucBooking.NewDeleteShop(bookingRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, issuer, blacklist, mailer)
	shopHandler := handlers.NewShopHandler(db, cfg, deleteShopUC, auditDispatcher)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsUC,
		getAppointmentUC,
	)

	authRequired := middleware.AuthMiddleware(issuer, blacklist, db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api/v1")
	{
		// ------------------------------
		// SHOPS (public reads)
		// ------------------------------
		api.GET("/shops", shopHandler.List)
		api.GET("/shops/:id", shopHandler.Get)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/forgotpassword", authHandler.ForgotPassword)
		api.PUT("/auth/resetpassword/:token", authHandler.ResetPassword)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(authRequired)
		{
			secured.GET("/auth/me", authHandler.GetMe)
			secured.GET("/auth/logout", authHandler.Logout)

			secured.POST("/shops", shopHandler.Create)
			secured.PUT("/shops/:id", shopHandler.Update)
			secured.DELETE("/shops/:id", shopHandler.Delete)

			// nested create: shop id from the path
			secured.POST("/shops/:id/appointments", appointmentHandler.Create)

			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
		}
	}
}
