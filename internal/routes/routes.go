package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/healthify-app/healthify-api/internal/audit"
	"github.com/healthify-app/healthify-api/internal/config"
	"github.com/healthify-app/healthify-api/internal/handlers"
	infraRepo "github.com/healthify-app/healthify-api/internal/infra/repository"
	"github.com/healthify-app/healthify-api/internal/mailer"
	"github.com/healthify-app/healthify-api/internal/middleware"
	"github.com/healthify-app/healthify-api/internal/models"
	"github.com/healthify-app/healthify-api/internal/ratelimit"
	"github.com/healthify-app/healthify-api/internal/storage"
	"github.com/healthify-app/healthify-api/internal/store"
	"github.com/healthify-app/healthify-api/internal/token"
	ucDoctor "github.com/healthify-app/healthify-api/internal/usecase/doctor"
)

type Deps struct {
	Mailer  mailer.Mailer
	Storage storage.Storage
	Limiter *ratelimit.Limiter
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	userStore := store.NewUserStore(db)
	doctorRepo := infraRepo.NewDoctorGormRepository(db)
	tokens := token.NewIssuer(cfg.JWTSecret)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — DOCTOR APPROVAL
	// ======================================================
	submitRequestUC := ucDoctor.NewSubmitRequest(
		doctorRepo,
		auditDispatcher,
	)

	decideUC := ucDoctor.NewDecide(
		doctorRepo,
		auditDispatcher,
	)

	listPendingUC := ucDoctor.NewListPending(
		doctorRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(
		userStore,
		tokens,
		deps.Mailer,
		deps.Limiter,
		auditDispatcher,
		cfg,
	)

	profileHandler := handlers.NewProfileHandler(
		userStore,
		deps.Storage,
		auditDispatcher,
	)

	doctorHandler := handlers.NewDoctorHandler(
		submitRequestUC,
		userStore,
		deps.Storage,
	)

	adminHandler := handlers.NewAdminHandler(
		listPendingUC,
		decideUC,
	)

	authGate := middleware.AuthMiddleware(tokens, cfg.IsProduction())

	// ======================================================
	// ROUTES
	// ======================================================
	api := r.Group("/healthify")
	{
		// ------------------------------
		// AUTH (public)
		// ------------------------------
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/verify-otp", authHandler.VerifyOTP)
			auth.POST("/login", authHandler.Login)
			auth.POST("/admin-login", authHandler.AdminLogin)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.POST("/logout", authHandler.Logout)

			// ------------------------------
			// AUTH (session required)
			// ------------------------------
			auth.GET("/profile", authGate, profileHandler.GetProfile)
			auth.PUT("/update-profile",
				authGate,
				middleware.RequireRoles(models.RolePatient, models.RoleDoctor, models.RoleAdmin),
				profileHandler.UpdateProfile,
			)
		}

		// ------------------------------
		// DOCTOR REQUESTS
		// ------------------------------
		doctor := api.Group("/doctor")
		doctor.Use(authGate, middleware.RequireRoles(models.RolePatient))
		{
			doctor.POST("/doctor-request", doctorHandler.SubmitRequest)
		}

		// ------------------------------
		// ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(authGate, middleware.RequireRoles(models.RoleAdmin))
		{
			admin.GET("/pending", adminHandler.ListPending)
			admin.PUT("/update-status/:doctorId", adminHandler.UpdateStatus)
		}
	}
}
