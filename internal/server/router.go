package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bayanihan-ph/relief-backend/internal/handlers"
	"github.com/bayanihan-ph/relief-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler          *handlers.AuthHandler
	AuthMiddleware       *middleware.AuthMiddleware
	RegistryHandler      *handlers.RegistryHandler
	IntakeHandler        *handlers.IntakeHandler
	BeneficiaryHandler   *handlers.BeneficiaryHandler
	ReleaseHandler       *handlers.ReleaseHandler
	RosterHandler        *handlers.RosterHandler
	DonorHandler         *handlers.DonorHandler
	DocumentationHandler *handlers.DocumentationHandler
	EventHandler         *handlers.EventHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/refresh", cfg.AuthHandler.Refresh)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/api")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.POST("/logout", cfg.AuthHandler.Logout)
	protected.POST("/password", cfg.AuthHandler.ChangePassword)

	// Barangays and their beneficiaries
	protected.POST("/barangays", cfg.RegistryHandler.CreateBarangay)
	protected.GET("/barangays", cfg.RegistryHandler.ListBarangays)
	protected.DELETE("/barangays/:id", cfg.RegistryHandler.DeleteBarangay)
	protected.GET("/barangays/:brgy/beneficiaries", cfg.BeneficiaryHandler.List)
	protected.GET("/barangays/:brgy/beneficiaries/:id", cfg.BeneficiaryHandler.Get)

	// Beneficiary maintenance
	protected.PUT("/beneficiaries/:id/family", cfg.BeneficiaryHandler.UpdateFamily)
	protected.POST("/beneficiaries/:id/qr", cfg.IntakeHandler.ReissueQR)

	// Intake wizard
	protected.POST("/intake/sessions", cfg.IntakeHandler.StartSession)
	protected.GET("/intake/sessions/:session", cfg.IntakeHandler.GetSession)
	protected.PUT("/intake/sessions/:session", cfg.IntakeHandler.SaveDraft)
	protected.POST("/intake/sessions/:session/advance", cfg.IntakeHandler.Advance)
	protected.POST("/intake/sessions/:session/retreat", cfg.IntakeHandler.Retreat)
	protected.POST("/intake/sessions/:session/submit", cfg.IntakeHandler.Submit)

	// Calamities, qualification, verification and release
	protected.POST("/calamities", cfg.RegistryHandler.CreateCalamity)
	protected.GET("/calamities", cfg.RegistryHandler.ListCalamities)
	protected.DELETE("/calamities/:id", cfg.RegistryHandler.DeleteCalamity)
	protected.POST("/calamities/:id/qualify", cfg.RegistryHandler.QualifyBeneficiary)
	protected.POST("/calamities/:id/verify", cfg.ReleaseHandler.Verify)
	protected.POST("/calamities/:id/release/:beneficiary", cfg.ReleaseHandler.Release)
	protected.GET("/calamities/:id/roster", cfg.RosterHandler.List)
	protected.GET("/calamities/:id/roster/print", cfg.RosterHandler.Print)

	// Donors
	protected.POST("/donors", cfg.DonorHandler.Create)
	protected.GET("/donors", cfg.DonorHandler.List)
	protected.GET("/donors/:id", cfg.DonorHandler.Get)
	protected.PUT("/donors/:id", cfg.DonorHandler.Update)
	protected.DELETE("/donors/:id", cfg.DonorHandler.Delete)

	// Documentation
	protected.POST("/documentation", cfg.DocumentationHandler.CreateFolder)
	protected.GET("/documentation", cfg.DocumentationHandler.ListFolders)
	protected.DELETE("/documentation/:folder", cfg.DocumentationHandler.DeleteFolder)
	protected.POST("/documentation/:folder/media", cfg.DocumentationHandler.UploadMedia)
	protected.GET("/documentation/:folder/media", cfg.DocumentationHandler.ListMedia)
	protected.DELETE("/documentation/media/:id", cfg.DocumentationHandler.DeleteMedia)

	// Activity feed
	protected.GET("/events/:day", cfg.EventHandler.ListByDay)

	return router
}
