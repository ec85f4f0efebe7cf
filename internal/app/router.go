package app

import (
	"github.com/gin-gonic/gin"

	"github.com/bayanihan-ph/relief-backend/internal/server"
)

func wireRouter(handlers Handlers, mw Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:          handlers.Auth,
		AuthMiddleware:       mw.Auth,
		RegistryHandler:      handlers.Registry,
		IntakeHandler:        handlers.Intake,
		BeneficiaryHandler:   handlers.Beneficiary,
		ReleaseHandler:       handlers.Release,
		RosterHandler:        handlers.Roster,
		DonorHandler:         handlers.Donor,
		DocumentationHandler: handlers.Documentation,
		EventHandler:         handlers.Event,
	})
}
