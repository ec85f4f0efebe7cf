package app

import (
	"github.com/bayanihan-ph/relief-backend/internal/handlers"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Registry      *handlers.RegistryHandler
	Intake        *handlers.IntakeHandler
	Beneficiary   *handlers.BeneficiaryHandler
	Release       *handlers.ReleaseHandler
	Roster        *handlers.RosterHandler
	Donor         *handlers.DonorHandler
	Documentation *handlers.DocumentationHandler
	Event         *handlers.EventHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:          handlers.NewAuthHandler(services.Auth),
		Registry:      handlers.NewRegistryHandler(services.Registry),
		Intake:        handlers.NewIntakeHandler(services.Intake),
		Beneficiary:   handlers.NewBeneficiaryHandler(services.Beneficiary, services.Registry),
		Release:       handlers.NewReleaseHandler(services.Release),
		Roster:        handlers.NewRosterHandler(services.Roster),
		Donor:         handlers.NewDonorHandler(services.Donor),
		Documentation: handlers.NewDocumentationHandler(services.Documentation),
		Event:         handlers.NewEventHandler(services.Event),
	}
}
