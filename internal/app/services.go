package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
	"github.com/bayanihan-ph/relief-backend/internal/qr"
	"github.com/bayanihan-ph/relief-backend/internal/services"
)

type Services struct {
	Auth          services.AuthService
	Registry      services.RegistryService
	Intake        services.IntakeService
	Beneficiary   services.BeneficiaryService
	Release       services.ReleaseService
	Roster        services.RosterService
	Donor         services.DonorService
	Documentation services.DocumentationService
	Event         services.EventService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, repos Repos, clients Clients) (Services, error) {
	log.Info("Wiring services...")

	renderer, err := qr.NewRenderer(cfg.QRFontPath)
	if err != nil {
		return Services{}, fmt.Errorf("init qr renderer: %w", err)
	}

	return Services{
		Auth: services.NewAuthService(db, log, repos.User, repos.UserToken),
		Registry: services.NewRegistryService(db, log,
			repos.Barangay, repos.Calamity, repos.Beneficiary, repos.Qualification, repos.Event),
		Intake: services.NewIntakeService(db, log, clients.Store,
			repos.Barangay, repos.Beneficiary, repos.Event, clients.Bucket, renderer),
		Beneficiary: services.NewBeneficiaryService(log, repos.Beneficiary),
		Release: services.NewReleaseService(log,
			repos.Barangay, repos.Calamity, repos.Beneficiary, repos.Qualification, repos.Event, clients.Bucket, clients.Store),
		Roster: services.NewRosterService(log,
			repos.Calamity, repos.Qualification, repos.Beneficiary, clients.Store),
		Donor:         services.NewDonorService(db, log, repos.Donor, repos.Event),
		Documentation: services.NewDocumentationService(db, log, repos.Documentation, clients.Bucket),
		Event:         services.NewEventService(log, repos.Event),
	}, nil
}
