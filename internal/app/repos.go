package app

import (
	"gorm.io/gorm"

	"github.com/bayanihan-ph/relief-backend/internal/data/repos/auth"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/beneficiary"
	documentation "github.com/bayanihan-ph/relief-backend/internal/data/repos/documentation"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/donor"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/event"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/qualification"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/registry"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type Repos struct {
	User          auth.UserRepo
	UserToken     auth.UserTokenRepo
	Barangay      registry.BarangayRepo
	Calamity      registry.CalamityRepo
	Beneficiary   beneficiary.BeneficiaryRepo
	Qualification qualification.QualificationRepo
	Donor         donor.DonorRepo
	Documentation documentation.DocumentationRepo
	Event         event.EventRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:          auth.NewUserRepo(db, log),
		UserToken:     auth.NewUserTokenRepo(db, log),
		Barangay:      registry.NewBarangayRepo(db, log),
		Calamity:      registry.NewCalamityRepo(db, log),
		Beneficiary:   beneficiary.NewBeneficiaryRepo(db, log),
		Qualification: qualification.NewQualificationRepo(db, log),
		Donor:         donor.NewDonorRepo(db, log),
		Documentation: documentation.NewDocumentationRepo(db, log),
		Event:         event.NewEventRepo(db, log),
	}
}
