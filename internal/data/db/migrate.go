package db

import (
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(

		// =========================
		// Identity + auth
		// =========================
		&types.User{},
		&types.UserToken{},

		// =========================
		// Registry containers
		// =========================
		&types.Barangay{},
		&types.Calamity{},

		// =========================
		// Beneficiaries + qualification
		// =========================
		&types.Beneficiary{},
		&types.QualificationRecord{},

		// =========================
		// Donors, documentation, activity feed
		// =========================
		&types.Donor{},
		&types.DocumentationFolder{},
		&types.MediaFile{},
		&types.EventLog{},
	)
}
