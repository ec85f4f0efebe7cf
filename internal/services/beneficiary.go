package services

import (
	"context"

	"github.com/google/uuid"

	beneficiaryrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/beneficiary"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/intake"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type BeneficiaryService interface {
	List(ctx context.Context, barangayID uuid.UUID) ([]*types.Beneficiary, error)
	Get(ctx context.Context, barangayID, id uuid.UUID) (*types.Beneficiary, error)
	// UpdateFamily replaces the household roster after running it through the
	// same row validation the intake wizard uses.
	UpdateFamily(ctx context.Context, id uuid.UUID, rows []intake.Row) (*types.Beneficiary, error)
}

type beneficiaryService struct {
	log  *logger.Logger
	repo beneficiaryrepo.BeneficiaryRepo
}

func NewBeneficiaryService(log *logger.Logger, repo beneficiaryrepo.BeneficiaryRepo) BeneficiaryService {
	serviceLog := log.With("service", "BeneficiaryService")
	return &beneficiaryService{log: serviceLog, repo: repo}
}

func (bs *beneficiaryService) List(ctx context.Context, barangayID uuid.UUID) ([]*types.Beneficiary, error) {
	return bs.repo.ListByBarangay(ctx, nil, barangayID)
}

func (bs *beneficiaryService) Get(ctx context.Context, barangayID, id uuid.UUID) (*types.Beneficiary, error) {
	return bs.repo.GetInBarangay(ctx, nil, barangayID, id)
}

func (bs *beneficiaryService) UpdateFamily(ctx context.Context, id uuid.UUID, rows []intake.Row) (*types.Beneficiary, error) {
	if err := intake.ValidateFamily(rows); err != nil {
		return nil, err
	}

	members := make([]types.FamilyMember, 0, len(rows))
	for _, row := range rows {
		if !row.HasData() {
			continue
		}
		members = append(members, types.FamilyMember{
			Name:        row.Name,
			Relation:    row.Relation,
			Age:         row.Age,
			Gender:      row.Gender,
			CivilStatus: row.CivilStatus,
			Education:   row.Education,
			Skills:      row.Skills,
			Remarks:     row.Remarks,
		})
	}
	membersJSON, err := familyJSON(members)
	if err != nil {
		return nil, err
	}

	if err := bs.repo.UpdateFamilyMembers(ctx, nil, id, membersJSON); err != nil {
		return nil, err
	}
	return bs.repo.GetByID(ctx, nil, id)
}
