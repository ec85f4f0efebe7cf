package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	donorrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/donor"
	eventrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/event"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type DonorInput struct {
	FirstName     string   `json:"first_name"`
	LastName      string   `json:"last_name"`
	Email         string   `json:"email"`
	Mobile        string   `json:"mobile"`
	Address       string   `json:"address"`
	DonationTypes []string `json:"donation_types"`
}

type DonorService interface {
	Create(ctx context.Context, in DonorInput) (*types.Donor, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Donor, error)
	List(ctx context.Context) ([]*types.Donor, error)
	Update(ctx context.Context, id uuid.UUID, in DonorInput) (*types.Donor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type donorService struct {
	db        *gorm.DB
	log       *logger.Logger
	donorRepo donorrepo.DonorRepo
	eventRepo eventrepo.EventRepo
}

func NewDonorService(db *gorm.DB, log *logger.Logger, donorRepo donorrepo.DonorRepo, eventRepo eventrepo.EventRepo) DonorService {
	serviceLog := log.With("service", "DonorService")
	return &donorService{db: db, log: serviceLog, donorRepo: donorRepo, eventRepo: eventRepo}
}

func validateDonor(in DonorInput) error {
	verr := types.NewValidationError()
	if strings.TrimSpace(in.FirstName) == "" {
		verr.Add("first_name", "required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		verr.Add("last_name", "required")
	}
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		verr.Add("email", "not a valid email address")
	}
	return verr.OrNil()
}

func (ds *donorService) Create(ctx context.Context, in DonorInput) (*types.Donor, error) {
	if err := validateDonor(in); err != nil {
		return nil, err
	}

	record := &types.Donor{
		ID:            uuid.New(),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		Email:         strings.ToLower(strings.TrimSpace(in.Email)),
		Mobile:        in.Mobile,
		Address:       in.Address,
		DonationTypes: types.TagsJSON(in.DonationTypes),
	}

	if err := ds.withTx(ctx, func(tx *gorm.DB) error {
		exists, exErr := ds.donorRepo.Exists(ctx, tx, record.Email, record.FirstName, record.LastName)
		if exErr != nil {
			return exErr
		}
		if exists {
			return types.ErrDuplicate
		}
		_, cErr := ds.donorRepo.Create(ctx, tx, []*types.Donor{record})
		return cErr
	}); err != nil {
		return nil, err
	}

	if err := ds.eventRepo.Append(ctx, nil,
		fmt.Sprintf("Added donor %s %s", record.FirstName, record.LastName),
		time.Now().UTC()); err != nil {
		ds.log.Warn("failed to append donor event", "error", err)
	}
	return record, nil
}

func (ds *donorService) Get(ctx context.Context, id uuid.UUID) (*types.Donor, error) {
	return ds.donorRepo.GetByID(ctx, nil, id)
}

func (ds *donorService) List(ctx context.Context) ([]*types.Donor, error) {
	return ds.donorRepo.List(ctx, nil)
}

func (ds *donorService) Update(ctx context.Context, id uuid.UUID, in DonorInput) (*types.Donor, error) {
	if err := validateDonor(in); err != nil {
		return nil, err
	}
	record, err := ds.donorRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	record.FirstName = strings.TrimSpace(in.FirstName)
	record.LastName = strings.TrimSpace(in.LastName)
	record.Email = strings.ToLower(strings.TrimSpace(in.Email))
	record.Mobile = in.Mobile
	record.Address = in.Address
	record.DonationTypes = types.TagsJSON(in.DonationTypes)

	if err := ds.donorRepo.Update(ctx, nil, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (ds *donorService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := ds.donorRepo.GetByID(ctx, nil, id); err != nil {
		return err
	}
	return ds.donorRepo.Delete(ctx, nil, id)
}

func (ds *donorService) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if ds.db == nil {
		return fn(nil)
	}
	return ds.db.WithContext(ctx).Transaction(fn)
}
