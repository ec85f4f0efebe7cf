package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bayanihan-ph/relief-backend/internal/clients/gcs"
	"github.com/bayanihan-ph/relief-backend/internal/clients/redis"
	beneficiaryrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/beneficiary"
	eventrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/event"
	"github.com/bayanihan-ph/relief-backend/internal/data/repos/registry"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/intake"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
	"github.com/bayanihan-ph/relief-backend/internal/qr"
)

const (
	sessionTTL       = 24 * time.Hour
	sessionKeyPrefix = "intake:session:"
)

type IntakeService interface {
	StartSession(ctx context.Context) (string, *intake.Machine, error)
	GetSession(ctx context.Context, sessionID string) (*intake.Machine, error)
	SaveDraft(ctx context.Context, sessionID string, draft intake.Draft) (*intake.Machine, error)
	Advance(ctx context.Context, sessionID string) (*intake.Machine, error)
	Retreat(ctx context.Context, sessionID string) (*intake.Machine, error)
	// Submit finishes the wizard and, once the machine is ready, commits the
	// beneficiary and issues its QR card.
	Submit(ctx context.Context, sessionID string, confirmedAlone bool) (*types.Beneficiary, *intake.Machine, error)
	// ReissueQR regenerates and re-attaches the QR card for a beneficiary
	// left without one by a failed issuance.
	ReissueQR(ctx context.Context, beneficiaryID uuid.UUID) (*types.Beneficiary, error)
}

type intakeService struct {
	db              *gorm.DB
	log             *logger.Logger
	sessions        redis.Store
	barangayRepo    registry.BarangayRepo
	beneficiaryRepo beneficiaryrepo.BeneficiaryRepo
	eventRepo       eventrepo.EventRepo
	bucket          gcs.BucketService
	renderer        *qr.Renderer
}

func NewIntakeService(
	db *gorm.DB,
	log *logger.Logger,
	sessions redis.Store,
	barangayRepo registry.BarangayRepo,
	beneficiaryRepo beneficiaryrepo.BeneficiaryRepo,
	eventRepo eventrepo.EventRepo,
	bucket gcs.BucketService,
	renderer *qr.Renderer,
) IntakeService {
	serviceLog := log.With("service", "IntakeService")
	return &intakeService{
		db:              db,
		log:             serviceLog,
		sessions:        sessions,
		barangayRepo:    barangayRepo,
		beneficiaryRepo: beneficiaryRepo,
		eventRepo:       eventRepo,
		bucket:          bucket,
		renderer:        renderer,
	}
}

func (is *intakeService) StartSession(ctx context.Context) (string, *intake.Machine, error) {
	sessionID := uuid.New().String()
	m := intake.NewMachine()
	if err := is.saveSession(ctx, sessionID, m); err != nil {
		return "", nil, err
	}
	return sessionID, m, nil
}

func (is *intakeService) GetSession(ctx context.Context, sessionID string) (*intake.Machine, error) {
	var m intake.Machine
	if err := is.sessions.GetJSON(ctx, sessionKeyPrefix+sessionID, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (is *intakeService) SaveDraft(ctx context.Context, sessionID string, draft intake.Draft) (*intake.Machine, error) {
	m, err := is.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	// The cascading address setters run server-side so a changed region can
	// never smuggle along a stale province/city/barangay.
	merged := m.Draft.Address
	merged.SetRegion(draft.Address.Region)
	merged.SetProvince(draft.Address.Province)
	merged.SetCity(draft.Address.City)
	merged.SetBrgyName(draft.Address.BrgyName)
	merged.HouseNumber = draft.Address.HouseNumber
	draft.Address = merged

	m.Draft = draft
	if err := is.saveSession(ctx, sessionID, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (is *intakeService) Advance(ctx context.Context, sessionID string) (*intake.Machine, error) {
	m, err := is.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	advErr := m.Advance()
	if saveErr := is.saveSession(ctx, sessionID, m); saveErr != nil {
		return nil, saveErr
	}
	if advErr != nil {
		return m, advErr
	}
	return m, nil
}

func (is *intakeService) Retreat(ctx context.Context, sessionID string) (*intake.Machine, error) {
	m, err := is.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	m.Retreat()
	if err := is.saveSession(ctx, sessionID, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (is *intakeService) Submit(ctx context.Context, sessionID string, confirmedAlone bool) (*types.Beneficiary, *intake.Machine, error) {
	m, err := is.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if subErr := m.Submit(confirmedAlone); subErr != nil {
		if saveErr := is.saveSession(ctx, sessionID, m); saveErr != nil {
			return nil, nil, saveErr
		}
		return nil, m, subErr
	}

	created, err := is.commit(ctx, m.Draft)
	if err != nil {
		// Roll the machine back to the family step so the operator can fix
		// the draft and resubmit without starting over.
		m.Step = intake.StepFamily
		if saveErr := is.saveSession(ctx, sessionID, m); saveErr != nil {
			is.log.Warn("failed to park session after commit error", "session", sessionID, "error", saveErr)
		}
		return nil, m, err
	}

	if err := is.sessions.Delete(ctx, sessionKeyPrefix+sessionID); err != nil {
		is.log.Warn("failed to drop completed intake session", "session", sessionID, "error", err)
	}
	return created, m, nil
}

// commit performs the duplicate check and insert in one transaction, then
// issues the QR card. A QR failure after the insert leaves the beneficiary
// without a card; ReissueQR is the manual reconciliation path.
func (is *intakeService) commit(ctx context.Context, draft intake.Draft) (*types.Beneficiary, error) {
	brgy, err := is.barangayRepo.GetByName(ctx, nil, draft.Address.BrgyName)
	if err != nil {
		return nil, fmt.Errorf("resolve barangay %q: %w", draft.Address.BrgyName, err)
	}

	members := make([]types.FamilyMember, 0, len(draft.Family))
	for _, row := range draft.Family {
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

	record := &types.Beneficiary{
		ID:                uuid.New(),
		BarangayID:        brgy.ID,
		FirstName:         draft.Identity.FirstName,
		MiddleName:        draft.Identity.MiddleName,
		LastName:          draft.Identity.LastName,
		Mobile:            draft.Identity.Mobile,
		Age:               draft.Identity.Age,
		Gender:            draft.Identity.Gender,
		CivilStatus:       draft.Identity.CivilStatus,
		Ethnicity:         draft.Identity.Ethnicity,
		Religion:          draft.Identity.Religion,
		Email:             draft.Identity.Email,
		Region:            draft.Address.Region,
		Province:          draft.Address.Province,
		City:              draft.Address.City,
		BrgyAddress:       brgy.Name,
		HouseNumber:       draft.Address.HouseNumber,
		Occupation:        draft.Identity.Occupation,
		MonthlyIncome:     draft.Identity.MonthlyIncome,
		FourPs:            draft.Conditions.FourPs == "yes",
		HousingConditions: types.TagsJSON(draft.Conditions.Housing),
		HealthConditions:  types.TagsJSON(draft.Conditions.Health),
		Casualties:        types.TagsJSON(draft.Conditions.Casualty),
		OwnershipTypes:    types.TagsJSON(draft.Conditions.Ownership),
		CodeFlags:         types.TagsJSON(draft.Conditions.Codes),
		FamilyMembers:     membersJSON,
	}

	if err := is.withTx(ctx, func(tx *gorm.DB) error {
		exists, exErr := is.beneficiaryRepo.NameExists(ctx, tx, brgy.ID,
			record.FirstName, record.MiddleName, record.LastName)
		if exErr != nil {
			return fmt.Errorf("duplicate check: %w", exErr)
		}
		if exists {
			return types.ErrDuplicate
		}
		if _, cErr := is.beneficiaryRepo.Create(ctx, tx, []*types.Beneficiary{record}); cErr != nil {
			return cErr
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := is.issueQR(ctx, record, brgy.Name); err != nil {
		is.log.Warn("beneficiary saved without QR card", "beneficiary_id", record.ID, "error", err)
	}

	if err := is.eventRepo.Append(ctx, nil,
		fmt.Sprintf("Added beneficiary %s %s to %s", record.FirstName, record.LastName, brgy.Name),
		time.Now().UTC()); err != nil {
		is.log.Warn("failed to append intake event", "error", err)
	}

	return record, nil
}

func (is *intakeService) ReissueQR(ctx context.Context, beneficiaryID uuid.UUID) (*types.Beneficiary, error) {
	record, err := is.beneficiaryRepo.GetByID(ctx, nil, beneficiaryID)
	if err != nil {
		return nil, err
	}
	brgy, err := is.barangayRepo.GetByID(ctx, nil, record.BarangayID)
	if err != nil {
		return nil, err
	}
	if err := is.issueQR(ctx, record, brgy.Name); err != nil {
		return nil, err
	}
	return record, nil
}

func (is *intakeService) issueQR(ctx context.Context, record *types.Beneficiary, brgyName string) error {
	payload := qr.Payload{
		ID:       record.ID.String(),
		LastName: record.LastName,
		BrgyName: brgyName,
	}
	card, err := is.renderer.RenderCard(payload, record.FirstName+" "+record.LastName)
	if err != nil {
		return fmt.Errorf("render qr card: %w", err)
	}
	key := fmt.Sprintf("barangay/%s/recipients/%s/qr.png", brgyName, record.ID)
	if err := is.bucket.UploadFile(ctx, key, "image/png", bytes.NewReader(card)); err != nil {
		return fmt.Errorf("upload qr card: %w", err)
	}
	url := is.bucket.GetPublicURL(key)
	if err := is.beneficiaryRepo.UpdateQRFields(ctx, nil, record.ID, key, url); err != nil {
		return fmt.Errorf("attach qr card: %w", err)
	}
	record.QRStorageKey = key
	record.QRImageURL = url
	return nil
}

func familyJSON(members []types.FamilyMember) (datatypes.JSON, error) {
	raw, err := json.Marshal(members)
	if err != nil {
		return nil, fmt.Errorf("encode family members: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func (is *intakeService) saveSession(ctx context.Context, sessionID string, m *intake.Machine) error {
	return is.sessions.PutJSON(ctx, sessionKeyPrefix+sessionID, m, sessionTTL)
}

func (is *intakeService) withTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if is.db == nil {
		return fn(nil)
	}
	return is.db.WithContext(ctx).Transaction(fn)
}
