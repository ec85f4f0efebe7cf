package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

const dayLayout = "2006-01-02"

type EventRepo interface {
	Append(ctx context.Context, tx *gorm.DB, event string, occurredAt time.Time) error
	ListByDay(ctx context.Context, tx *gorm.DB, day string) ([]*types.EventLog, error)
}

type eventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEventRepo(db *gorm.DB, baseLog *logger.Logger) EventRepo {
	repoLog := baseLog.With("repo", "EventRepo")
	return &eventRepo{db: db, log: repoLog}
}

func (er *eventRepo) Append(ctx context.Context, tx *gorm.DB, event string, occurredAt time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	row := &types.EventLog{
		ID:         uuid.New(),
		Day:        occurredAt.Format(dayLayout),
		Event:      event,
		OccurredAt: occurredAt,
	}
	return transaction.WithContext(ctx).Create(row).Error
}

func (er *eventRepo) ListByDay(ctx context.Context, tx *gorm.DB, day string) ([]*types.EventLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}
	var results []*types.EventLog
	if err := transaction.WithContext(ctx).
		Where("day = ?", day).
		Order("occurred_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
