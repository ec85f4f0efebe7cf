package services

import (
	"context"
	"time"

	eventrepo "github.com/bayanihan-ph/relief-backend/internal/data/repos/event"
	types "github.com/bayanihan-ph/relief-backend/internal/domain"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

const dayLayout = "2006-01-02"

type EventService interface {
	// ListByDay returns the activity feed for one calendar day (YYYY-MM-DD).
	ListByDay(ctx context.Context, day string) ([]*types.EventLog, error)
}

type eventService struct {
	log  *logger.Logger
	repo eventrepo.EventRepo
}

func NewEventService(log *logger.Logger, repo eventrepo.EventRepo) EventService {
	serviceLog := log.With("service", "EventService")
	return &eventService{log: serviceLog, repo: repo}
}

func (es *eventService) ListByDay(ctx context.Context, day string) ([]*types.EventLog, error) {
	if _, err := time.Parse(dayLayout, day); err != nil {
		verr := types.NewValidationError()
		verr.Add("day", "must be formatted YYYY-MM-DD")
		return nil, verr
	}
	return es.repo.ListByDay(ctx, nil, day)
}
