package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventLog is the per-day activity feed. Day is the "2006-01-02" rendering of
// OccurredAt so a whole day can be fetched with one indexed lookup.
type EventLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Day        string    `gorm:"column:day;not null;index" json:"day"`
	Event      string    `gorm:"column:event;not null" json:"event"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
}

func (EventLog) TableName() string { return "event_log" }
