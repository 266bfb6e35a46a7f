// internal/model/queue.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// QueuedMutation is one outbox row: the absolute count to persist for a
// (user, dhikr, day) key. At most one row exists per key; a later enqueue
// for the same key supersedes the earlier value. Because the payload is
// "set to X" rather than "add X", draining is idempotent.
type QueuedMutation struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	DhikrID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"dhikr_id"`
	LogDate  string    `gorm:"size:10;primaryKey" json:"log_date"`
	Count    int       `gorm:"not null" json:"count"`
	QueuedAt time.Time `gorm:"not null" json:"queued_at"`
}

func (QueuedMutation) TableName() string {
	return "queued_mutations"
}

// RejectedMutation reports an outbox row the remote store refused
// permanently. It has been removed from the queue and must be surfaced.
type RejectedMutation struct {
	DhikrID uuid.UUID `json:"dhikr_id"`
	LogDate string    `json:"log_date"`
	Reason  string    `json:"reason"`
}

// DrainResult summarizes one drain pass over the queue.
type DrainResult struct {
	Attempted int                `json:"attempted"`
	Applied   int                `json:"applied"`
	Remaining int                `json:"remaining"`
	Rejected  []RejectedMutation `json:"rejected,omitempty"`
}

// QueueStatus reports the outbox backlog.
type QueueStatus struct {
	Pending        int        `json:"pending"`
	OldestQueuedAt *time.Time `json:"oldest_queued_at,omitempty"`
}
