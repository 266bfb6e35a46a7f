// internal/model/schedule.go
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UUIDList stores a set of ids as a JSON text column in sqlite.
type UUIDList []uuid.UUID

func (l UUIDList) Value() (driver.Value, error) {
	if l == nil {
		l = UUIDList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *UUIDList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = UUIDList{}
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("unsupported type %T for UUIDList", src)
	}
}

func (l UUIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// ScheduleSnapshot is one entry of the append-only schedule history: the set
// of groups/adhkar active for a user on a calendar day. The history is
// queried by "latest entry at or before date"; past entries are historical
// fact and are only rewritten through an explicit override.
type ScheduleSnapshot struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	ConfigDate string    `gorm:"size:10;primaryKey" json:"date"`
	GroupIDs   UUIDList  `gorm:"type:text;not null" json:"active_group_ids"`
	DhikrIDs   UUIDList  `gorm:"type:text;not null" json:"active_dhikr_ids"`

	// Override marks a snapshot written by the user. The daily reconcile
	// against live active flags never touches an override.
	Override  bool      `gorm:"not null;default:false" json:"override"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ScheduleSnapshot) TableName() string {
	return "schedule_snapshots"
}

// ScheduleConfig is the resolved active set for one day.
type ScheduleConfig struct {
	Date           string      `json:"date"`
	ActiveGroupIDs []uuid.UUID `json:"active_group_ids"`
	ActiveDhikrIDs []uuid.UUID `json:"active_dhikr_ids"`
}

// OverrideRequest is the payload for recording an explicit snapshot.
type OverrideRequest struct {
	ActiveGroupIDs []uuid.UUID `json:"active_group_ids" validate:"required"`
	ActiveDhikrIDs []uuid.UUID `json:"active_dhikr_ids" validate:"required"`
}
