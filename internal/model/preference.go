// internal/model/preference.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Preference is a JSON blob keyed by (user, name): last selected group,
// last active dhikr and similar UI state the app restores at startup.
type Preference struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	PrefKey   string    `gorm:"size:64;primaryKey;column:pref_key" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Preference) TableName() string {
	return "preferences"
}

// PutPreferenceRequest stores one preference value. The value is opaque to
// the engine; the UI decides its shape.
type PutPreferenceRequest struct {
	Value string `json:"value" validate:"required"`
}
