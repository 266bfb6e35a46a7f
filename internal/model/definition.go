// internal/model/definition.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Dhikr is a single repeated phrase with a daily target count. Definitions
// live in the remote store; this engine only reads them.
type Dhikr struct {
	DhikrID     uuid.UUID `json:"id"`
	GroupID     uuid.UUID `json:"group_id"`
	Text        string    `json:"text"`
	TargetCount int       `json:"target_count"`
	Virtue      string    `json:"virtue,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	IsActive    bool      `json:"is_active"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// DhikrGroup is a named, ordered collection of adhkar.
type DhikrGroup struct {
	GroupID   uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon,omitempty"`
	IsActive  bool      `json:"is_active"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	Adhkar    []Dhikr   `json:"adhkar"`
}
