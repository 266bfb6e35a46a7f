// internal/model/counter.go
package model

import "github.com/google/uuid"

// Cue is the feedback signal attached to an increment.
type Cue string

const (
	CueNone Cue = ""
	// CueApproaching fires when the pre-increment remainder to target is 1 or 2.
	CueApproaching Cue = "approaching"
	// CueCompleted fires exactly once, on the increment that first reaches target.
	CueCompleted Cue = "completed"
)

// IncrementResult is returned from a tap. NextDhikrID is the auto-advance
// hint: the next incomplete dhikr in display order, to be focused after
// AdvanceAfterMS. Queued means the write is buffered in the offline queue;
// Rejected means the remote store refused it permanently and the local
// count could not be persisted.
type IncrementResult struct {
	DhikrID        uuid.UUID  `json:"dhikr_id"`
	Date           string     `json:"date"`
	Count          int        `json:"count"`
	Target         int        `json:"target"`
	Completed      bool       `json:"completed"`
	Cue            Cue        `json:"cue,omitempty"`
	NextDhikrID    *uuid.UUID `json:"next_dhikr_id,omitempty"`
	AdvanceAfterMS int        `json:"advance_after_ms,omitempty"`
	Queued         bool       `json:"queued,omitempty"`
	Rejected       bool       `json:"rejected,omitempty"`
}

// ManualSetRequest sets a counter directly. DeclaredMax is the UI-supplied
// ceiling, independent of the dhikr target.
type ManualSetRequest struct {
	Value       int `json:"value" validate:"min=0"`
	DeclaredMax int `json:"declared_max" validate:"min=1"`
}
