// internal/model/log.go
package model

import "github.com/google/uuid"

// DailyLogEntry is a remote log row: the repetition count for one dhikr on
// one calendar day. Absence of a row means count 0.
type DailyLogEntry struct {
	DhikrID uuid.UUID `json:"dhikr_id"`
	LogDate string    `json:"log_date"`
	Count   int       `json:"count"`
}

// DayCounts is the per-day counter view served to the UI.
type DayCounts struct {
	Date   string            `json:"date"`
	Counts map[uuid.UUID]int `json:"counts"`
}
