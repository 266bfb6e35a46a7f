// internal/repository/remote.go
package repository

import (
	"context"

	"github.com/mbamerni/tzbi-vo/internal/model"

	"github.com/google/uuid"
)

// RemoteStore is the durable backend holding definitions and daily logs.
// Implementations must classify failures: transient problems (network,
// server errors, expired session) wrap model.ErrRemoteUnavailable so the
// caller can queue the write; permanent rejections wrap
// model.ErrRemoteRejected and must not be retried.
type RemoteStore interface {
	// UpsertLog sets the absolute count for (user, dhikr, date). Idempotent:
	// repeated calls with the same arguments converge to the same stored row.
	UpsertLog(ctx context.Context, userID, dhikrID uuid.UUID, logDate string, count int) error

	// ReadLogs returns log rows in [from, to]. Empty bounds mean unbounded.
	ReadLogs(ctx context.Context, userID uuid.UUID, from, to string) ([]model.DailyLogEntry, error)

	// ReadDefinitions returns the user's groups with their adhkar, including
	// active flags and creation timestamps, in display order.
	ReadDefinitions(ctx context.Context, userID uuid.UUID) ([]model.DhikrGroup, error)
}
