// Package store persists scrape runs and their records to a local SQLite
// database. The store is optional: the batch driver works without one, and
// store failures are logged rather than surfaced.
package store

import (
	"context"

	"github.com/sells-group/fieldharvest/internal/model"
)

// Store records the lifecycle of batch runs and their extracted records.
type Store interface {
	Migrate(ctx context.Context) error
	CreateRun(ctx context.Context, urlCount int) (*model.Run, error)
	FinishRun(ctx context.Context, runID string, status model.RunStatus, recordCount int) error
	AppendRecord(ctx context.Context, runID, sourceURL string, rec model.Record, accepted bool) error
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
	RunRecords(ctx context.Context, runID string) ([]model.Record, error)
	Close() error
}
