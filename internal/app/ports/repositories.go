package ports

import (
	"context"
	"time"

	"ouroverse/internal/domain/serpent"
)

// RunSnapshotRepository persists the single active run. There is exactly one
// snapshot row; Load returns ErrNotFound when no run has been saved yet.
type RunSnapshotRepository interface {
	Load(ctx context.Context) (*serpent.RunState, error)
	Save(ctx context.Context, state *serpent.RunState, savedAt time.Time) error
	Delete(ctx context.Context) error
}

// MetaRecord is the progress that outlives individual runs.
type MetaRecord struct {
	Knowledge    int
	RunsFinished int
	UpdatedAt    time.Time
}

// MetaRepository stores the singleton meta record. Get returns a zero record
// (not ErrNotFound) before the first save.
type MetaRepository interface {
	Get(ctx context.Context) (MetaRecord, error)
	Save(ctx context.Context, record MetaRecord) error
}
