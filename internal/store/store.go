package store

import (
	"context"

	"github.com/me/vinabatch/pkg/model"
)

// Store is the run-history ledger: one record per batch run, one row per
// ligand outcome.
type Store interface {
	CreateRun(ctx context.Context, run *model.Run) error
	FinishRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	ListRuns(ctx context.Context, opts model.ListOptions) ([]*model.Run, int, error)

	AddOutcome(ctx context.Context, o model.LigandOutcome) error
	ListOutcomes(ctx context.Context, runID string) ([]*model.LigandOutcome, error)

	Migrate(ctx context.Context) error
	Close() error
}
