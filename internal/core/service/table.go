package service

import (
	"context"

	"github.com/yndnr/tablesync-go/internal/core/domain"
	"github.com/yndnr/tablesync-go/internal/telemetry/logger"
)

// TableRepository defines the storage interface for the revision-tracked
// table.
type TableRepository interface {
	// Add stores a row and returns the new revision.
	Add(ctx context.Context, row domain.Row) (int64, error)

	// Remove deletes the first row with the id. A miss leaves the revision
	// untouched.
	Remove(ctx context.Context, id string) (bool, int64)

	// Snapshot returns the full table, re-stamping every row with the
	// current revision.
	Snapshot(ctx context.Context) domain.State

	// ChangesSince returns rows stamped after the given revision.
	ChangesSince(ctx context.Context, since int64) domain.State

	Revision() int64
	Len() int
}

// Recorder receives mutation outcomes. *metric.Registry satisfies it.
type Recorder interface {
	RecordMutation(op, result string)
}

type nopRecorder struct{}

func (nopRecorder) RecordMutation(string, string) {}

// TableService applies the table's business rules on top of a repository.
type TableService struct {
	repo     TableRepository
	recorder Recorder
	log      logger.Logger
}

// TableServiceOption configures a TableService.
type TableServiceOption func(*TableService)

// WithRecorder reports mutations to r.
func WithRecorder(r Recorder) TableServiceOption {
	return func(s *TableService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) TableServiceOption {
	return func(s *TableService) {
		if l != nil {
			s.log = l
		}
	}
}

// NewTableService creates a new TableService.
func NewTableService(repo TableRepository, opts ...TableServiceOption) *TableService {
	s := &TableService{
		repo:     repo,
		recorder: nopRecorder{},
		log:      logger.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "table")
	return s
}

// ============================================================================
// Mutations
// ============================================================================

// Add validates and stores a row, then returns the full state.
//
// The returned state comes from Snapshot, so every row in it (and in the
// store) carries the new revision.
func (s *TableService) Add(ctx context.Context, row domain.Row) (domain.State, error) {
	rev, err := s.repo.Add(ctx, row)
	if err != nil {
		s.recorder.RecordMutation("add", "rejected")
		return domain.State{}, err
	}
	s.recorder.RecordMutation("add", "ok")
	logger.L(ctx).Debug("row added", "id", row.ID, "revision", rev)

	return s.repo.Snapshot(ctx), nil
}

// Remove deletes the first row with the id and returns the full state.
//
// Removing an unknown id is not an error: the state is returned unchanged.
func (s *TableService) Remove(ctx context.Context, id string) (domain.State, error) {
	if id == "" {
		return domain.State{}, domain.ErrMissingArgument.WithDetails("id is required")
	}

	removed, rev := s.repo.Remove(ctx, id)
	if removed {
		s.recorder.RecordMutation("remove", "ok")
		logger.L(ctx).Debug("row removed", "id", id, "revision", rev)
	} else {
		s.recorder.RecordMutation("remove", "miss")
	}

	return s.repo.Snapshot(ctx), nil
}

// ============================================================================
// Reads
// ============================================================================

// State returns the full table.
func (s *TableService) State(ctx context.Context) domain.State {
	return s.repo.Snapshot(ctx)
}

// Changes returns the rows changed after revision since, with the current
// revision.
//
// Removals are not reported: a removed row has no stamp to compare.
func (s *TableService) Changes(ctx context.Context, since int64) domain.State {
	return s.repo.ChangesSince(ctx, since)
}

// Revision returns the current table revision.
func (s *TableService) Revision() int64 {
	return s.repo.Revision()
}

// Len returns the number of stored rows.
func (s *TableService) Len() int {
	return s.repo.Len()
}

// ============================================================================
// Seeding
// ============================================================================

// DefaultSeed is the sample data a fresh server starts with.
func DefaultSeed() []domain.Row {
	return []domain.Row{
		{ID: "1", Name: "BTC", Price: 111},
		{ID: "2", Name: "LTC", Price: 222},
		{ID: "3", Name: "ETH", Price: 333},
	}
}

// Seed adds rows directly to the repository without going through metrics.
// It stops at the first invalid row.
func (s *TableService) Seed(ctx context.Context, rows []domain.Row) error {
	for _, row := range rows {
		if _, err := s.repo.Add(ctx, row); err != nil {
			return err
		}
	}
	s.log.Info("table seeded", "rows", len(rows), "revision", s.repo.Revision())
	return nil
}
