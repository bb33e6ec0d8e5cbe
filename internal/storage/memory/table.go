package memory

import (
	"context"
	"sync"

	"github.com/yndnr/tablesync-go/internal/core/domain"
)

// NotFound is returned by Find when no row carries the id.
const NotFound = -1

// Table is the revision-tracked row store.
type Table struct {
	mu sync.Mutex

	// Primary index: id ascending, newest copy first
	rows *rowIndex

	// Existence pre-filter: fingerprint(id) -> row count
	members *membership

	revision int64
	nextSeq  uint64
}

// Option configures the Table.
type Option func(*tableOptions)

type tableOptions struct {
	degree int
}

// WithBTreeDegree sets the branching degree of the row index.
func WithBTreeDegree(degree int) Option {
	return func(o *tableOptions) {
		o.degree = degree
	}
}

// New creates an empty table at revision 0.
func New(opts ...Option) *Table {
	o := tableOptions{degree: DefaultBTreeDegree}
	for _, opt := range opts {
		opt(&o)
	}

	return &Table{
		rows:    newRowIndex(o.degree),
		members: newMembership(),
	}
}

// Add inserts a row at its id-ordered position and advances the revision.
//
// Ids are not deduplicated: adding an existing id stores a second row. The
// stored row is stamped with the new revision; the caller's Revision field
// is ignored. Returns the new table revision.
func (t *Table) Add(_ context.Context, row domain.Row) (int64, error) {
	if err := row.Validate(); err != nil {
		return 0, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.revision++
	t.nextSeq++
	row.Revision = t.revision

	t.rows.insert(&entry{row: row, seq: t.nextSeq})
	t.members.add(row.ID)

	return t.revision, nil
}

// Remove deletes the first row with the given id.
//
// Returns whether a row was removed and the table revision afterwards. A miss
// leaves the revision untouched.
func (t *Table) Remove(_ context.Context, id string) (bool, int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.members.mayContain(id) {
		return false, t.revision
	}

	e, ok := t.rows.first(id)
	if !ok {
		// Fingerprint collision.
		return false, t.revision
	}

	t.rows.delete(e)
	t.members.remove(id)
	t.revision++

	return true, t.revision
}

// Find returns the position of the first row with the given id, or NotFound.
func (t *Table) Find(id string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.members.mayContain(id) {
		return NotFound
	}
	return t.rows.position(id)
}

// Snapshot returns every row in id order at the current revision.
//
// Every stored row is re-stamped with the current revision before it is
// copied out. A later ChangesSince therefore only reports rows added after
// this call, whatever their earlier stamps were.
func (t *Table) Snapshot(_ context.Context) domain.State {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([]domain.Row, 0, t.rows.len())
	t.rows.ascend(func(e *entry) bool {
		e.row.Revision = t.revision
		rows = append(rows, e.row)
		return true
	})

	return domain.State{Rows: rows, Revision: t.revision}
}

// ChangesSince returns the rows stamped after the given revision, in id
// order, paired with the current revision. It never modifies the table.
func (t *Table) ChangesSince(_ context.Context, since int64) domain.State {
	t.mu.Lock()
	defer t.mu.Unlock()

	rows := make([]domain.Row, 0)
	t.rows.ascend(func(e *entry) bool {
		if e.row.Revision > since {
			rows = append(rows, e.row)
		}
		return true
	})

	return domain.State{Rows: rows, Revision: t.revision}
}

// Revision returns the current table revision.
func (t *Table) Revision() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.revision
}

// Len returns the number of stored rows.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows.len()
}
