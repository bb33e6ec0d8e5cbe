package memory

import (
	"math"

	"github.com/google/btree"
	"github.com/spaolacci/murmur3"

	"github.com/yndnr/tablesync-go/internal/core/domain"
)

// DefaultBTreeDegree is the branching degree of the row index.
const DefaultBTreeDegree = 32

// entry is a stored row plus the insertion sequence that breaks ties between
// rows sharing an id. The newest copy of an id sorts first.
type entry struct {
	row domain.Row
	seq uint64
}

func entryLess(a, b *entry) bool {
	if a.row.ID != b.row.ID {
		return a.row.ID < b.row.ID
	}
	return a.seq > b.seq
}

// rowIndex keeps entries ordered by id, then by descending seq.
//
// Not safe for concurrent use; Table holds the lock.
type rowIndex struct {
	tree *btree.BTreeG[*entry]
}

func newRowIndex(degree int) *rowIndex {
	if degree < 2 {
		degree = DefaultBTreeDegree
	}
	return &rowIndex{tree: btree.NewG[*entry](degree, entryLess)}
}

func (i *rowIndex) insert(e *entry) {
	i.tree.ReplaceOrInsert(e)
}

// first returns the most recently inserted entry with the given id.
func (i *rowIndex) first(id string) (*entry, bool) {
	var found *entry
	pivot := &entry{row: domain.Row{ID: id}, seq: math.MaxUint64}
	i.tree.AscendGreaterOrEqual(pivot, func(e *entry) bool {
		if e.row.ID == id {
			found = e
		}
		return false
	})
	return found, found != nil
}

// position returns the ordinal of the first entry with the given id, or -1.
// Positions are not indexed, so this walks the tree from the start.
func (i *rowIndex) position(id string) int {
	pos, found := 0, -1
	i.tree.Ascend(func(e *entry) bool {
		if e.row.ID < id {
			pos++
			return true
		}
		if e.row.ID == id {
			found = pos
		}
		return false
	})
	return found
}

func (i *rowIndex) delete(e *entry) bool {
	_, ok := i.tree.Delete(e)
	return ok
}

func (i *rowIndex) ascend(fn func(e *entry) bool) {
	i.tree.Ascend(fn)
}

func (i *rowIndex) len() int {
	return i.tree.Len()
}

// membership counts stored rows per id fingerprint.
//
// A zero count proves absence. A non-zero count only means "possibly
// present": fingerprints can collide, so callers confirm against the tree.
// Counts (rather than a set) keep duplicate ids correct when one copy is
// removed.
type membership struct {
	counts map[uint64]int
}

func newMembership() *membership {
	return &membership{counts: make(map[uint64]int)}
}

// Fingerprint returns the membership key for an id.
func Fingerprint(id string) uint64 {
	return murmur3.Sum64([]byte(id))
}

func (m *membership) add(id string) {
	m.counts[Fingerprint(id)]++
}

func (m *membership) remove(id string) {
	fp := Fingerprint(id)
	if m.counts[fp] <= 1 {
		delete(m.counts, fp)
		return
	}
	m.counts[fp]--
}

func (m *membership) mayContain(id string) bool {
	return m.counts[Fingerprint(id)] > 0
}

func (m *membership) len() int {
	return len(m.counts)
}
