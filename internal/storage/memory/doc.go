// Package memory provides the in-memory table store for tablesync.
//
// The store keeps rows ordered by id in a B-tree and tracks a monotonic
// table revision that advances once per effectual mutation.
//
// Features:
//
//   - Ordered Storage: rows sorted by id (byte-wise string order); rows
//     sharing an id are ordered newest first
//   - Membership Index: murmur3 fingerprints answer "possibly present"
//     before the tree is consulted
//   - Revision Stamps: every stored row carries the revision it was last
//     stamped with, which drives change queries
//
// Thread Safety:
//
// Table serializes every operation, reads included, behind one mutex.
// Snapshot rewrites stamps, so it cannot share a read lock.
package memory
