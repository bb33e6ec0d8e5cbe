// Package service provides domain services for tablesync.
//
// Services hold the business rules around the table and depend on a storage
// interface rather than a concrete store, so handlers and tests can supply
// their own.
//
//   - TableService: add, remove, full state, and change resolution
//
// Services are safe for concurrent use when the repository is.
package service
