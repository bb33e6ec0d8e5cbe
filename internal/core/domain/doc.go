// Package domain defines the core domain models for tablesync.
//
// Domain models are plain value objects without IO dependencies:
//
//   - Row: a single table record and its revision stamp
//   - State: an ordered set of rows paired with the table revision
//   - Errors: coded domain errors shared by the server and the client
package domain
