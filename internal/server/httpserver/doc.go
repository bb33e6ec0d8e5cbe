// Package httpserver provides the HTTP server for tablesync.
//
// Routes are registered on a chi router:
//
//   - Table endpoints: GET /table, GET /table/changes, POST /table/add,
//     POST /table/remove
//   - Operational endpoints: GET /health, GET /ready, GET /metrics
//
// Middleware order, outermost first: RequestID, Recover, RateLimit,
// Metrics, Audit.
package httpserver
