// Package connection is the tablesync-cli side of the HTTP protocol.
//
// HTTPClient wraps net/http with typed calls for each table endpoint and
// sorts failures into three kinds the sync loop treats differently:
//
//   - TransportError: the request never produced a response (dial, reset,
//     timeout)
//   - StatusError: the server answered with a non-2xx status
//   - DecodeError: the server answered 2xx but the body is not a state
package connection
