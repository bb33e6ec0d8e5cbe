// Package handler provides HTTP request handlers for tablesync.
//
// Table endpoints answer with a bare JSON state object, {rows, revision}.
// Every failure on those endpoints is a status code with an empty body:
// 400 for a missing or malformed query parameter, 500 for an add request
// whose body cannot be decoded into a valid row.
package handler
