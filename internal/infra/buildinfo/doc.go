// Package buildinfo exposes the version of the running binary.
//
// Version, Commit and BuildTime are injected with ldflags:
//
//	go build -ldflags "-X github.com/yndnr/tablesync-go/internal/infra/buildinfo.Version=v1.0.0"
//
// When Commit is not injected it is read from the module's embedded VCS
// stamp, if any.
package buildinfo
