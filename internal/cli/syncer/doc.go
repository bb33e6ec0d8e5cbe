// Package syncer keeps a client-side replica of the table current by polling
// for changes.
//
// The loop holds a watermark (the last table revision it has rendered). It
// starts from a full-state fetch, then repeatedly asks for rows changed since
// the watermark:
//
//   - empty delta: wait PollInterval, watermark unchanged
//   - non-empty delta: render it, watermark = response revision
//   - transport failure: report "connection lost", wait RetryInterval
//   - malformed body or unexpected status: report it, wait PollInterval
//
// The watermark only moves after a non-empty delta has been rendered, so a
// failed request is simply asked again. The loop never gives up; it returns
// when its context is cancelled.
package syncer
