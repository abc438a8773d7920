// Package poller implements the collection cycle and its schedule.
//
// The Poller:
//   - Runs one cycle immediately on start, then on a cron schedule
//   - Fetches every configured catalogue page in order, one at a time
//   - Hands each complete page to a fresh writer.Persister
//   - Logs a failed page once, with URL and response data, and moves on
package poller
