// Package metrics provides Prometheus metrics for monitoring.
//
// Key metrics:
//   - Plan resolutions by source kind and outcome (hit, resolved, not_found, error)
//   - Resolution latency for calls that reach the filesystem
//   - Cache clears issued by the planner and the file watcher
//   - Catalog index runs and rows written
package metrics
