// Package planner owns one resolver per DataRequest and makes them safe for
// concurrent use.
//
// Callers:
//   - The HTTP server resolves plans per incoming request
//   - The file watcher invalidates plans when data files change
//   - The CLI resolves a single plan
package planner
