// Package server exposes read plans over HTTP.
//
// Routes:
//   - GET    /health                              planner stats and build info
//   - GET    /plan?source=&symbol=&month=&year=   resolve one read plan
//   - DELETE /plan?source=&symbol=&month=&year=   clear one cached plan (all without a query)
//   - GET    /catalog                             contract files on disk
//   - GET    <metrics path>                       Prometheus metrics
//
// Resolution errors map to status codes: bad literals and validation
// failures are 400, a missing data file is 404 and an unregistered source
// kind is 422.
package server
