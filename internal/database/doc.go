// Package database provides the PostgreSQL connection pool for the contract
// catalog.
//
// The catalog records which contract files exist on disk (see
// internal/catalog). Queries against it replace directory walks when many
// consumers need the same listing.
package database
