// Package model defines the domain types shared across the futures data engine.
//
// Types:
//   - Closed enumerations: SourceKind, Instrument, DeliveryMonth, DType
//   - DataRequest: immutable {source, symbol, month, year} tuple driving resolution
//   - ParseSpec: declarative schema handed to the tabular reader
//   - ReadPlan: verified {file path, parse spec} pair
//
// Conventions:
//   - Enumerations serialize to/from their exact literal strings ("quik", "RI", "H")
//   - Every constructor validates once and returns a typed error from errors.go
//   - Timestamp formats are Go time layouts (e.g., "20060102 150405")
package model
