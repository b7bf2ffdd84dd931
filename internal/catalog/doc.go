// Package catalog inventories the contract files present under a data root.
//
// Components:
//   - ParseFileName: inverse of the layout naming, file name back to DataRequest
//   - Scan: glob the data tree and return one Entry per recognised file
//   - Store: upsert scan results into PostgreSQL, tagged with a run id
//
// File names carry only the last one (QUIK) or two (DAILY) digits of the
// year, so decoding needs a reference year. QUIK digits resolve into the ten
// year window ending one year after the reference; DAILY years are 20yy.
package catalog
