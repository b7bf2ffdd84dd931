// Package layout implements the on-disk naming conventions of the data tree.
//
// Layout:
//   - root/quik_data/{symbol}/{symbol}{month}{y}.csv   (last digit of year)
//   - root/daily_data/{symbol}/{symbol}{month}{yy}.csv (last two digits of year)
//
// Namer and Dirs dispatch on the request's source kind through explicit
// tables. Neither touches the filesystem beyond BuildPath; Provision is the
// only function that creates directories.
package layout
