// Package watcher invalidates cached read plans when data files change.
//
// It watches root/quik_data/<symbol>/ and root/daily_data/<symbol>/ with
// fsnotify, debounces .csv changes, maps each file back to its DataRequest
// and clears that request's cached plan. New symbol directories are picked
// up as they appear.
package watcher
