// Package resolver implements the Read-Plan Resolver.
//
// A Resolver is bound to one DataRequest and turns it into a model.ReadPlan:
//  1. Directory and file name come from injected DirProvider and NameProvider
//  2. The joined path is checked through the filesystem port
//  3. A missing path fails with *model.FileNotFoundError and nothing is cached
//  4. Otherwise the parse spec is attached and the plan is cached
//
// Subsequent Resolve calls return the cached plan without I/O until
// ClearCache. A Resolver does no locking; share one across goroutines only
// behind the caller's own synchronization (see internal/planner).
package resolver
