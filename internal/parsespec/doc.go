// Package parsespec implements the Parse-Spec Strategy Registry.
//
// The registry:
//   - Maps a source kind to a pure factory producing a model.ParseSpec
//   - Ships the QUIK and DAILY layouts as an explicit table (NewDefaultRegistry)
//   - Validates every produced spec before returning it
//   - Lets callers override a binding (last write wins)
package parsespec
