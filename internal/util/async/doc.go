// Package async provides utilities for parallel construction with ordered results.
//
// The [Map] function fans a pure function out over a slice and collects the
// results in input order, so callers get deterministic output regardless of
// scheduling. It is used to build per-zone and per-instance resources.
package async
