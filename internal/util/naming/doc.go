// Package naming provides consistent naming functions for desired-state resources.
//
// Singleton resources follow the pattern {claim}-{kind}-{env}; per-zone and
// per-instance resources insert a zero-based ordinal: {claim}-{kind}-{index}-{env}.
// Names are stable across runs so the same claim always renders the same graph.
package naming
