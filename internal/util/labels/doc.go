// Package labels provides consistent labeling for desired-state resources.
//
// All labels use the vectordb.io domain prefix and follow a builder pattern
// for constructing label sets with claim, environment, component, and ordinal
// identification. The identity subset doubles as the match labels used when
// resources are addressed by selector instead of by name.
package labels
