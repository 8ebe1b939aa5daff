// Package config defines the normalized configuration of a vector database
// claim and the normalizer that produces it.
//
// [Normalize] reads an observed composite resource, a loosely-typed document
// whose spec holds the user's settings, and returns a fully defaulted
// [Config]. Numbers and booleans are coerced from their string forms; the
// network boundary is resolved into either [CreateNew] or [ReuseExisting].
package config
