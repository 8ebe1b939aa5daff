// Package graph freezes linked descriptors into a verified dependency graph.
//
// The graph checks uniqueness, acyclicity, and reference closure once at
// construction and is read-only afterwards. Consumers get copies of its
// descriptors, a topological layering for creation order, and a stable
// fingerprint of the rendered output.
package graph
