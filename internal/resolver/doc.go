// Package resolver links generated resources to each other.
//
// A consuming field addresses its target in one of three ways: a [Literal]
// pre-existing cloud identifier, a [Named] reference to a resource in the same
// graph, or a [Selector] label match against resources in the same graph.
// Named and selector references produce dependency edges; literals do not.
//
// Targets must be registered before they can be referenced, so edges always
// point from later resources to earlier ones.
package resolver
