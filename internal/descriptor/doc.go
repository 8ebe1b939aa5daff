// Package descriptor defines the resource descriptors that make up desired state.
//
// A descriptor is a managed resource (or a plain Secret) identified by a
// logical name, carrying labels, annotations, and a payload in the provider's
// schema. Descriptors are produced by builders, linked by the resolver, and
// frozen once they enter the graph.
package descriptor
