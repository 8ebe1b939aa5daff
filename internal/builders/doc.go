// Package builders produces one descriptor per managed resource of a vector
// database.
//
// Builders are pure: they read the normalized configuration and the
// references to their prerequisites, and return descriptors whose
// cross-resource fields are recorded as bindings rather than written. The
// assembler resolves those bindings once every prerequisite is registered.
//
// Downstream builders never see whether the network is created or reused;
// they consume a [Network], which addresses the VPC and subnets either by
// reference or by literal identifier.
package builders
