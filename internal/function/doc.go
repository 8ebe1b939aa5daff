// Package function adapts the assembler to the composition host's request and
// response envelope. A request carries the observed composite resource; the
// response carries the desired resources keyed by logical name, a fingerprint
// and structured results.
package function
