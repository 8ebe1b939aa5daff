// Package assembler runs the generation state machine:
//
//	Initializing → Normalizing → Allocating → Building → Linking → Done
//
// with Failed reachable from every state. Each step is a [Phase] that reads
// and extends a shared [Context]. Building invokes the descriptor builders in
// a fixed topological order; Linking resolves their bindings against a
// registry filled in that same order and freezes the result into a graph.
//
// Failures in Linking can only come from an inconsistent build order and are
// marked with retry.Fatal.
package assembler
