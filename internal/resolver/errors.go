package resolver

import "fmt"

// UnknownReferenceError is returned when a binding targets a resource that is
// not (yet) part of the graph, or one of the wrong kind.
type UnknownReferenceError struct {
	Consumer string
	Field    string
	Target   string
	Reason   string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("unknown reference from %s.%s to %q: %s", e.Consumer, e.Field, e.Target, e.Reason)
}

// DuplicateNameError is returned when two descriptors share a logical name.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate resource name %q", e.Name)
}
