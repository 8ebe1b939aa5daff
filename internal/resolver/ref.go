package resolver

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Ref addresses another resource from a consuming field.
// The set of implementations is closed: Literal, Named and Selector.
type Ref interface {
	isRef()
	String() string
}

// Literal is a pre-existing cloud identifier supplied by the user.
// It produces no dependency edge.
type Literal struct {
	Value string
}

// Named points at a descriptor in the same graph by logical name.
type Named struct {
	Name string
	Kind schema.GroupVersionKind
}

// Selector points at descriptors in the same graph by label match.
type Selector struct {
	MatchLabels map[string]string
	Kind        schema.GroupVersionKind
}

func (Literal) isRef()  {}
func (Named) isRef()    {}
func (Selector) isRef() {}

func (l Literal) String() string { return fmt.Sprintf("literal(%s)", l.Value) }
func (n Named) String() string   { return fmt.Sprintf("%s/%s", n.Kind.Kind, n.Name) }

func (s Selector) String() string {
	keys := slices.Sorted(maps.Keys(s.MatchLabels))
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+s.MatchLabels[k])
	}
	return fmt.Sprintf("%s{%s}", s.Kind.Kind, strings.Join(pairs, ","))
}

// Field describes where a resolved reference is written inside spec.forProvider.
//
// For a plain field named "vpcId" the literal form is written to "vpcId", the
// named form to "vpcIdRef" and the selector form to "vpcIdSelector". List fields
// pluralise: "subnetIds", "subnetIdRefs", "subnetIdSelector".
type Field struct {
	Name string
	List bool
	// SecretKey marks a secret key selector field. The named form is written
	// to Name itself as {name, namespace, key}.
	SecretKey string
	Namespace string
}

// LiteralKey is the key used for pre-existing identifiers.
func (f Field) LiteralKey() string {
	if f.List {
		return f.Name + "s"
	}
	return f.Name
}

// RefKey is the key used for references by name.
func (f Field) RefKey() string {
	switch {
	case f.SecretKey != "":
		return f.Name
	case f.List:
		return f.Name + "Refs"
	default:
		return f.Name + "Ref"
	}
}

// SelectorKey is the key used for references by label.
func (f Field) SelectorKey() string {
	return f.Name + "Selector"
}

// IsOrdering reports whether the field writes nothing and only orders the consumer after its targets.
func (f Field) IsOrdering() bool {
	return f.Name == ""
}

func (f Field) edgeKey(key string) string {
	if f.IsOrdering() {
		return ""
	}
	return key
}

// Binding ties a field of the consuming descriptor to one or more targets.
type Binding struct {
	Field Field
	Refs  []Ref
}

// Bind builds a binding for a scalar field.
func Bind(field Field, ref Ref) Binding {
	return Binding{Field: field, Refs: []Ref{ref}}
}

// BindAll builds a binding for a list field.
func BindAll(field Field, refs ...Ref) Binding {
	field.List = true
	return Binding{Field: field, Refs: refs}
}

// After builds an ordering-only binding: the consumer is ordered after every
// target without any field being written.
func After(refs ...Ref) Binding {
	return Binding{Refs: refs}
}

// Target is what a registered descriptor exposes to reference policies.
type Target struct {
	Name     string
	Kind     schema.GroupVersionKind
	Identity map[string]string
}

// Mode selects how references between generated resources are addressed.
type Mode string

const (
	// ModeReference addresses targets by logical name.
	ModeReference Mode = "reference"
	// ModeSelector addresses targets by their identity labels.
	ModeSelector Mode = "selector"
)

// Policy turns targets into references according to the configured mode.
type Policy struct {
	Mode Mode
}

// To returns a reference to t.
func (p Policy) To(t Target) Ref {
	if p.Mode == ModeSelector {
		return Selector{MatchLabels: maps.Clone(t.Identity), Kind: t.Kind}
	}
	return Named{Name: t.Name, Kind: t.Kind}
}

// ToAll returns references to every target, preserving order.
func (p Policy) ToAll(targets ...Target) []Ref {
	refs := make([]Ref, 0, len(targets))
	for _, t := range targets {
		refs = append(refs, p.To(t))
	}
	return refs
}

// Literals wraps pre-existing identifiers.
func Literals(values ...string) []Ref {
	refs := make([]Ref, 0, len(values))
	for _, v := range values {
		refs = append(refs, Literal{Value: v})
	}
	return refs
}
