package resolver

import (
	"fmt"
	"maps"

	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/imamik/vectordb/internal/util/labels"
)

// Edge records that From must be ordered after To.
type Edge struct {
	From string
	To   string
	// Field is the forProvider key the edge was produced for, empty for ordering-only edges.
	Field string
}

func (e Edge) String() string {
	return fmt.Sprintf("%s -> %s", e.From, e.To)
}

// Resolution is the outcome of resolving one binding.
type Resolution struct {
	// Values are written into the consumer's spec.forProvider.
	Values map[string]any
	Edges  []Edge
}

type entry struct {
	kind   schema.GroupVersionKind
	labels map[string]string
}

// Resolver links descriptors to targets registered before them.
// Descriptors must be registered in build order; a reference to a name that is
// not registered yet is an error, which keeps every edge pointing backwards.
type Resolver struct {
	log     logr.Logger
	entries map[string]entry
	order   []string
}

// New creates an empty resolver.
func New(log logr.Logger) *Resolver {
	return &Resolver{
		log:     log,
		entries: make(map[string]entry),
	}
}

// Register makes name addressable by later bindings.
func (r *Resolver) Register(name string, kind schema.GroupVersionKind, lbls map[string]string) error {
	if name == "" {
		return fmt.Errorf("cannot register a descriptor without a name")
	}
	if _, exists := r.entries[name]; exists {
		return &DuplicateNameError{Name: name}
	}
	r.entries[name] = entry{kind: kind, labels: maps.Clone(lbls)}
	r.order = append(r.order, name)
	return nil
}

// Registered reports whether name has been registered.
func (r *Resolver) Registered(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Names returns registered names in registration order.
func (r *Resolver) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Bind resolves a reference by logical name.
func (r *Resolver) Bind(consumer string, field Field, target Named) (Resolution, error) {
	if err := r.checkNamed(consumer, field, target); err != nil {
		return Resolution{}, err
	}
	res := Resolution{Edges: []Edge{{From: consumer, To: target.Name, Field: field.edgeKey(field.RefKey())}}}
	if !field.IsOrdering() {
		res.Values = map[string]any{field.RefKey(): r.refValue(field, target.Name)}
	}
	return res, nil
}

// BindBySelector resolves a reference by label match. At least one registered
// descriptor of the selector's kind must match; an edge is added to each match.
func (r *Resolver) BindBySelector(consumer string, field Field, sel Selector) (Resolution, error) {
	matches := r.match(sel)
	if len(matches) == 0 {
		return Resolution{}, &UnknownReferenceError{
			Consumer: consumer,
			Field:    field.SelectorKey(),
			Target:   sel.String(),
			Reason:   "selector matches no registered resource",
		}
	}
	res := Resolution{}
	for _, m := range matches {
		res.Edges = append(res.Edges, Edge{From: consumer, To: m, Field: field.edgeKey(field.SelectorKey())})
	}
	if !field.IsOrdering() {
		res.Values = map[string]any{field.SelectorKey(): selectorValue(sel.MatchLabels)}
	}
	return res, nil
}

// BindLiteral writes pre-existing identifiers. It never fails and adds no edges.
func (r *Resolver) BindLiteral(field Field, values ...string) Resolution {
	if field.IsOrdering() {
		return Resolution{}
	}
	if field.List {
		list := make([]any, 0, len(values))
		for _, v := range values {
			list = append(list, v)
		}
		return Resolution{Values: map[string]any{field.LiteralKey(): list}}
	}
	if len(values) == 0 {
		return Resolution{}
	}
	return Resolution{Values: map[string]any{field.LiteralKey(): values[0]}}
}

// Resolve dispatches a binding to the matching addressing mode.
// All refs of one binding must use the same mode.
func (r *Resolver) Resolve(consumer string, b Binding) (Resolution, error) {
	if len(b.Refs) == 0 {
		return Resolution{}, fmt.Errorf("binding %q of %s has no targets", b.Field.Name, consumer)
	}
	if b.Field.IsOrdering() {
		return r.resolveOrdering(consumer, b)
	}
	if !b.Field.List && len(b.Refs) > 1 {
		return Resolution{}, fmt.Errorf("scalar field %q of %s bound to %d targets", b.Field.Name, consumer, len(b.Refs))
	}

	switch first := b.Refs[0].(type) {
	case Literal:
		values := make([]string, 0, len(b.Refs))
		for _, ref := range b.Refs {
			lit, ok := ref.(Literal)
			if !ok {
				return Resolution{}, mixedModesError(consumer, b)
			}
			values = append(values, lit.Value)
		}
		return r.BindLiteral(b.Field, values...), nil

	case Named:
		if !b.Field.List {
			return r.Bind(consumer, b.Field, first)
		}
		out := Resolution{}
		list := make([]any, 0, len(b.Refs))
		for _, ref := range b.Refs {
			named, ok := ref.(Named)
			if !ok {
				return Resolution{}, mixedModesError(consumer, b)
			}
			if err := r.checkNamed(consumer, b.Field, named); err != nil {
				return Resolution{}, err
			}
			out.Edges = append(out.Edges, Edge{From: consumer, To: named.Name, Field: b.Field.RefKey()})
			list = append(list, map[string]any{"name": named.Name})
		}
		out.Values = map[string]any{b.Field.RefKey(): list}
		return out, nil

	case Selector:
		if !b.Field.List {
			return r.BindBySelector(consumer, b.Field, first)
		}
		// A list selector matches the whole group, so the written selector
		// keeps only the labels every target shares.
		common := maps.Clone(first.MatchLabels)
		for _, ref := range b.Refs[1:] {
			sel, ok := ref.(Selector)
			if !ok || sel.Kind != first.Kind {
				return Resolution{}, mixedModesError(consumer, b)
			}
			for k, v := range common {
				if sel.MatchLabels[k] != v {
					delete(common, k)
				}
			}
		}
		return r.BindBySelector(consumer, b.Field, Selector{MatchLabels: common, Kind: first.Kind})

	default:
		return Resolution{}, fmt.Errorf("unsupported reference %T in %s", first, consumer)
	}
}

// resolveOrdering collects the edges of an ordering-only binding. Literals
// point outside the graph and add nothing.
func (r *Resolver) resolveOrdering(consumer string, b Binding) (Resolution, error) {
	out := Resolution{}
	for _, ref := range b.Refs {
		var (
			res Resolution
			err error
		)
		switch t := ref.(type) {
		case Literal:
			continue
		case Named:
			res, err = r.Bind(consumer, b.Field, t)
		case Selector:
			res, err = r.BindBySelector(consumer, b.Field, t)
		default:
			err = fmt.Errorf("unsupported reference %T in %s", ref, consumer)
		}
		if err != nil {
			return Resolution{}, err
		}
		out.Edges = append(out.Edges, res.Edges...)
	}
	return out, nil
}

func (r *Resolver) checkNamed(consumer string, field Field, target Named) error {
	e, ok := r.entries[target.Name]
	if !ok {
		r.log.V(1).Info("reference to unregistered resource", "consumer", consumer, "target", target.Name)
		return &UnknownReferenceError{
			Consumer: consumer,
			Field:    field.RefKey(),
			Target:   target.Name,
			Reason:   "not registered",
		}
	}
	if !target.Kind.Empty() && e.kind != target.Kind {
		return &UnknownReferenceError{
			Consumer: consumer,
			Field:    field.RefKey(),
			Target:   target.Name,
			Reason:   fmt.Sprintf("expected kind %s, registered as %s", target.Kind.Kind, e.kind.Kind),
		}
	}
	return nil
}

func (r *Resolver) refValue(field Field, name string) any {
	if field.SecretKey != "" {
		v := map[string]any{"name": name, "key": field.SecretKey}
		if field.Namespace != "" {
			v["namespace"] = field.Namespace
		}
		return v
	}
	if field.List {
		return []any{map[string]any{"name": name}}
	}
	return map[string]any{"name": name}
}

func (r *Resolver) match(sel Selector) []string {
	var out []string
	for _, name := range r.order {
		e := r.entries[name]
		if !sel.Kind.Empty() && e.kind != sel.Kind {
			continue
		}
		if labels.Matches(sel.MatchLabels, e.labels) {
			out = append(out, name)
		}
	}
	return out
}

func selectorValue(matchLabels map[string]string) map[string]any {
	ml := make(map[string]any, len(matchLabels))
	for k, v := range matchLabels {
		ml[k] = v
	}
	return map[string]any{"matchLabels": ml}
}

func mixedModesError(consumer string, b Binding) error {
	return fmt.Errorf("binding %q of %s mixes addressing modes or kinds", b.Field.Name, consumer)
}
