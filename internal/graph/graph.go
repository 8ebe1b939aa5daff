package graph

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
	"github.com/samber/lo"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/resolver"
	"github.com/imamik/vectordb/internal/util/labels"
)

const redacted = "<redacted>"

// Graph is the verified, immutable set of descriptors and their dependency edges.
type Graph struct {
	descriptors []*descriptor.Descriptor
	index       map[string]int
	edges       []resolver.Edge
	dag         *DirectedAcyclicGraph[string]
}

// OrderingError is returned when an edge points forward in build order.
type OrderingError struct {
	Edge resolver.Edge
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("dependency %s points to a resource built later", e.Edge)
}

// New verifies descriptors and edges and freezes them into a graph.
//
// Descriptors must be in build order. New checks that names are unique, that
// every edge points at an earlier descriptor, that the edges are acyclic, and
// that every named or selector binding resolves inside the graph and is backed
// by an edge.
func New(descs []*descriptor.Descriptor, edges []resolver.Edge) (*Graph, error) {
	g := &Graph{
		descriptors: make([]*descriptor.Descriptor, 0, len(descs)),
		index:       make(map[string]int, len(descs)),
		edges:       slices.Clone(edges),
		dag:         NewDirectedAcyclicGraph[string](),
	}

	for i, d := range descs {
		if d.Name == "" {
			return nil, fmt.Errorf("descriptor %d of kind %s has no name", i, d.Kind.Kind)
		}
		if _, dup := g.index[d.Name]; dup {
			return nil, &resolver.DuplicateNameError{Name: d.Name}
		}
		g.index[d.Name] = i
		g.descriptors = append(g.descriptors, d.DeepCopy())
		if err := g.dag.AddVertex(d.Name, i); err != nil {
			return nil, err
		}
	}

	deps := make(map[string][]string)
	for _, e := range g.edges {
		from, ok := g.index[e.From]
		if !ok {
			return nil, fmt.Errorf("edge %s: unknown consumer %q", e, e.From)
		}
		to, ok := g.index[e.To]
		if !ok {
			return nil, &resolver.UnknownReferenceError{Consumer: e.From, Field: e.Field, Target: e.To, Reason: "not part of the graph"}
		}
		if to >= from {
			return nil, &OrderingError{Edge: e}
		}
		deps[e.From] = append(deps[e.From], e.To)
	}
	for _, d := range g.descriptors {
		if err := g.dag.AddDependencies(d.Name, lo.Uniq(deps[d.Name])); err != nil {
			return nil, err
		}
	}

	if err := g.verifyClosure(); err != nil {
		return nil, err
	}
	return g, nil
}

// verifyClosure checks that every named or selector binding targets a
// descriptor of the expected kind inside the graph and is backed by an edge.
func (g *Graph) verifyClosure() error {
	for _, d := range g.descriptors {
		for _, b := range d.Refs {
			for _, ref := range b.Refs {
				var targets []string
				switch r := ref.(type) {
				case resolver.Literal:
					continue
				case resolver.Named:
					i, ok := g.index[r.Name]
					if !ok {
						return g.unresolved(d, b, ref, "not part of the graph")
					}
					if !r.Kind.Empty() && g.descriptors[i].Kind != r.Kind {
						return g.unresolved(d, b, ref, "kind mismatch")
					}
					targets = []string{r.Name}
				case resolver.Selector:
					targets = g.selectorTargets(r)
					if len(targets) == 0 {
						return g.unresolved(d, b, ref, "selector matches nothing")
					}
				default:
					return g.unresolved(d, b, ref, fmt.Sprintf("unsupported reference %T", ref))
				}
				for _, target := range targets {
					if !g.dependsOn(d.Name, target) {
						return g.unresolved(d, b, ref, "reference has no dependency edge to "+target)
					}
				}
			}
		}
	}
	return nil
}

func (g *Graph) unresolved(d *descriptor.Descriptor, b resolver.Binding, ref resolver.Ref, reason string) error {
	return &resolver.UnknownReferenceError{Consumer: d.Name, Field: b.Field.Name, Target: ref.String(), Reason: reason}
}

func (g *Graph) selectorTargets(sel resolver.Selector) []string {
	var out []string
	for _, d := range g.descriptors {
		if !sel.Kind.Empty() && d.Kind != sel.Kind {
			continue
		}
		if labels.Matches(sel.MatchLabels, d.Labels) {
			out = append(out, d.Name)
		}
	}
	return out
}

func (g *Graph) dependsOn(from, to string) bool {
	v, ok := g.dag.Vertices[from]
	if !ok {
		return false
	}
	_, ok = v.DependsOn[to]
	return ok
}

// Len returns the number of descriptors.
func (g *Graph) Len() int {
	return len(g.descriptors)
}

// Names returns descriptor names in build order.
func (g *Graph) Names() []string {
	return lo.Map(g.descriptors, func(d *descriptor.Descriptor, _ int) string { return d.Name })
}

// Descriptors returns copies of the descriptors in build order.
func (g *Graph) Descriptors() []*descriptor.Descriptor {
	return lo.Map(g.descriptors, func(d *descriptor.Descriptor, _ int) *descriptor.Descriptor { return d.DeepCopy() })
}

// Get returns a copy of the named descriptor.
func (g *Graph) Get(name string) (*descriptor.Descriptor, bool) {
	i, ok := g.index[name]
	if !ok {
		return nil, false
	}
	return g.descriptors[i].DeepCopy(), true
}

// Edges returns the dependency edges.
func (g *Graph) Edges() []resolver.Edge {
	return slices.Clone(g.edges)
}

// Dependencies returns the sorted names the given descriptor depends on.
func (g *Graph) Dependencies(name string) []string {
	v, ok := g.dag.Vertices[name]
	if !ok {
		return nil
	}
	deps := lo.Keys(v.DependsOn)
	slices.Sort(deps)
	return deps
}

// Layers groups descriptor names into rounds that can be created concurrently.
func (g *Graph) Layers() [][]string {
	layers, err := g.dag.Layers()
	if err != nil {
		// New rejects cycles, so a frozen graph always sorts.
		panic(err)
	}
	return layers
}

// Resources renders every descriptor as an unstructured object keyed by name.
func (g *Graph) Resources() map[string]*unstructured.Unstructured {
	out := make(map[string]*unstructured.Unstructured, len(g.descriptors))
	for _, d := range g.descriptors {
		out[d.Name] = d.Object()
	}
	return out
}

// Fingerprint is a stable hash of the rendered graph. Sensitive data is
// redacted first, so regenerated credentials do not change it.
func (g *Graph) Fingerprint() string {
	h := xxhash.New()
	for _, d := range g.descriptors {
		obj := Redact(d).Object
		b, err := json.Marshal(obj)
		if err != nil {
			// Payloads are JSON-compatible by construction.
			panic(err)
		}
		_, _ = h.Write(b)
		_, _ = h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// Redact renders d with secret data replaced.
func Redact(d *descriptor.Descriptor) *unstructured.Unstructured {
	obj := d.Object()
	if !d.Sensitive {
		return obj
	}
	for _, field := range []string{"data", "stringData"} {
		values, found, _ := unstructured.NestedMap(obj.Object, field)
		if !found {
			continue
		}
		for k := range values {
			values[k] = redacted
		}
		_ = unstructured.SetNestedMap(obj.Object, values, field)
	}
	return obj
}
