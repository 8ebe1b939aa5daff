package graph

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Vertex is a node of the dependency graph.
type Vertex[T cmp.Ordered] struct {
	ID T
	// Order breaks ties between vertices that become ready in the same round.
	Order int
	// DependsOn holds the vertices that must come before this one.
	DependsOn map[T]struct{}
}

// DirectedAcyclicGraph is a dependency graph that rejects cycles as edges are added.
type DirectedAcyclicGraph[T cmp.Ordered] struct {
	Vertices map[T]*Vertex[T]
}

// NewDirectedAcyclicGraph creates an empty graph.
func NewDirectedAcyclicGraph[T cmp.Ordered]() *DirectedAcyclicGraph[T] {
	return &DirectedAcyclicGraph[T]{Vertices: make(map[T]*Vertex[T])}
}

// AddVertex adds a vertex with the given tie-break order.
func (d *DirectedAcyclicGraph[T]) AddVertex(id T, order int) error {
	if _, exists := d.Vertices[id]; exists {
		return fmt.Errorf("vertex %v already exists", id)
	}
	d.Vertices[id] = &Vertex[T]{ID: id, Order: order, DependsOn: make(map[T]struct{})}
	return nil
}

// CycleError is returned when an edge would close a cycle.
type CycleError[T cmp.Ordered] struct {
	Cycle []T
}

func (e *CycleError[T]) Error() string {
	parts := make([]string, len(e.Cycle))
	for i, v := range e.Cycle {
		parts[i] = fmt.Sprint(v)
	}
	return fmt.Sprintf("graph contains a cycle: %s", strings.Join(parts, " -> "))
}

// AsCycleError returns err as a CycleError, or nil if it is not one.
func AsCycleError[T cmp.Ordered](err error) *CycleError[T] {
	var cycleErr *CycleError[T]
	if errors.As(err, &cycleErr) {
		return cycleErr
	}
	return nil
}

// AddDependencies records that from depends on every vertex in deps.
// The graph is left unchanged if any edge is invalid or would close a cycle.
func (d *DirectedAcyclicGraph[T]) AddDependencies(from T, deps []T) error {
	v, ok := d.Vertices[from]
	if !ok {
		return fmt.Errorf("vertex %v does not exist", from)
	}
	added := make([]T, 0, len(deps))
	for _, dep := range deps {
		if dep == from {
			d.rollback(v, added)
			return fmt.Errorf("vertex %v cannot depend on itself", from)
		}
		if _, ok := d.Vertices[dep]; !ok {
			d.rollback(v, added)
			return fmt.Errorf("dependency %v of %v does not exist", dep, from)
		}
		if _, exists := v.DependsOn[dep]; !exists {
			v.DependsOn[dep] = struct{}{}
			added = append(added, dep)
		}
	}
	if cyclic, cycle := d.hasCycle(); cyclic {
		d.rollback(v, added)
		return &CycleError[T]{Cycle: cycle}
	}
	return nil
}

func (d *DirectedAcyclicGraph[T]) rollback(v *Vertex[T], added []T) {
	for _, dep := range added {
		delete(v.DependsOn, dep)
	}
}

// TopologicalSort returns the vertices so that every vertex follows its
// dependencies. Vertices are emitted in rounds: each round takes every vertex
// whose dependencies are already emitted, sorted by Order.
func (d *DirectedAcyclicGraph[T]) TopologicalSort() ([]T, error) {
	layers, err := d.Layers()
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(d.Vertices))
	for _, layer := range layers {
		out = append(out, layer...)
	}
	return out, nil
}

// Layers groups vertices into rounds of the topological sort.
func (d *DirectedAcyclicGraph[T]) Layers() ([][]T, error) {
	if cyclic, cycle := d.hasCycle(); cyclic {
		return nil, &CycleError[T]{Cycle: cycle}
	}

	remaining := make(map[T]int, len(d.Vertices))
	for id, v := range d.Vertices {
		remaining[id] = len(v.DependsOn)
	}
	dependents := make(map[T][]T, len(d.Vertices))
	for id, v := range d.Vertices {
		for dep := range v.DependsOn {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var layers [][]T
	ready := d.sortByOrder(d.collect(func(id T) bool { return remaining[id] == 0 }))
	for len(ready) > 0 {
		layers = append(layers, ready)
		var next []T
		for _, id := range ready {
			for _, dependent := range dependents[id] {
				remaining[dependent]--
				if remaining[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}
		ready = d.sortByOrder(next)
	}
	return layers, nil
}

func (d *DirectedAcyclicGraph[T]) collect(keep func(T) bool) []T {
	var out []T
	for id := range d.Vertices {
		if keep(id) {
			out = append(out, id)
		}
	}
	return out
}

func (d *DirectedAcyclicGraph[T]) sortByOrder(ids []T) []T {
	slices.SortFunc(ids, func(a, b T) int {
		if c := cmp.Compare(d.Vertices[a].Order, d.Vertices[b].Order); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ids
}

// hasCycle runs a depth-first search and returns the first cycle found.
func (d *DirectedAcyclicGraph[T]) hasCycle() (bool, []T) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[T]int, len(d.Vertices))
	var stack []T
	var cycle []T

	var visit func(id T) bool
	visit = func(id T) bool {
		state[id] = visiting
		stack = append(stack, id)
		deps := make([]T, 0, len(d.Vertices[id].DependsOn))
		for dep := range d.Vertices[id].DependsOn {
			deps = append(deps, dep)
		}
		slices.Sort(deps)
		for _, dep := range deps {
			switch state[dep] {
			case visiting:
				start := slices.Index(stack, dep)
				cycle = append(slices.Clone(stack[start:]), dep)
				return true
			case unvisited:
				if visit(dep) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[id] = done
		return false
	}

	ids := d.sortByOrder(d.collect(func(T) bool { return true }))
	for _, id := range ids {
		if state[id] == unvisited && visit(id) {
			return true, cycle
		}
	}
	return false, nil
}
