package assembler

import (
	"context"
	"errors"
	"time"

	"github.com/go-logr/logr"

	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/graph"
	"github.com/imamik/vectordb/internal/util/keygen"
	"github.com/imamik/vectordb/internal/util/netutil"
)

// Assembler turns an observed composite resource into a verified descriptor graph.
type Assembler struct {
	log       logr.Logger
	observer  Observer
	passwords keygen.Generator
	phases    []Phase
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. Events go to the same logger unless an observer is set.
func WithLogger(log logr.Logger) Option {
	return func(a *Assembler) {
		a.log = log
	}
}

// WithObserver sets the event observer.
func WithObserver(o Observer) Option {
	return func(a *Assembler) {
		a.observer = o
	}
}

// WithPasswordGenerator replaces the master password generator.
func WithPasswordGenerator(g keygen.Generator) Option {
	return func(a *Assembler) {
		a.passwords = g
	}
}

// New creates an Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		log:       logr.Discard(),
		passwords: keygen.DefaultGenerator,
		phases:    DefaultPhases(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.observer == nil {
		a.observer = NewLogObserver(a.log)
	}
	return a
}

// Result is the outcome of a successful assembly.
type Result struct {
	Graph  *graph.Graph
	Config *config.Config
	// Blocks are the database subnets allocated from a new network.
	Blocks []netutil.AddressBlock
	// Warnings report deprecated settings found in the input.
	Warnings []string
	// States traces the state machine from Initializing to Done.
	States []State
}

// Assemble normalizes the composite, allocates subnets, builds every
// descriptor and links them into a graph. Either the whole graph is returned
// or an error; there is no partial result.
//
// Assembly is synchronous and never waits on ctx.
func (a *Assembler) Assemble(ctx context.Context, composite map[string]any) (*Result, error) {
	start := time.Now()
	actx := &Context{
		Context:   ctx,
		Log:       a.log,
		Observer:  a.observer,
		Input:     composite,
		passwords: a.passwords,
	}

	states, err := RunPhases(actx, a.phases)
	if err != nil {
		failedAt := StateFailed
		var phaseErr *PhaseError
		if errors.As(err, &phaseErr) {
			failedAt = phaseErr.State
		}
		recordRunMetric(resultFailed, failedAt, time.Since(start).Seconds())
		return nil, err
	}

	recordRunMetric(resultSuccess, StateDone, time.Since(start).Seconds())
	for _, d := range actx.Built {
		recordDescriptorMetric(d.Kind.Kind)
	}
	a.log.V(1).Info("desired state assembled",
		"resources", actx.Graph.Len(),
		"fingerprint", actx.Graph.Fingerprint(),
	)
	return &Result{
		Graph:    actx.Graph,
		Config:   actx.Config,
		Blocks:   actx.Blocks,
		Warnings: actx.Config.Deprecations,
		States:   states,
	}, nil
}

// Assemble runs a default Assembler.
func Assemble(ctx context.Context, composite map[string]any, opts ...Option) (*Result, error) {
	return New(opts...).Assemble(ctx, composite)
}
