package function

import (
	"context"
	"fmt"
	"time"

	"github.com/go-logr/logr"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"github.com/imamik/vectordb/internal/assembler"
	"github.com/imamik/vectordb/internal/util/retry"
)

// DefaultTTL is how long the host may cache a response.
const DefaultTTL = 60 * time.Second

// Assembler builds a descriptor graph from a composite resource.
type Assembler interface {
	Assemble(ctx context.Context, composite map[string]any) (*assembler.Result, error)
}

// Runner serves GenerateDesiredState calls.
type Runner struct {
	assembler Assembler
	log       logr.Logger
	ttl       time.Duration
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) RunnerOption {
	return func(r *Runner) {
		r.ttl = ttl
	}
}

// NewRunner creates a runner around a.
func NewRunner(a Assembler, log logr.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{assembler: a, log: log, ttl: DefaultTTL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GenerateDesiredState renders the desired state for the observed composite.
// Failures never escape as errors: they are reported as a single fatal result
// so the host decides how to proceed.
func (r *Runner) GenerateDesiredState(ctx context.Context, req *Request) *Response {
	log := r.log.WithValues("tag", req.Meta.Tag)
	rsp := &Response{
		Meta: ResponseMeta{
			Tag: req.Meta.Tag,
			TTL: metav1.Duration{Duration: r.ttl},
		},
	}

	res, err := r.assembler.Assemble(ctx, req.Observed.Composite.Resource)
	if err != nil {
		log.Error(err, "failed to generate desired state")
		rsp.Results = []Result{{Severity: SeverityFatal, Message: failureMessage(err)}}
		return rsp
	}

	rsp.Meta.Fingerprint = res.Graph.Fingerprint()
	rsp.Desired.Resources = make(map[string]Resource, res.Graph.Len())
	for name, obj := range res.Graph.Resources() {
		rsp.Desired.Resources[name] = Resource{Resource: obj.Object}
	}
	for _, w := range res.Warnings {
		rsp.Results = append(rsp.Results, Result{Severity: SeverityWarning, Message: w})
	}
	rsp.Results = append(rsp.Results, Result{
		Severity: SeverityNormal,
		Message:  fmt.Sprintf("desired state contains %d resources", res.Graph.Len()),
	})

	log.Info("generated desired state", "resources", res.Graph.Len(), "fingerprint", rsp.Meta.Fingerprint)
	return rsp
}

func failureMessage(err error) string {
	if retry.IsFatal(err) {
		return "internal error, not retryable: " + err.Error()
	}
	return err.Error()
}
