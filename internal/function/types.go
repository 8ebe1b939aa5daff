package function

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// Severity classifies a result entry.
type Severity string

const (
	// SeverityFatal aborts the host's reconciliation pass.
	SeverityFatal Severity = "Fatal"
	// SeverityWarning is surfaced to the user without failing the pass.
	SeverityWarning Severity = "Warning"
	// SeverityNormal is informational.
	SeverityNormal Severity = "Normal"
)

// Request is one GenerateDesiredState call.
type Request struct {
	Meta     RequestMeta `json:"meta,omitempty"`
	Observed State       `json:"observed"`
	// Desired is the prior desired state. It is ignored; the host diffs against it.
	Desired State `json:"desired,omitempty"`
}

// RequestMeta identifies the request.
type RequestMeta struct {
	Tag string `json:"tag,omitempty"`
}

// State is a composite resource and its composed resources.
type State struct {
	Composite Resource            `json:"composite,omitempty"`
	Resources map[string]Resource `json:"resources,omitempty"`
}

// Resource wraps one Kubernetes object.
type Resource struct {
	Resource map[string]any `json:"resource,omitempty"`
}

// Response is the outcome of a GenerateDesiredState call. Either Desired holds
// the complete graph or Results holds a single fatal entry.
type Response struct {
	Meta    ResponseMeta `json:"meta"`
	Desired Desired      `json:"desired"`
	Results []Result     `json:"results,omitempty"`
}

// ResponseMeta echoes the request tag and tells the host how long the response stays valid.
type ResponseMeta struct {
	Tag string          `json:"tag,omitempty"`
	TTL metav1.Duration `json:"ttl"`
	// Fingerprint identifies the desired state. Secret data does not contribute.
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Desired holds the generated resources keyed by logical name.
type Desired struct {
	Resources map[string]Resource `json:"resources,omitempty"`
}

// Result is a structured message for the host.
type Result struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Fatal reports whether any result is fatal.
func (r *Response) Fatal() bool {
	for _, res := range r.Results {
		if res.Severity == SeverityFatal {
			return true
		}
	}
	return false
}
