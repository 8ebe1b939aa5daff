package builders

import (
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/resolver"
	"github.com/imamik/vectordb/internal/util/labels"
)

// noIndex marks singleton resources.
const noIndex = -1

// Tag keys written on every managed resource.
const (
	TagName        = "Name"
	TagApp         = "App"
	TagEnvironment = "Environment"
	TagType        = "Type"
)

// resource describes the identity of one managed descriptor.
type resource struct {
	kind      schema.GroupVersionKind
	name      string
	component string
	tier      string
	index     int
	// externalName is the cloud-side name, for kinds whose name is chosen by the caller.
	externalName string
	// global resources such as IAM carry no region.
	global bool
}

// managed creates a provider managed resource with spec.forProvider set to
// forProvider plus the standard tags and, unless global, the region.
func managed(cfg *config.Config, r resource, forProvider map[string]any, refs ...resolver.Binding) *descriptor.Descriptor {
	lb := labels.NewLabelBuilder(cfg.Claim, cfg.Environment).
		WithComponent(r.component).
		WithKind(r.kind.Kind).
		WithTier(r.tier)
	if r.index != noIndex {
		lb.WithIndex(r.index)
	}

	fp := make(map[string]any, len(forProvider)+2)
	for k, v := range forProvider {
		fp[k] = v
	}
	if !r.global {
		fp["region"] = cfg.Region
	}
	fp["tags"] = map[string]string{
		TagName:        r.name,
		TagApp:         labels.AppName,
		TagEnvironment: cfg.Environment,
		TagType:        r.tier,
	}

	d := descriptor.New(r.name, r.kind, lb.Build(), map[string]any{
		"spec": map[string]any{
			"forProvider":       fp,
			"providerConfigRef": map[string]any{"name": cfg.ProviderConfig},
		},
	})
	if r.externalName != "" {
		d.Annotations[descriptor.AnnotationExternalName] = r.externalName
	}
	d.Refs = refs
	return d
}
