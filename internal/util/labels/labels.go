package labels

import (
	"strconv"

	"github.com/iancoleman/strcase"
	k8slabels "k8s.io/apimachinery/pkg/labels"
)

// Standard label keys for desired-state resources.
const (
	// KeyClaim identifies which claim a resource belongs to
	KeyClaim = "vectordb.io/claim"

	// KeyEnvironment identifies the deployment environment (dev, staging, prod)
	KeyEnvironment = "vectordb.io/environment"

	// KeyComponent identifies the logical component within the claim (vpc, subnet, cluster, ...)
	KeyComponent = "vectordb.io/component"

	// KeyKind carries the resource kind in kebab case
	KeyKind = "vectordb.io/kind"

	// KeyIndex is the zero-based ordinal of zone and instance resources
	KeyIndex = "vectordb.io/index"

	// KeyTier groups resources by infrastructure tier (network, security, database, identity)
	KeyTier = "vectordb.io/tier"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "vectordb.io/managed-by"

	// Legacy keys still matched by existing compositions.
	LegacyKeyApp         = "app"
	LegacyKeyEnvironment = "environment"
	legacyKeyType        = "type"
)

// Tier values
const (
	TierNetwork  = "network"
	TierSecurity = "security"
	TierDatabase = "database"
	TierIdentity = "identity"
)

const (
	// AppName is the value of the legacy app label.
	AppName = "vectordb"
	// ManagedByGenerator marks resources rendered by this module.
	ManagedByGenerator = "vectordb-generator"
)

// identityKeys is the label subset that uniquely addresses a resource within one claim.
var identityKeys = []string{KeyClaim, KeyEnvironment, KeyComponent, KeyIndex}

// LabelBuilder provides a fluent interface for building resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with claim and environment pre-set.
// Sets both new and legacy labels for compatibility.
func NewLabelBuilder(claim, env string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyClaim:             claim,
			KeyEnvironment:       env,
			KeyManagedBy:         ManagedByGenerator,
			LegacyKeyApp:         AppName,
			LegacyKeyEnvironment: env,
		},
	}
}

// WithComponent adds the component label.
func (lb *LabelBuilder) WithComponent(component string) *LabelBuilder {
	lb.labels[KeyComponent] = component
	return lb
}

// WithKind adds the kind label, converted to kebab case ("RouteTableAssociation" becomes "route-table-association").
func (lb *LabelBuilder) WithKind(kind string) *LabelBuilder {
	lb.labels[KeyKind] = strcase.ToKebab(kind)
	return lb
}

// WithIndex adds the ordinal label.
func (lb *LabelBuilder) WithIndex(index int) *LabelBuilder {
	lb.labels[KeyIndex] = strconv.Itoa(index)
	return lb
}

// WithTier adds a tier label.
// Sets both new and legacy type labels for compatibility.
func (lb *LabelBuilder) WithTier(tier string) *LabelBuilder {
	lb.labels[KeyTier] = tier
	lb.labels[legacyKeyType] = tier
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	result := make(map[string]string, len(lb.labels))
	for k, v := range lb.labels {
		result[k] = v
	}
	return result
}

// Identity returns the subset of labels that addresses a single resource.
// Keys absent from the input are omitted.
func Identity(all map[string]string) map[string]string {
	out := make(map[string]string, len(identityKeys))
	for _, k := range identityKeys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Matches reports whether the labels satisfy every key of matchLabels.
// An empty matchLabels matches nothing.
func Matches(matchLabels, all map[string]string) bool {
	if len(matchLabels) == 0 {
		return false
	}
	return k8slabels.SelectorFromSet(matchLabels).Matches(k8slabels.Set(all))
}

// SelectorForClaim returns a label selector string for all resources of a claim in one environment.
func SelectorForClaim(claim, env string) string {
	return k8slabels.SelectorFromSet(k8slabels.Set{KeyClaim: claim, KeyEnvironment: env}).String()
}
