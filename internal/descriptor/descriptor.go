package descriptor

import (
	"fmt"
	"maps"
	"reflect"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"

	"github.com/imamik/vectordb/internal/resolver"
	"github.com/imamik/vectordb/internal/util/labels"
)

// Annotation keys written on every descriptor.
const (
	AnnotationDependsOn    = "crossplane.io/depends-on"
	AnnotationExternalName = "crossplane.io/external-name"
	AnnotationBuildOrder   = "vectordb.io/build-order"
)

// Descriptor is one resource of desired state before it is serialized.
//
// Payload holds every top-level field other than apiVersion, kind and metadata,
// normally a single "spec" entry. Values are JSON-compatible (string, bool,
// int64, float64, []any, map[string]any) so the payload can be deep copied
// and handed to unstructured helpers.
type Descriptor struct {
	Name        string
	Namespace   string
	Kind        schema.GroupVersionKind
	Labels      map[string]string
	Annotations map[string]string
	Payload     map[string]any

	// Refs are resolved into Payload when the graph is linked.
	Refs []resolver.Binding
	// Sensitive descriptors have their data redacted from logs and fingerprints.
	Sensitive bool
}

// New creates a descriptor. The payload is normalised to JSON-compatible values.
func New(name string, kind schema.GroupVersionKind, lbls map[string]string, payload map[string]any) *Descriptor {
	return &Descriptor{
		Name:        name,
		Kind:        kind,
		Labels:      maps.Clone(lbls),
		Annotations: map[string]string{},
		Payload:     JSONMap(payload),
	}
}

// Target exposes the descriptor to reference policies.
func (d *Descriptor) Target() resolver.Target {
	return resolver.Target{
		Name:     d.Name,
		Kind:     d.Kind,
		Identity: labels.Identity(d.Labels),
	}
}

// ForProvider returns spec.forProvider, or nil when the descriptor has none.
func (d *Descriptor) ForProvider() map[string]any {
	fp, found, err := unstructured.NestedMap(d.Payload, "spec", "forProvider")
	if err != nil || !found {
		return nil
	}
	return fp
}

// SetForProvider writes value at spec.forProvider.<key>.
func (d *Descriptor) SetForProvider(key string, value any) error {
	if err := unstructured.SetNestedField(d.Payload, JSONValue(value), "spec", "forProvider", key); err != nil {
		return fmt.Errorf("failed to set %s on %s: %w", key, d.Name, err)
	}
	return nil
}

// DeepCopy returns an independent copy.
func (d *Descriptor) DeepCopy() *Descriptor {
	out := &Descriptor{
		Name:        d.Name,
		Namespace:   d.Namespace,
		Kind:        d.Kind,
		Labels:      maps.Clone(d.Labels),
		Annotations: maps.Clone(d.Annotations),
		Payload:     runtime.DeepCopyJSON(d.Payload),
		Sensitive:   d.Sensitive,
	}
	if d.Refs != nil {
		out.Refs = make([]resolver.Binding, len(d.Refs))
		copy(out.Refs, d.Refs)
	}
	return out
}

// Object renders the descriptor as an unstructured Kubernetes object.
func (d *Descriptor) Object() *unstructured.Unstructured {
	obj := &unstructured.Unstructured{Object: runtime.DeepCopyJSON(d.Payload)}
	if obj.Object == nil {
		obj.Object = map[string]any{}
	}
	obj.SetGroupVersionKind(d.Kind)
	obj.SetName(d.Name)
	if d.Namespace != "" {
		obj.SetNamespace(d.Namespace)
	}
	if len(d.Labels) > 0 {
		obj.SetLabels(maps.Clone(d.Labels))
	}
	if len(d.Annotations) > 0 {
		obj.SetAnnotations(maps.Clone(d.Annotations))
	}
	return obj
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s/%s", d.Kind.Kind, d.Name)
}

// JSONMap normalises a map to JSON-compatible values.
func JSONMap(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	out, _ := JSONValue(in).(map[string]any)
	return out
}

// JSONValue converts common Go values into the forms accepted by
// runtime.DeepCopyJSONValue: integers become int64, string slices and maps
// become []any and map[string]any.
func JSONValue(v any) any {
	switch t := v.(type) {
	case nil, string, bool, int64, float64:
		return t
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = JSONValue(e)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = e
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = JSONValue(e)
		}
		return out
	case []string:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = e
		}
		return out
	case []map[string]any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = JSONValue(e)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		// #nosec G115
		return int64(rv.Uint())
	case reflect.Bool:
		return rv.Bool()
	default:
		panic(fmt.Sprintf("descriptor: unsupported payload value of type %T", v))
	}
}
