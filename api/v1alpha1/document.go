package v1alpha1

import (
	"fmt"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
)

// Document converts the composite into the loosely-typed form read by the normalizer.
// Missing type information is filled in from Scheme. Empty status and
// server-populated metadata are dropped.
func (in *VectorDatabase) Document() (map[string]any, error) {
	obj := in.DeepCopy()
	if obj.GetObjectKind().GroupVersionKind().Empty() {
		gvks, _, err := Scheme.ObjectKinds(obj)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve kind of %s: %w", in.Name, err)
		}
		obj.SetGroupVersionKind(gvks[0])
	}

	doc, err := runtime.DefaultUnstructuredConverter.ToUnstructured(obj)
	if err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", in.Name, err)
	}
	unstructured.RemoveNestedField(doc, "metadata", "creationTimestamp")
	if status, ok := doc["status"].(map[string]any); ok && len(status) == 0 {
		delete(doc, "status")
	}
	return doc, nil
}
