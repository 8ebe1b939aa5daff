// Package v1alpha1 contains the VectorDatabase composite resource, group vectordb.io.
// +kubebuilder:object:generate=true
// +groupName=vectordb.io
package v1alpha1

import (
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

// Kind is the composite resource kind.
const Kind = "VectorDatabase"

var (
	// GroupVersion of the composite resource.
	GroupVersion = schema.GroupVersion{Group: "vectordb.io", Version: "v1alpha1"}

	// GroupVersionKind identifies a VectorDatabase document.
	GroupVersionKind = GroupVersion.WithKind(Kind)

	// SchemeBuilder registers the composite types.
	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	// AddToScheme adds VectorDatabase and VectorDatabaseList to a scheme.
	AddToScheme = SchemeBuilder.AddToScheme

	// Scheme knows the composite and the core types rendered next to it.
	Scheme = runtime.NewScheme()
)

func init() {
	SchemeBuilder.Register(&VectorDatabase{}, &VectorDatabaseList{})
	_ = clientgoscheme.AddToScheme(Scheme)
	_ = AddToScheme(Scheme)
}
