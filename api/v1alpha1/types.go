// Package v1alpha1 contains API Schema definitions for the vectordb.io v1alpha1 API group
// +kubebuilder:object:generate=true
// +groupName=vectordb.io
package v1alpha1

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// VectorDatabaseSpec defines the desired state of a pgvector-enabled Aurora cluster.
type VectorDatabaseSpec struct {
	// Region is the AWS region (e.g., us-west-2)
	// +optional
	Region string `json:"region,omitempty"`

	// VPCCIDR is the parent network of a newly created VPC
	// +kubebuilder:default="10.10.0.0/16"
	// +optional
	VPCCIDR string `json:"vpcCidr,omitempty"`

	// VPCID reuses an existing VPC instead of creating one
	// +optional
	VPCID string `json:"vpcId,omitempty"`

	// SubnetIDs are the existing subnets used with VPCID
	// +optional
	SubnetIDs []string `json:"subnetIds,omitempty"`

	// AZCount is the number of availability zones to spread subnets across
	// +kubebuilder:validation:Minimum=2
	// +kubebuilder:validation:Maximum=26
	// +optional
	AZCount *int32 `json:"azCount,omitempty"`

	// DatabaseSpec configures the Aurora PostgreSQL cluster
	DatabaseSpec `json:",inline"`

	// GeneratePassword creates a master password secret
	// +kubebuilder:default=true
	// +optional
	GeneratePassword *bool `json:"generatePassword,omitempty"`

	// PasswordSecretRef points at an existing master password when GeneratePassword is false
	// +optional
	PasswordSecretRef *SecretKeySelector `json:"passwordSecretRef,omitempty"`

	// EnvSuffix is appended to every resource name (dev, staging, prod)
	// +kubebuilder:default="dev"
	// +optional
	EnvSuffix string `json:"envSuffix,omitempty"`

	// ClaimName overrides the resource name prefix
	// +optional
	ClaimName string `json:"claimName,omitempty"`

	// ProviderConfigRef selects the AWS provider configuration
	// +optional
	ProviderConfigRef *ProviderConfigReference `json:"providerConfigRef,omitempty"`

	// ReferenceMode selects name references or label selectors between resources
	// +kubebuilder:validation:Enum=reference;selector
	// +optional
	ReferenceMode string `json:"referenceMode,omitempty"`

	// AllowedCIDRs may connect to PostgreSQL
	// +optional
	AllowedCIDRs []string `json:"allowedCidrs,omitempty"`

	// MonitoringInterval is the enhanced monitoring interval in seconds
	// +kubebuilder:validation:Enum=0;1;5;10;15;30;60
	// +optional
	MonitoringInterval *int32 `json:"monitoringInterval,omitempty"`

	// VectorExtension preloads the vector library through parameter groups
	// +kubebuilder:default=true
	// +optional
	VectorExtension *bool `json:"vectorExtension,omitempty"`
}

// DatabaseSpec defines the Aurora cluster and instance settings.
type DatabaseSpec struct {
	// ClusterName is the AWS cluster identifier
	// +optional
	ClusterName string `json:"clusterName,omitempty"`

	// +kubebuilder:default="16.6"
	// +optional
	EngineVersion string `json:"engineVersion,omitempty"`

	// MinCapacity is the Serverless v2 floor in ACUs, in 0.5 steps
	// +optional
	MinCapacity string `json:"minCapacity,omitempty"`

	// MaxCapacity is the Serverless v2 ceiling in ACUs, in 0.5 steps
	// +optional
	MaxCapacity string `json:"maxCapacity,omitempty"`

	// +kubebuilder:default="vectordb"
	// +optional
	DatabaseName string `json:"databaseName,omitempty"`

	// +kubebuilder:default="postgres"
	// +optional
	MasterUsername string `json:"masterUsername,omitempty"`

	// +kubebuilder:validation:Minimum=1
	// +kubebuilder:validation:Maximum=35
	// +optional
	BackupRetentionPeriod *int32 `json:"backupRetentionPeriod,omitempty"`

	// BackupWindow in UTC, hh:mm-hh:mm
	// +optional
	BackupWindow string `json:"backupWindow,omitempty"`

	// MaintenanceWindow in UTC, ddd:hh:mm-ddd:hh:mm
	// +optional
	MaintenanceWindow string `json:"maintenanceWindow,omitempty"`

	// +kubebuilder:default=true
	// +optional
	DeletionProtection *bool `json:"deletionProtection,omitempty"`

	// +kubebuilder:validation:Minimum=1
	// +optional
	InstanceCount *int32 `json:"instanceCount,omitempty"`

	// +kubebuilder:default="db.serverless"
	// +optional
	InstanceClass string `json:"instanceClass,omitempty"`

	// +optional
	PubliclyAccessible *bool `json:"publiclyAccessible,omitempty"`
}

// SecretKeySelector selects a key of a Secret.
type SecretKeySelector struct {
	Name      string `json:"name"`
	Namespace string `json:"namespace,omitempty"`
	Key       string `json:"key,omitempty"`
}

// ProviderConfigReference names a provider configuration.
type ProviderConfigReference struct {
	Name string `json:"name"`
}

// VectorDatabaseStatus defines the observed state of a VectorDatabase.
type VectorDatabaseStatus struct {
	// Fingerprint of the last rendered desired state
	// +optional
	Fingerprint string `json:"fingerprint,omitempty"`

	// Resources is the number of rendered resources
	// +optional
	Resources int32 `json:"resources,omitempty"`

	// Conditions represent the latest available observations
	// +optional
	Conditions []metav1.Condition `json:"conditions,omitempty"`
}

// +kubebuilder:object:root=true
// +kubebuilder:subresource:status
// +kubebuilder:resource:shortName=vdb
// +kubebuilder:printcolumn:name="Region",type="string",JSONPath=".spec.region"
// +kubebuilder:printcolumn:name="Resources",type="integer",JSONPath=".status.resources"
// +kubebuilder:printcolumn:name="Age",type="date",JSONPath=".metadata.creationTimestamp"

// VectorDatabase is the Schema for the vectordatabases API.
type VectorDatabase struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   VectorDatabaseSpec   `json:"spec,omitempty"`
	Status VectorDatabaseStatus `json:"status,omitempty"`
}

// +kubebuilder:object:root=true

// VectorDatabaseList contains a list of VectorDatabase.
type VectorDatabaseList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []VectorDatabase `json:"items"`
}

// NewVectorDatabase returns a composite with TypeMeta set.
func NewVectorDatabase(name, namespace string) *VectorDatabase {
	return &VectorDatabase{
		TypeMeta: metav1.TypeMeta{
			APIVersion: GroupVersion.String(),
			Kind:       Kind,
		},
		ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: namespace},
	}
}
