package config

import (
	"github.com/shopspring/decimal"
)

// ReferenceMode selects how generated resources address each other.
type ReferenceMode string

const (
	// ReferenceModeName binds fields by logical name (<field>Ref).
	ReferenceModeName ReferenceMode = "reference"
	// ReferenceModeSelector binds fields by label match (<field>Selector). Deprecated.
	ReferenceModeSelector ReferenceMode = "selector"
)

// Config is the normalized configuration of one vector database claim.
type Config struct {
	Claim          string `key:"claimName" validate:"required,dns_label"`
	Environment    string `key:"envSuffix" validate:"required,dns_label"`
	Namespace      string `key:"namespace" validate:"required,dns_label"`
	Region         string `key:"region" validate:"required"`
	ProviderConfig string `key:"providerConfigRef" validate:"required"`

	// Network is either CreateNew or ReuseExisting.
	Network   NetworkBoundary `validate:"-"`
	ZoneCount int             `key:"azCount" validate:"min=2,max=26"`

	Database    Database
	Credentials Credentials

	ReferenceMode      ReferenceMode `key:"referenceMode" validate:"oneof=reference selector"`
	AllowedCIDRs       []string      `key:"allowedCidrs" validate:"min=1,dive,cidrv4"`
	MonitoringInterval int           `key:"monitoringInterval" validate:"oneof=0 1 5 10 15 30 60"`
	VectorExtension    bool

	// Deprecations lists deprecated settings found in the input.
	Deprecations []string `validate:"-"`
}

// Database holds the cluster and instance settings.
type Database struct {
	// ClusterIdentifier is the cloud-side cluster name.
	ClusterIdentifier     string          `key:"clusterName" validate:"required,dns_label"`
	Name                  string          `key:"databaseName" validate:"required,db_identifier"`
	EngineVersion         string          `key:"engineVersion" validate:"required"`
	MinCapacity           decimal.Decimal `validate:"-"`
	MaxCapacity           decimal.Decimal `validate:"-"`
	MasterUsername        string          `key:"masterUsername" validate:"required,db_identifier"`
	BackupRetentionPeriod int             `key:"backupRetentionPeriod" validate:"min=1,max=35"`
	BackupWindow          string          `key:"backupWindow" validate:"backup_window"`
	MaintenanceWindow     string          `key:"maintenanceWindow" validate:"maintenance_window"`
	DeletionProtection    bool
	// InstanceCount is checked by the instance builder.
	InstanceCount      int    `validate:"-"`
	InstanceClass      string `key:"instanceClass" validate:"required"`
	PubliclyAccessible bool
}

// EngineMajor returns the major engine version ("16" for "16.6").
func (d Database) EngineMajor() string {
	for i, c := range d.EngineVersion {
		if c == '.' {
			return d.EngineVersion[:i]
		}
	}
	return d.EngineVersion
}

// Credentials selects where the master password comes from.
type Credentials struct {
	// Generate creates a password secret alongside the cluster.
	Generate bool
	// SecretRef points at an existing secret when Generate is false.
	SecretRef *SecretKeyRef `key:"passwordSecretRef" validate:"omitempty"`
}

// SecretKeyRef selects a key of a secret.
type SecretKeyRef struct {
	Name      string `mapstructure:"name" key:"name" validate:"required,dns_subdomain"`
	Namespace string `mapstructure:"namespace" key:"namespace" validate:"required,dns_label"`
	Key       string `mapstructure:"key" key:"key" validate:"required"`
}

// NetworkBoundary is the network the database lives in.
// Implementations are CreateNew and ReuseExisting.
type NetworkBoundary interface {
	isNetworkBoundary()
}

// CreateNew provisions a fresh VPC with the given parent network.
type CreateNew struct {
	CIDR string
}

// ReuseExisting places the database into an existing VPC and subnets.
type ReuseExisting struct {
	VPCID     string
	SubnetIDs []string
}

func (CreateNew) isNetworkBoundary()     {}
func (ReuseExisting) isNetworkBoundary() {}
