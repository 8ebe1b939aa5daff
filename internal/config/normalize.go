package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cast"

	"github.com/imamik/vectordb/internal/util/naming"
)

// MinReusedSubnets is the number of distinct subnets an existing network must provide.
const MinReusedSubnets = 2

// Normalize extracts a fully defaulted Config from an observed composite resource.
//
// Settings are read from the composite's spec; a document without a spec is
// read as a bare spec. Absent fields take their defaults. A value that cannot
// be coerced fails with ConfigurationError, a value that violates a constraint
// with ValidationErrors, and an existing network without enough subnets with
// ExternalPrerequisiteError.
func Normalize(composite map[string]any) (*Config, error) {
	spec, meta, err := split(composite)
	if err != nil {
		return nil, err
	}
	f := fields(spec)

	cfg := &Config{}
	var errs []error
	read := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var s string
	s, err = f.str(lo.CoalesceOrEmpty(cast.ToString(meta["name"]), naming.DefaultClaim), "claimName")
	read(err)
	cfg.Claim = s

	cfg.Environment, err = f.str(DefaultEnvironment, "envSuffix", "environment")
	read(err)
	cfg.Namespace, err = f.str(lo.CoalesceOrEmpty(cast.ToString(meta["namespace"]), DefaultNamespace), "namespace")
	read(err)
	cfg.Region, err = f.str(DefaultRegion, "region", "location")
	read(err)
	if key, _, present := f.lookup("region", "location"); present && key == "location" {
		cfg.Deprecations = append(cfg.Deprecations, "location is deprecated; use region")
	}
	cfg.ProviderConfig, err = providerConfig(f)
	read(err)

	cfg.Network, err = network(f)
	read(err)
	cfg.ZoneCount, err = f.integer(DefaultZoneCount, "azCount")
	read(err)

	db := &cfg.Database
	db.ClusterIdentifier, err = f.str(naming.Cluster(cfg.Claim, cfg.Environment), "clusterName")
	read(err)
	db.Name, err = f.str(DefaultDatabaseName, "databaseName")
	read(err)
	db.EngineVersion, err = f.str(DefaultEngineVersion, "engineVersion")
	read(err)
	db.MinCapacity, err = f.capacity(DefaultMinCapacity, "minCapacity")
	read(err)
	db.MaxCapacity, err = f.capacity(DefaultMaxCapacity, "maxCapacity")
	read(err)
	db.MasterUsername, err = f.str(DefaultMasterUsername, "masterUsername")
	read(err)
	db.BackupRetentionPeriod, err = f.integer(DefaultBackupRetentionPeriod, "backupRetentionPeriod")
	read(err)
	db.BackupWindow, err = f.str(DefaultBackupWindow, "backupWindow")
	read(err)
	db.MaintenanceWindow, err = f.str(DefaultMaintenanceWindow, "maintenanceWindow")
	read(err)
	db.DeletionProtection, err = f.boolean(true, "deletionProtection")
	read(err)
	db.InstanceCount, err = f.integer(DefaultInstanceCount, "instanceCount")
	read(err)
	db.InstanceClass, err = f.str(DefaultInstanceClass, "instanceClass")
	read(err)
	db.PubliclyAccessible, err = f.boolean(false, "publiclyAccessible")
	read(err)

	cfg.Credentials, err = credentials(f, cfg.Namespace)
	read(err)

	s, err = f.str(string(ReferenceModeName), "referenceMode")
	read(err)
	cfg.ReferenceMode = ReferenceMode(strings.ToLower(s))
	if cfg.ReferenceMode == ReferenceModeSelector {
		cfg.Deprecations = append(cfg.Deprecations,
			"referenceMode: selector is deprecated; resources are linked by label selector instead of by name")
	}

	cfg.AllowedCIDRs, err = f.strings("allowedCidrs")
	read(err)
	if _, _, present := f.lookup("allowedCidrs"); !present {
		cfg.AllowedCIDRs = []string{DefaultAllowedCIDR}
	}
	cfg.MonitoringInterval, err = f.integer(DefaultMonitoringInterval, "monitoringInterval")
	read(err)
	cfg.VectorExtension, err = f.boolean(true, "vectorExtension")
	read(err)

	// Coercion failures are reported before any constraint is checked.
	if len(errs) > 0 {
		return nil, errs[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if reuse, ok := cfg.Network.(ReuseExisting); ok && len(reuse.SubnetIDs) < MinReusedSubnets {
		return nil, &ExternalPrerequisiteError{
			Resource: "vpc/" + reuse.VPCID,
			Message: fmt.Sprintf("needs at least %d distinct subnets in different zones, got %d",
				MinReusedSubnets, len(reuse.SubnetIDs)),
		}
	}
	return cfg, nil
}

func split(composite map[string]any) (spec, meta map[string]any, err error) {
	if composite == nil {
		return map[string]any{}, map[string]any{}, nil
	}
	meta, _ = composite["metadata"].(map[string]any)
	raw, hasSpec := composite["spec"]
	if !hasSpec {
		if _, isComposite := composite["kind"]; isComposite {
			return map[string]any{}, meta, nil
		}
		return composite, meta, nil
	}
	if raw == nil {
		return map[string]any{}, meta, nil
	}
	spec, ok := raw.(map[string]any)
	if !ok {
		return nil, nil, &ConfigurationError{Field: "spec", Value: raw, Err: fmt.Errorf("expected an object")}
	}
	return spec, meta, nil
}

func network(f fields) (NetworkBoundary, error) {
	vpcID, err := f.str("", "vpcId")
	if err != nil {
		return nil, err
	}
	if vpcID != "" {
		subnets, err := f.strings("subnetIds")
		if err != nil {
			return nil, err
		}
		return ReuseExisting{VPCID: vpcID, SubnetIDs: subnets}, nil
	}
	cidr, err := f.str(DefaultVPCCIDR, "vpcCidr")
	if err != nil {
		return nil, err
	}
	return CreateNew{CIDR: cidr}, nil
}

func providerConfig(f fields) (string, error) {
	_, v, ok := f.lookup("providerConfigRef")
	if !ok {
		return DefaultProviderConfig, nil
	}
	if _, isObject := v.(map[string]any); isObject {
		var ref struct {
			Name string `mapstructure:"name"`
		}
		if _, err := f.object(&ref, "providerConfigRef"); err != nil {
			return "", err
		}
		return lo.CoalesceOrEmpty(strings.TrimSpace(ref.Name), DefaultProviderConfig), nil
	}
	return f.str(DefaultProviderConfig, "providerConfigRef")
}

func credentials(f fields, namespace string) (Credentials, error) {
	generate, err := f.boolean(true, "generatePassword")
	if err != nil {
		return Credentials{}, err
	}
	creds := Credentials{Generate: generate}

	var ref SecretKeyRef
	found, err := f.object(&ref, "passwordSecretRef")
	if err != nil {
		return Credentials{}, err
	}
	if found {
		ref.Namespace = lo.CoalesceOrEmpty(ref.Namespace, namespace)
		ref.Key = lo.CoalesceOrEmpty(ref.Key, PasswordSecretKey)
		creds.SecretRef = &ref
	}
	return creds, nil
}
