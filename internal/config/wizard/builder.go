package wizard

import (
	"github.com/imamik/vectordb/api/v1alpha1"
	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/util/ptr"
)

// BuildComposite creates a VectorDatabase from the wizard result.
// Values equal to their defaults are left unset so the document stays short.
func BuildComposite(result *WizardResult) *v1alpha1.VectorDatabase {
	vdb := v1alpha1.NewVectorDatabase(result.ClaimName, result.Namespace)
	spec := &vdb.Spec

	spec.Region = result.Region
	if result.EnvSuffix != config.DefaultEnvironment {
		spec.EnvSuffix = result.EnvSuffix
	}

	if result.ReuseNetwork {
		spec.VPCID = result.VPCID
		spec.SubnetIDs = result.SubnetIDs
	} else {
		if result.VPCCIDR != config.DefaultVPCCIDR {
			spec.VPCCIDR = result.VPCCIDR
		}
		if result.AZCount != 0 && result.AZCount != config.DefaultZoneCount {
			spec.AZCount = int32Ptr(result.AZCount)
		}
	}

	db := &spec.DatabaseSpec
	if result.EngineVersion != config.DefaultEngineVersion {
		db.EngineVersion = result.EngineVersion
	}
	if result.InstanceClass != config.DefaultInstanceClass {
		db.InstanceClass = result.InstanceClass
	} else {
		if result.MinCapacity != config.DefaultMinCapacity.String() {
			db.MinCapacity = result.MinCapacity
		}
		if result.MaxCapacity != config.DefaultMaxCapacity.String() {
			db.MaxCapacity = result.MaxCapacity
		}
	}
	if result.InstanceCount != 0 && result.InstanceCount != config.DefaultInstanceCount {
		db.InstanceCount = int32Ptr(result.InstanceCount)
	}

	if !result.GeneratePassword {
		spec.GeneratePassword = ptr.Bool(false)
		if result.PasswordSecret != "" {
			spec.PasswordSecretRef = &v1alpha1.SecretKeySelector{
				Name: result.PasswordSecret,
				Key:  config.PasswordSecretKey,
			}
		}
	}

	if result.AdvancedOptions != nil {
		applyAdvancedOptions(vdb, result.AdvancedOptions)
	}

	return vdb
}

// applyAdvancedOptions applies advanced options to the composite.
func applyAdvancedOptions(vdb *v1alpha1.VectorDatabase, opts *AdvancedOptions) {
	spec := &vdb.Spec

	if opts.ProviderConfig != "" && opts.ProviderConfig != config.DefaultProviderConfig {
		spec.ProviderConfigRef = &v1alpha1.ProviderConfigReference{Name: opts.ProviderConfig}
	}
	if len(opts.AllowedCIDRs) > 0 && !(len(opts.AllowedCIDRs) == 1 && opts.AllowedCIDRs[0] == config.DefaultAllowedCIDR) {
		spec.AllowedCIDRs = opts.AllowedCIDRs
	}
	if opts.BackupRetentionPeriod != 0 && opts.BackupRetentionPeriod != config.DefaultBackupRetentionPeriod {
		spec.BackupRetentionPeriod = int32Ptr(opts.BackupRetentionPeriod)
	}
	if !opts.DeletionProtection {
		spec.DeletionProtection = ptr.Bool(false)
	}
	if opts.MonitoringInterval != config.DefaultMonitoringInterval {
		spec.MonitoringInterval = int32Ptr(opts.MonitoringInterval)
	}
	if !opts.VectorExtension {
		spec.VectorExtension = ptr.Bool(false)
	}
}

func int32Ptr(i int) *int32 {
	// #nosec G115 -- wizard values come from small option lists
	return ptr.Int32(int32(i))
}
