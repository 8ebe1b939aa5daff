package builders

import (
	"fmt"

	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/resolver"
	"github.com/imamik/vectordb/internal/util/async"
	"github.com/imamik/vectordb/internal/util/labels"
	"github.com/imamik/vectordb/internal/util/naming"
)

const (
	ComponentSubnetGroup            = "subnet-group"
	ComponentClusterParameterGroup  = "cluster-params"
	ComponentInstanceParameterGroup = "instance-params"
	ComponentCluster                = "cluster"
	ComponentInstance               = "instance"
)

const (
	// Engine is the Aurora engine serving pgvector.
	Engine     = "aurora-postgresql"
	engineMode = "provisioned"
	// VectorLibrary is preloaded by the parameter groups.
	VectorLibrary = "vector"
)

var (
	fieldDBSubnetGroupName     = resolver.Field{Name: "dbSubnetGroupName"}
	fieldVPCSecurityGroupID    = resolver.Field{Name: "vpcSecurityGroupId"}
	fieldClusterParameterGroup = resolver.Field{Name: "dbClusterParameterGroupName"}
	fieldClusterIdentifier     = resolver.Field{Name: "clusterIdentifier"}
	fieldDBParameterGroupName  = resolver.Field{Name: "dbParameterGroupName"}
	fieldMonitoringRoleARN     = resolver.Field{Name: "monitoringRoleArn"}
)

// SubnetGroup spans the database subnets of the network boundary.
func SubnetGroup(cfg *config.Config, network Network) *descriptor.Descriptor {
	name := naming.SubnetGroup(cfg.Claim, cfg.Environment)
	return managed(cfg, resource{
		kind:         descriptor.KindDBSubnetGroup,
		name:         name,
		component:    ComponentSubnetGroup,
		tier:         labels.TierDatabase,
		index:        noIndex,
		externalName: name,
	}, map[string]any{
		"description": fmt.Sprintf("Subnets of the %s vector database", cfg.Claim),
	}, resolver.BindAll(fieldSubnetID, network.Subnets...))
}

// ParameterFamily is the parameter group family of the configured engine version.
func ParameterFamily(db config.Database) string {
	return Engine + db.EngineMajor()
}

func vectorParameters() []map[string]any {
	return []map[string]any{{
		"name":        "shared_preload_libraries",
		"value":       VectorLibrary,
		"applyMethod": "pending-reboot",
	}}
}

// ClusterParameterGroup preloads the vector library on the cluster.
func ClusterParameterGroup(cfg *config.Config) *descriptor.Descriptor {
	name := naming.ClusterParameterGroup(cfg.Claim, cfg.Environment)
	return managed(cfg, resource{
		kind:         descriptor.KindClusterParameterGroup,
		name:         name,
		component:    ComponentClusterParameterGroup,
		tier:         labels.TierDatabase,
		index:        noIndex,
		externalName: name,
	}, map[string]any{
		"family":      ParameterFamily(cfg.Database),
		"description": "Cluster parameters with pgvector",
		"parameter":   vectorParameters(),
	})
}

// InstanceParameterGroup preloads the vector library on every instance.
func InstanceParameterGroup(cfg *config.Config) *descriptor.Descriptor {
	name := naming.InstanceParameterGroup(cfg.Claim, cfg.Environment)
	return managed(cfg, resource{
		kind:         descriptor.KindInstanceParameterGroup,
		name:         name,
		component:    ComponentInstanceParameterGroup,
		tier:         labels.TierDatabase,
		index:        noIndex,
		externalName: name,
	}, map[string]any{
		"family":      ParameterFamily(cfg.Database),
		"description": "Instance parameters with pgvector",
		"parameter":   vectorParameters(),
	})
}

// ClusterDeps are the prerequisites of the database cluster.
type ClusterDeps struct {
	SubnetGroup   resolver.Ref
	SecurityGroup resolver.Ref
	// Password addresses the generated password secret. Nil when no password is generated.
	Password resolver.Ref
	// ParameterGroup is nil when the vector extension is disabled.
	ParameterGroup resolver.Ref
}

// Cluster builds the Aurora Serverless v2 cluster.
//
// The master password is never written by value: it is either a reference to
// the generated secret, the caller's existing secret, or left to AWS.
func Cluster(cfg *config.Config, deps ClusterDeps) *descriptor.Descriptor {
	db := cfg.Database
	fp := map[string]any{
		"engine":                     Engine,
		"engineMode":                 engineMode,
		"engineVersion":              db.EngineVersion,
		"databaseName":               db.Name,
		"masterUsername":             db.MasterUsername,
		"backupRetentionPeriod":      db.BackupRetentionPeriod,
		"preferredBackupWindow":      db.BackupWindow,
		"preferredMaintenanceWindow": db.MaintenanceWindow,
		"deletionProtection":         db.DeletionProtection,
		"skipFinalSnapshot":          false,
		"finalSnapshotIdentifier":    naming.FinalSnapshot(db.ClusterIdentifier),
		"storageEncrypted":           true,
		"copyTagsToSnapshot":         true,
		"serverlessv2ScalingConfiguration": []map[string]any{{
			"minCapacity": db.MinCapacity.InexactFloat64(),
			"maxCapacity": db.MaxCapacity.InexactFloat64(),
		}},
	}

	refs := []resolver.Binding{
		resolver.Bind(fieldDBSubnetGroupName, deps.SubnetGroup),
		resolver.BindAll(fieldVPCSecurityGroupID, deps.SecurityGroup),
	}
	switch {
	case deps.Password != nil:
		refs = append(refs, resolver.Bind(resolver.Field{
			Name:      "masterPasswordSecretRef",
			SecretKey: config.PasswordSecretKey,
			Namespace: cfg.Namespace,
		}, deps.Password))
	case cfg.Credentials.SecretRef != nil:
		ref := cfg.Credentials.SecretRef
		fp["masterPasswordSecretRef"] = map[string]any{
			"name":      ref.Name,
			"namespace": ref.Namespace,
			"key":       ref.Key,
		}
	default:
		fp["manageMasterUserPassword"] = true
	}
	if deps.ParameterGroup != nil {
		refs = append(refs, resolver.Bind(fieldClusterParameterGroup, deps.ParameterGroup))
	}

	d := managed(cfg, resource{
		kind:         descriptor.KindCluster,
		name:         naming.Cluster(cfg.Claim, cfg.Environment),
		component:    ComponentCluster,
		tier:         labels.TierDatabase,
		index:        noIndex,
		externalName: db.ClusterIdentifier,
	}, fp, refs...)

	d.Payload["spec"].(map[string]any)["writeConnectionSecretToRef"] = map[string]any{
		"name":      naming.ConnectionSecret(cfg.Claim, cfg.Environment),
		"namespace": cfg.Namespace,
	}
	return d
}

// InstanceDeps are the prerequisites of the cluster instances.
type InstanceDeps struct {
	Cluster resolver.Ref
	// ParameterGroup is nil when the vector extension is disabled.
	ParameterGroup resolver.Ref
	// MonitoringRole is nil when enhanced monitoring is off.
	MonitoringRole resolver.Ref
	// After orders the instances behind resources they do not reference,
	// such as the policy attachment of the monitoring role.
	After []resolver.Ref
	// Zones are assigned to instances round-robin. Empty leaves placement to AWS.
	Zones []string
}

// Instances builds the cluster instances concurrently. Instance i gets
// promotion tier i, so the first instance is preferred on failover.
func Instances(cfg *config.Config, deps InstanceDeps) ([]*descriptor.Descriptor, error) {
	count := cfg.Database.InstanceCount
	if count < 1 {
		return nil, &config.ValidationError{
			Field:   "instanceCount",
			Message: fmt.Sprintf("must be at least 1, got %d", count),
		}
	}
	return async.Times(count, func(i int) (*descriptor.Descriptor, error) {
		return instance(cfg, deps, i), nil
	})
}

func instance(cfg *config.Config, deps InstanceDeps, i int) *descriptor.Descriptor {
	db := cfg.Database
	name := naming.Instance(cfg.Claim, cfg.Environment, i)
	fp := map[string]any{
		"identifier":         name,
		"engine":             Engine,
		"instanceClass":      db.InstanceClass,
		"promotionTier":      i,
		"publiclyAccessible": db.PubliclyAccessible,
		"monitoringInterval": cfg.MonitoringInterval,
	}
	if len(deps.Zones) > 0 {
		fp["availabilityZone"] = deps.Zones[i%len(deps.Zones)]
	}

	refs := []resolver.Binding{resolver.Bind(fieldClusterIdentifier, deps.Cluster)}
	if deps.ParameterGroup != nil {
		refs = append(refs, resolver.Bind(fieldDBParameterGroupName, deps.ParameterGroup))
	}
	if deps.MonitoringRole != nil {
		refs = append(refs, resolver.Bind(fieldMonitoringRoleARN, deps.MonitoringRole))
	}
	if len(deps.After) > 0 {
		refs = append(refs, resolver.After(deps.After...))
	}

	return managed(cfg, resource{
		kind:         descriptor.KindClusterInstance,
		name:         name,
		component:    ComponentInstance,
		tier:         labels.TierDatabase,
		index:        i,
		externalName: name,
	}, fp, refs...)
}
