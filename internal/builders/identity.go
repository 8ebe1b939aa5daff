package builders

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws/arn"

	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/resolver"
	"github.com/imamik/vectordb/internal/util/labels"
	"github.com/imamik/vectordb/internal/util/naming"
)

const (
	ComponentMonitoringRole   = "monitoring-role"
	ComponentMonitoringPolicy = "monitoring-policy"
)

const (
	monitoringPrincipal = "monitoring.rds.amazonaws.com"
	monitoringPolicy    = "policy/service-role/AmazonRDSEnhancedMonitoringRole"
)

var fieldRole = resolver.Field{Name: "role"}

type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Effect    string            `json:"Effect"`
	Principal map[string]string `json:"Principal"`
	Action    string            `json:"Action"`
}

// MonitoringRole builds the role assumed by RDS enhanced monitoring.
func MonitoringRole(cfg *config.Config) (*descriptor.Descriptor, error) {
	trust, err := json.Marshal(policyDocument{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect:    "Allow",
			Principal: map[string]string{"Service": monitoringPrincipal},
			Action:    "sts:AssumeRole",
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode trust policy: %w", err)
	}

	name := naming.MonitoringRole(cfg.Claim, cfg.Environment)
	return managed(cfg, resource{
		kind:         descriptor.KindRole,
		name:         name,
		component:    ComponentMonitoringRole,
		tier:         labels.TierIdentity,
		index:        noIndex,
		externalName: name,
		global:       true,
	}, map[string]any{
		"assumeRolePolicy": string(trust),
		"description":      fmt.Sprintf("Enhanced monitoring for the %s vector database", cfg.Claim),
	}), nil
}

// MonitoringPolicyAttachment grants the managed enhanced-monitoring policy to the role.
func MonitoringPolicyAttachment(cfg *config.Config, role resolver.Ref) *descriptor.Descriptor {
	return managed(cfg, resource{
		kind:      descriptor.KindRolePolicyAttachment,
		name:      naming.MonitoringPolicyAttachment(cfg.Claim, cfg.Environment),
		component: ComponentMonitoringPolicy,
		tier:      labels.TierIdentity,
		index:     noIndex,
		global:    true,
	}, map[string]any{
		"policyArn": ManagedPolicyARN(cfg.Region, monitoringPolicy),
	}, resolver.Bind(fieldRole, role))
}

// ManagedPolicyARN returns the ARN of an AWS managed IAM policy in the
// partition that contains region.
func ManagedPolicyARN(region, policy string) string {
	return arn.ARN{
		Partition: Partition(region),
		Service:   "iam",
		AccountID: "aws",
		Resource:  policy,
	}.String()
}

// Partition returns the AWS partition of a region.
func Partition(region string) string {
	switch {
	case strings.HasPrefix(region, "cn-"):
		return "aws-cn"
	case strings.HasPrefix(region, "us-gov-"):
		return "aws-us-gov"
	default:
		return "aws"
	}
}
