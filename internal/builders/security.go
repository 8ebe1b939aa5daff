package builders

import (
	"fmt"

	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/resolver"
	"github.com/imamik/vectordb/internal/util/labels"
	"github.com/imamik/vectordb/internal/util/naming"
)

const (
	ComponentSecurityGroup = "sg"
	ComponentIngressRule   = "postgres-ingress"
	ComponentEgressRule    = "egress-all"
)

// PostgresPort is the only port opened by the ingress rules.
const PostgresPort = 5432

var fieldSecurityGroupID = resolver.Field{Name: "securityGroupId"}

// SecurityGroup builds the group guarding the database instances.
func SecurityGroup(cfg *config.Config, network Network) *descriptor.Descriptor {
	name := naming.SecurityGroup(cfg.Claim, cfg.Environment)
	return managed(cfg, resource{
		kind:      descriptor.KindSecurityGroup,
		name:      name,
		component: ComponentSecurityGroup,
		tier:      labels.TierSecurity,
		index:     noIndex,
	}, map[string]any{
		"name":        name,
		"description": fmt.Sprintf("PostgreSQL access to the %s vector database", cfg.Claim),
	}, resolver.Bind(fieldVPCID, network.VPC))
}

// IngressRules admits PostgreSQL traffic from each allowed source range.
func IngressRules(cfg *config.Config, securityGroup resolver.Ref) []*descriptor.Descriptor {
	rules := make([]*descriptor.Descriptor, 0, len(cfg.AllowedCIDRs))
	for i, cidr := range cfg.AllowedCIDRs {
		rules = append(rules, managed(cfg, resource{
			kind:      descriptor.KindSecurityGroupIngressRule,
			name:      naming.IngressRule(cfg.Claim, cfg.Environment, i),
			component: ComponentIngressRule,
			tier:      labels.TierSecurity,
			index:     i,
		}, map[string]any{
			"cidrIpv4":    cidr,
			"fromPort":    PostgresPort,
			"toPort":      PostgresPort,
			"ipProtocol":  "tcp",
			"description": "PostgreSQL from " + cidr,
		}, resolver.Bind(fieldSecurityGroupID, securityGroup)))
	}
	return rules
}

// EgressRule allows all outbound traffic.
func EgressRule(cfg *config.Config, securityGroup resolver.Ref) *descriptor.Descriptor {
	return managed(cfg, resource{
		kind:      descriptor.KindSecurityGroupEgressRule,
		name:      naming.EgressRule(cfg.Claim, cfg.Environment),
		component: ComponentEgressRule,
		tier:      labels.TierSecurity,
		index:     noIndex,
	}, map[string]any{
		"cidrIpv4":    AnyIPv4,
		"ipProtocol":  "-1",
		"description": "All outbound traffic",
	}, resolver.Bind(fieldSecurityGroupID, securityGroup))
}
