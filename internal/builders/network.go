package builders

import (
	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/resolver"
	"github.com/imamik/vectordb/internal/util/async"
	"github.com/imamik/vectordb/internal/util/labels"
	"github.com/imamik/vectordb/internal/util/naming"
	"github.com/imamik/vectordb/internal/util/netutil"
)

// Components label each resource with its role inside the claim.
const (
	ComponentVPC                   = "vpc"
	ComponentInternetGateway       = "igw"
	ComponentSubnet                = "subnet"
	ComponentRouteTable            = "route-table"
	ComponentInternetRoute         = "internet-route"
	ComponentRouteTableAssociation = "rta"
)

// AnyIPv4 is the default route destination.
const AnyIPv4 = "0.0.0.0/0"

// Field bindings shared by the network builders.
var (
	fieldVPCID        = resolver.Field{Name: "vpcId"}
	fieldSubnetID     = resolver.Field{Name: "subnetId"}
	fieldRouteTableID = resolver.Field{Name: "routeTableId"}
	fieldGatewayID    = resolver.Field{Name: "gatewayId"}
)

// Network is the network boundary as downstream builders see it: the VPC and
// database subnets as references, whether they are created or reused.
type Network struct {
	VPC     resolver.Ref
	Subnets []resolver.Ref
	// Zones holds the availability zone of each created subnet. It is empty
	// for reused networks, whose zones are not known.
	Zones []string
}

// ExistingNetwork addresses a reused VPC and its subnets by identifier.
func ExistingNetwork(n config.ReuseExisting) Network {
	return Network{
		VPC:     resolver.Literal{Value: n.VPCID},
		Subnets: resolver.Literals(n.SubnetIDs...),
	}
}

// CreatedNetwork addresses a generated VPC and subnets through policy.
func CreatedNetwork(policy resolver.Policy, vpc *descriptor.Descriptor, subnets []*descriptor.Descriptor) Network {
	n := Network{VPC: policy.To(vpc.Target())}
	for _, s := range subnets {
		n.Subnets = append(n.Subnets, policy.To(s.Target()))
		if fp := s.ForProvider(); fp != nil {
			if zone, ok := fp["availabilityZone"].(string); ok {
				n.Zones = append(n.Zones, zone)
			}
		}
	}
	return n
}

// VPC builds the virtual network holding every database subnet.
func VPC(cfg *config.Config, cidr string) *descriptor.Descriptor {
	name := naming.VPC(cfg.Claim, cfg.Environment)
	return managed(cfg, resource{
		kind:      descriptor.KindVPC,
		name:      name,
		component: ComponentVPC,
		tier:      labels.TierNetwork,
		index:     noIndex,
	}, map[string]any{
		"cidrBlock":          cidr,
		"enableDnsHostnames": true,
		"enableDnsSupport":   true,
	})
}

// InternetGateway attaches internet access to the VPC.
func InternetGateway(cfg *config.Config, vpc resolver.Ref) *descriptor.Descriptor {
	return managed(cfg, resource{
		kind:      descriptor.KindInternetGateway,
		name:      naming.InternetGateway(cfg.Claim, cfg.Environment),
		component: ComponentInternetGateway,
		tier:      labels.TierNetwork,
		index:     noIndex,
	}, nil, resolver.Bind(fieldVPCID, vpc))
}

// Subnet builds the database subnet for one zone.
func Subnet(cfg *config.Config, vpc resolver.Ref, block netutil.AddressBlock) *descriptor.Descriptor {
	return managed(cfg, resource{
		kind:      descriptor.KindSubnet,
		name:      naming.Subnet(cfg.Claim, cfg.Environment, block.Zone),
		component: ComponentSubnet,
		tier:      labels.TierNetwork,
		index:     block.Zone,
	}, map[string]any{
		"availabilityZone":    naming.AvailabilityZone(cfg.Region, block.Zone),
		"cidrBlock":           block.Prefix.String(),
		"mapPublicIpOnLaunch": false,
	}, resolver.Bind(fieldVPCID, vpc))
}

// Subnets builds one subnet per address block concurrently. The result
// follows the order of blocks.
func Subnets(cfg *config.Config, vpc resolver.Ref, blocks []netutil.AddressBlock) ([]*descriptor.Descriptor, error) {
	return async.Map(blocks, func(_ int, b netutil.AddressBlock) (*descriptor.Descriptor, error) {
		return Subnet(cfg, vpc, b), nil
	})
}

// RouteTable builds the route table shared by all database subnets.
func RouteTable(cfg *config.Config, vpc resolver.Ref) *descriptor.Descriptor {
	return managed(cfg, resource{
		kind:      descriptor.KindRouteTable,
		name:      naming.RouteTable(cfg.Claim, cfg.Environment),
		component: ComponentRouteTable,
		tier:      labels.TierNetwork,
		index:     noIndex,
	}, nil, resolver.Bind(fieldVPCID, vpc))
}

// InternetRoute sends all non-local traffic to the internet gateway.
func InternetRoute(cfg *config.Config, routeTable, gateway resolver.Ref) *descriptor.Descriptor {
	return managed(cfg, resource{
		kind:      descriptor.KindRoute,
		name:      naming.InternetRoute(cfg.Claim, cfg.Environment),
		component: ComponentInternetRoute,
		tier:      labels.TierNetwork,
		index:     noIndex,
	}, map[string]any{
		"destinationCidrBlock": AnyIPv4,
	},
		resolver.Bind(fieldRouteTableID, routeTable),
		resolver.Bind(fieldGatewayID, gateway),
	)
}

// RouteTableAssociation attaches the index-th subnet to the route table.
func RouteTableAssociation(cfg *config.Config, index int, subnet, routeTable resolver.Ref) *descriptor.Descriptor {
	return managed(cfg, resource{
		kind:      descriptor.KindRouteTableAssociation,
		name:      naming.RouteTableAssociation(cfg.Claim, cfg.Environment, index),
		component: ComponentRouteTableAssociation,
		tier:      labels.TierNetwork,
		index:     index,
	}, nil,
		resolver.Bind(fieldSubnetID, subnet),
		resolver.Bind(fieldRouteTableID, routeTable),
	)
}
