package assembler

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/imamik/vectordb/internal/builders"
	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/graph"
	"github.com/imamik/vectordb/internal/resolver"
	"github.com/imamik/vectordb/internal/util/netutil"
	"github.com/imamik/vectordb/internal/util/retry"
)

// Phase is one step of the state machine.
type Phase interface {
	// State is the state the machine is in while the phase runs.
	State() State
	Run(ctx *Context) error
}

// DefaultPhases returns the phases in execution order.
func DefaultPhases() []Phase {
	return []Phase{
		normalizePhase{},
		allocatePhase{},
		buildPhase{},
		linkPhase{},
	}
}

type normalizePhase struct{}

func (normalizePhase) State() State { return StateNormalizing }

func (normalizePhase) Run(ctx *Context) error {
	cfg, err := config.Normalize(ctx.Input)
	if err != nil {
		return err
	}
	for _, msg := range cfg.Deprecations {
		ctx.Observer.Event(Event{Type: EventDeprecation, Phase: StateNormalizing, Message: msg})
	}
	ctx.Config = cfg
	return nil
}

type allocatePhase struct{}

func (allocatePhase) State() State { return StateAllocating }

func (allocatePhase) Run(ctx *Context) error {
	n, ok := ctx.Config.Network.(config.CreateNew)
	if !ok {
		return nil
	}
	blocks, err := netutil.AllocateSubnets(n.CIDR, ctx.Config.ZoneCount, netutil.DatabaseTierOffset)
	if err != nil {
		return err
	}
	if err := netutil.VerifyBlocks(n.CIDR, blocks); err != nil {
		return retry.Fatal(err)
	}
	ctx.Blocks = blocks
	return nil
}

type buildPhase struct{}

func (buildPhase) State() State { return StateBuilding }

// Run invokes the builders in the fixed topological order:
//
//	vpc
//	gateway, subnets, route table, security group
//	route, associations, ingress rules, egress rule
//	subnet group, password secret, monitoring role and policy, parameter groups
//	cluster
//	instances
func (buildPhase) Run(ctx *Context) error {
	cfg := ctx.Config
	policy := resolver.Policy{Mode: resolver.Mode(cfg.ReferenceMode)}
	ref := func(d *descriptor.Descriptor) resolver.Ref { return policy.To(d.Target()) }
	b := &batch{ctx: ctx}

	var (
		vpc, igw, rt *descriptor.Descriptor
		subnets      []*descriptor.Descriptor
	)
	switch n := cfg.Network.(type) {
	case config.CreateNew:
		vpc = builders.VPC(cfg, n.CIDR)
		b.add(vpc)

		igw = builders.InternetGateway(cfg, ref(vpc))
		var err error
		subnets, err = builders.Subnets(cfg, ref(vpc), ctx.Blocks)
		if err != nil {
			return err
		}
		rt = builders.RouteTable(cfg, ref(vpc))
		ctx.Network = builders.CreatedNetwork(policy, vpc, subnets)
	case config.ReuseExisting:
		ctx.Network = builders.ExistingNetwork(n)
	default:
		return retry.Fatal(fmt.Errorf("unsupported network boundary %T", n))
	}

	sg := builders.SecurityGroup(cfg, ctx.Network)
	if vpc != nil {
		b.add(igw)
		b.add(subnets...)
		b.add(rt)
	}
	b.add(sg)

	if vpc != nil {
		b.add(builders.InternetRoute(cfg, ref(rt), ref(igw)))
		for i, s := range subnets {
			b.add(builders.RouteTableAssociation(cfg, i, ref(s), ref(rt)))
		}
	}
	b.add(builders.IngressRules(cfg, ref(sg))...)
	b.add(builders.EgressRule(cfg, ref(sg)))

	subnetGroup := builders.SubnetGroup(cfg, ctx.Network)
	b.add(subnetGroup)
	clusterDeps := builders.ClusterDeps{SubnetGroup: ref(subnetGroup), SecurityGroup: ref(sg)}
	instanceDeps := builders.InstanceDeps{Zones: ctx.Network.Zones}

	if cfg.Credentials.Generate {
		password, err := ctx.passwords()
		if err != nil {
			return fmt.Errorf("failed to generate master password: %w", err)
		}
		secret, err := builders.PasswordSecret(cfg, password)
		if err != nil {
			return err
		}
		b.add(secret)
		// Secret key selectors cannot match labels, so the password is always addressed by name.
		clusterDeps.Password = resolver.Named{Name: secret.Name, Kind: secret.Kind}
	}

	if cfg.MonitoringInterval > 0 {
		role, err := builders.MonitoringRole(cfg)
		if err != nil {
			return err
		}
		attachment := builders.MonitoringPolicyAttachment(cfg, ref(role))
		b.add(role, attachment)
		instanceDeps.MonitoringRole = ref(role)
		instanceDeps.After = []resolver.Ref{ref(attachment)}
	}

	if cfg.VectorExtension {
		clusterParams := builders.ClusterParameterGroup(cfg)
		instanceParams := builders.InstanceParameterGroup(cfg)
		b.add(clusterParams, instanceParams)
		clusterDeps.ParameterGroup = ref(clusterParams)
		instanceDeps.ParameterGroup = ref(instanceParams)
	}

	cluster := builders.Cluster(cfg, clusterDeps)
	b.add(cluster)

	instanceDeps.Cluster = ref(cluster)
	instances, err := builders.Instances(cfg, instanceDeps)
	if err != nil {
		return err
	}
	b.add(instances...)
	return nil
}

// batch appends built descriptors to the context in call order.
type batch struct {
	ctx *Context
}

func (b *batch) add(ds ...*descriptor.Descriptor) {
	for _, d := range ds {
		b.ctx.Built = append(b.ctx.Built, d)
		b.ctx.Observer.Event(Event{
			Type:     EventResourceBuilt,
			Phase:    StateBuilding,
			Resource: d.Name,
			Kind:     d.Kind.Kind,
			Message:  "built",
		})
	}
}

type linkPhase struct{}

func (linkPhase) State() State { return StateLinking }

// Run resolves every binding in build order. A descriptor is registered only
// after its own bindings resolve, so a reference to a later descriptor fails.
func (linkPhase) Run(ctx *Context) error {
	r := resolver.New(ctx.Log.WithName("resolver"))
	order := make(map[string]int, len(ctx.Built))
	for i, d := range ctx.Built {
		order[d.Name] = i
	}

	linked := make([]*descriptor.Descriptor, 0, len(ctx.Built))
	var edges []resolver.Edge
	for i, d := range ctx.Built {
		out := d.DeepCopy()
		var deps []string
		for _, b := range out.Refs {
			res, err := r.Resolve(out.Name, b)
			if err != nil {
				return internal(fmt.Errorf("failed to link %s: %w", out, err))
			}
			for _, key := range slices.Sorted(maps.Keys(res.Values)) {
				if err := out.SetForProvider(key, res.Values[key]); err != nil {
					return internal(err)
				}
			}
			for _, e := range res.Edges {
				edges = append(edges, e)
				deps = append(deps, e.To)
			}
		}

		deps = lo.Uniq(deps)
		slices.SortFunc(deps, func(a, b string) int { return order[a] - order[b] })
		if len(deps) > 0 {
			out.Annotations[descriptor.AnnotationDependsOn] = strings.Join(deps, ",")
		}
		out.Annotations[descriptor.AnnotationBuildOrder] = strconv.Itoa(i)

		if err := r.Register(out.Name, out.Kind, out.Labels); err != nil {
			return internal(err)
		}
		linked = append(linked, out)
	}

	g, err := graph.New(linked, edges)
	if err != nil {
		return internal(err)
	}
	ctx.Graph = g
	return nil
}

// internal marks a failure that only a defect in the build order can cause.
// Regenerating from the same input would fail the same way.
func internal(err error) error {
	return retry.Fatal(err)
}
