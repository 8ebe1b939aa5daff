package assembler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/descriptor"
	"github.com/imamik/vectordb/internal/util/labels"
	"github.com/imamik/vectordb/internal/util/retry"
)

// recordingObserver keeps every event for later inspection.
type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (o *recordingObserver) Event(e Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) ofType(t EventType) []Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []Event
	for _, e := range o.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type stubPhase struct {
	state State
	err   error
	ran   *bool
}

func (p stubPhase) State() State { return p.state }

func (p stubPhase) Run(*Context) error {
	if p.ran != nil {
		*p.ran = true
	}
	return p.err
}

func composite(spec map[string]any) map[string]any {
	return map[string]any{
		"apiVersion": "vectordb.io/v1alpha1",
		"kind":       "VectorDatabase",
		"metadata":   map[string]any{"name": "search", "namespace": "default"},
		"spec":       spec,
	}
}

func fixedPassword() (string, error) {
	return "Sup3r$ecretPassw0rd", nil
}

func assemble(t *testing.T, spec map[string]any, opts ...Option) *Result {
	t.Helper()
	opts = append([]Option{WithPasswordGenerator(fixedPassword)}, opts...)
	res, err := Assemble(context.Background(), composite(spec), opts...)
	require.NoError(t, err)
	return res
}

func TestStateTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to State
		want     bool
	}{
		{StateInitializing, StateNormalizing, true},
		{StateNormalizing, StateAllocating, true},
		{StateAllocating, StateBuilding, true},
		{StateBuilding, StateLinking, true},
		{StateLinking, StateDone, true},
		{StateInitializing, StateFailed, true},
		{StateLinking, StateFailed, true},
		{StateInitializing, StateBuilding, false},
		{StateBuilding, StateNormalizing, false},
		{StateNormalizing, StateNormalizing, false},
		{StateDone, StateFailed, false},
		{StateFailed, StateNormalizing, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStateTerminal(t *testing.T) {
	t.Parallel()
	assert.True(t, StateDone.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.False(t, StateLinking.Terminal())
}

func TestRunPhases_Success(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	phases := []Phase{
		stubPhase{state: StateNormalizing},
		stubPhase{state: StateAllocating},
		stubPhase{state: StateBuilding},
		stubPhase{state: StateLinking},
	}

	trace, err := RunPhases(&Context{Context: context.Background(), Observer: obs}, phases)

	require.NoError(t, err)
	assert.Equal(t, []State{
		StateInitializing, StateNormalizing, StateAllocating, StateBuilding, StateLinking, StateDone,
	}, trace)

	started := obs.ofType(EventPhaseStarted)
	require.Len(t, started, 4)
	assert.Equal(t, "[Normalizing (1/4)] starting", started[0].Message)
	assert.Equal(t, "[Linking (4/4)] starting", started[3].Message)
	assert.Len(t, obs.ofType(EventPhaseCompleted), 4)
	assert.Empty(t, obs.ofType(EventPhaseFailed))
}

func TestRunPhases_Failure(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	var buildRan bool
	phases := []Phase{
		stubPhase{state: StateNormalizing},
		stubPhase{state: StateAllocating, err: assert.AnError},
		stubPhase{state: StateBuilding, ran: &buildRan},
	}

	trace, err := RunPhases(&Context{Context: context.Background(), Observer: obs}, phases)

	require.Error(t, err)
	var phaseErr *PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, StateAllocating, phaseErr.State)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "Allocating phase failed")
	assert.False(t, buildRan)
	assert.Equal(t, []State{StateInitializing, StateNormalizing, StateAllocating, StateFailed}, trace)

	failed := obs.ofType(EventPhaseFailed)
	require.Len(t, failed, 1)
	assert.Equal(t, StateAllocating, failed[0].Phase)
	assert.ErrorIs(t, failed[0].Err, assert.AnError)
}

func TestRunPhases_RejectsOutOfOrderPhases(t *testing.T) {
	t.Parallel()
	var ran bool
	phases := []Phase{stubPhase{state: StateBuilding, ran: &ran}}

	trace, err := RunPhases(&Context{Context: context.Background(), Observer: &recordingObserver{}}, phases)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition from Initializing to Building")
	assert.False(t, ran)
	assert.Equal(t, []State{StateInitializing, StateFailed}, trace)
}

func TestAssemble_Defaults(t *testing.T) {
	t.Parallel()
	res := assemble(t, nil)

	assert.Equal(t, []string{
		"search-vpc-dev",
		"search-igw-dev",
		"search-subnet-0-dev",
		"search-subnet-1-dev",
		"search-route-table-dev",
		"search-sg-dev",
		"search-internet-route-dev",
		"search-rta-0-dev",
		"search-rta-1-dev",
		"search-postgres-ingress-0-dev",
		"search-egress-all-dev",
		"search-subnet-group-dev",
		"search-master-password-dev",
		"search-monitoring-role-dev",
		"search-monitoring-policy-dev",
		"search-cluster-params-dev",
		"search-instance-params-dev",
		"search-cluster-dev",
		"search-instance-0-dev",
	}, res.Graph.Names())
	assert.Equal(t, []State{
		StateInitializing, StateNormalizing, StateAllocating, StateBuilding, StateLinking, StateDone,
	}, res.States)
	assert.Empty(t, res.Warnings)
	require.Len(t, res.Blocks, 2)
	assert.Equal(t, "10.10.6.0/24", res.Blocks[0].String())
	assert.Equal(t, "10.10.7.0/24", res.Blocks[1].String())
	assert.Equal(t, "us-west-2", res.Config.Region)
}

func TestAssemble_LinksReferencesByName(t *testing.T) {
	t.Parallel()
	res := assemble(t, nil)

	cluster, ok := res.Graph.Get("search-cluster-dev")
	require.True(t, ok)
	fp := cluster.ForProvider()
	assert.Equal(t, map[string]any{"name": "search-subnet-group-dev"}, fp["dbSubnetGroupNameRef"])
	assert.Equal(t, []any{map[string]any{"name": "search-sg-dev"}}, fp["vpcSecurityGroupIdRefs"])
	assert.Equal(t, map[string]any{"name": "search-cluster-params-dev"}, fp["dbClusterParameterGroupNameRef"])
	assert.Equal(t, map[string]any{
		"name":      "search-master-password-dev",
		"namespace": "default",
		"key":       "password",
	}, fp["masterPasswordSecretRef"])
	assert.NotContains(t, fp, "manageMasterUserPassword")

	assert.Equal(t,
		"search-sg-dev,search-subnet-group-dev,search-master-password-dev,search-cluster-params-dev",
		cluster.Annotations[descriptor.AnnotationDependsOn])
	assert.Equal(t, "17", cluster.Annotations[descriptor.AnnotationBuildOrder])

	group, _ := res.Graph.Get("search-subnet-group-dev")
	assert.Equal(t, []any{
		map[string]any{"name": "search-subnet-0-dev"},
		map[string]any{"name": "search-subnet-1-dev"},
	}, group.ForProvider()["subnetIdRefs"])

	vpc, _ := res.Graph.Get("search-vpc-dev")
	assert.NotContains(t, vpc.Annotations, descriptor.AnnotationDependsOn)
	assert.Equal(t, "0", vpc.Annotations[descriptor.AnnotationBuildOrder])
}

func TestAssemble_InstanceOrdering(t *testing.T) {
	t.Parallel()
	res := assemble(t, map[string]any{"instanceCount": 2})

	instance, ok := res.Graph.Get("search-instance-1-dev")
	require.True(t, ok)
	fp := instance.ForProvider()
	assert.Equal(t, "us-west-2b", fp["availabilityZone"])
	assert.Equal(t, map[string]any{"name": "search-cluster-dev"}, fp["clusterIdentifierRef"])
	assert.Equal(t, map[string]any{"name": "search-monitoring-role-dev"}, fp["monitoringRoleArnRef"])
	assert.Contains(t, res.Graph.Dependencies("search-instance-1-dev"), "search-monitoring-policy-dev")
	assert.Equal(t,
		"search-monitoring-role-dev,search-monitoring-policy-dev,search-instance-params-dev,search-cluster-dev",
		instance.Annotations[descriptor.AnnotationDependsOn])
}

func TestAssemble_OptionalResources(t *testing.T) {
	t.Parallel()
	res := assemble(t, map[string]any{
		"monitoringInterval": 0,
		"vectorExtension":    false,
		"generatePassword":   false,
	})

	names := res.Graph.Names()
	for _, absent := range []string{
		"search-master-password-dev",
		"search-monitoring-role-dev",
		"search-monitoring-policy-dev",
		"search-cluster-params-dev",
		"search-instance-params-dev",
	} {
		assert.NotContains(t, names, absent)
	}
	assert.Len(t, names, 14)

	cluster, _ := res.Graph.Get("search-cluster-dev")
	assert.Equal(t, true, cluster.ForProvider()["manageMasterUserPassword"])
	assert.NotContains(t, cluster.ForProvider(), "dbClusterParameterGroupNameRef")
}

func TestAssemble_ReuseExistingNetwork(t *testing.T) {
	t.Parallel()
	res := assemble(t, map[string]any{
		"vpcId":     "vpc-0abc",
		"subnetIds": []any{"subnet-a", "subnet-b", "subnet-c"},
	})

	assert.Empty(t, res.Blocks)
	for _, d := range res.Graph.Descriptors() {
		assert.NotEqual(t, descriptor.KindVPC, d.Kind)
		assert.NotEqual(t, descriptor.KindSubnet, d.Kind)
		assert.NotEqual(t, descriptor.KindRouteTable, d.Kind)
	}

	sg, _ := res.Graph.Get("search-sg-dev")
	assert.Equal(t, "vpc-0abc", sg.ForProvider()["vpcId"])
	assert.NotContains(t, sg.Annotations, descriptor.AnnotationDependsOn)

	group, _ := res.Graph.Get("search-subnet-group-dev")
	assert.Equal(t, []any{"subnet-a", "subnet-b", "subnet-c"}, group.ForProvider()["subnetIds"])

	instance, _ := res.Graph.Get("search-instance-0-dev")
	assert.NotContains(t, instance.ForProvider(), "availabilityZone")
}

func TestAssemble_SelectorMode(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	res := assemble(t, map[string]any{"referenceMode": "selector"}, WithObserver(obs))

	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0], "deprecated")
	require.Len(t, obs.ofType(EventDeprecation), 1)

	sg, _ := res.Graph.Get("search-sg-dev")
	sel, found, err := unstructured.NestedStringMap(sg.Payload, "spec", "forProvider", "vpcIdSelector", "matchLabels")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "vpc", sel[labels.KeyComponent])
	assert.NotContains(t, sg.ForProvider(), "vpcIdRef")

	// Secret key selectors cannot match labels.
	cluster, _ := res.Graph.Get("search-cluster-dev")
	ref, ok := cluster.ForProvider()["masterPasswordSecretRef"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "search-master-password-dev", ref["name"])
}

func TestAssemble_EmitsResourceEvents(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	res := assemble(t, nil, WithObserver(obs))

	built := obs.ofType(EventResourceBuilt)
	require.Len(t, built, res.Graph.Len())
	assert.Equal(t, "search-vpc-dev", built[0].Resource)
	assert.Equal(t, "VPC", built[0].Kind)
	for _, e := range obs.events {
		assert.NotContains(t, e.Message, "Sup3r$ecretPassw0rd")
	}
}

func TestAssemble_NormalizationFailure(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}

	res, err := Assemble(context.Background(), composite(map[string]any{"azCount": 1}),
		WithObserver(obs), WithPasswordGenerator(fixedPassword))

	require.Error(t, err)
	assert.Nil(t, res)
	var phaseErr *PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, StateNormalizing, phaseErr.State)
	var violations config.ValidationErrors
	require.ErrorAs(t, err, &violations)
	assert.Equal(t, "azCount", violations[0].Field)
	assert.False(t, retry.IsFatal(err))
}

func TestAssemble_AddressSpaceExhausted(t *testing.T) {
	t.Parallel()

	_, err := Assemble(context.Background(), composite(map[string]any{"vpcCidr": "10.0.0.0/28"}),
		WithPasswordGenerator(fixedPassword))

	require.Error(t, err)
	var phaseErr *PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, StateAllocating, phaseErr.State)
	assert.Contains(t, err.Error(), "address space exhausted")
}

func TestAssemble_InstanceCountZero(t *testing.T) {
	t.Parallel()

	_, err := Assemble(context.Background(), composite(map[string]any{"instanceCount": 0}),
		WithPasswordGenerator(fixedPassword))

	require.Error(t, err)
	var phaseErr *PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, StateBuilding, phaseErr.State)
	var violation *config.ValidationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "instanceCount", violation.Field)
}

func TestAssemble_PasswordGeneratorFailure(t *testing.T) {
	t.Parallel()
	calls := 0
	failing := func() (string, error) {
		calls++
		return "", errors.New("entropy unavailable")
	}

	_, err := Assemble(context.Background(), composite(nil), WithPasswordGenerator(failing))

	require.Error(t, err)
	assert.Equal(t, 1, calls, "the generator is not retried")
	assert.Contains(t, err.Error(), "failed to generate master password: entropy unavailable")
	var phaseErr *PhaseError
	require.ErrorAs(t, err, &phaseErr)
	assert.Equal(t, StateBuilding, phaseErr.State)
}

func TestAssemble_RegionOnlyInput(t *testing.T) {
	t.Parallel()
	res := assemble(t, map[string]any{"region": "us-west-2"})

	require.Equal(t, 19, res.Graph.Len())
	assert.Contains(t, res.Graph.Dependencies("search-instance-0-dev"), "search-monitoring-policy-dev")
	instance, ok := res.Graph.Get("search-instance-0-dev")
	require.True(t, ok)
	assert.Contains(t, instance.ForProvider(), "monitoringRoleArnRef")
}

func TestLinkPhase_ForwardReferenceIsFatal(t *testing.T) {
	t.Parallel()
	res := assemble(t, nil)
	built := res.Graph.Descriptors()
	// Swap the VPC behind its first consumer.
	built[0], built[1] = built[1], built[0]
	for _, d := range built {
		delete(d.Annotations, descriptor.AnnotationDependsOn)
		delete(d.Annotations, descriptor.AnnotationBuildOrder)
	}
	ctx := &Context{
		Context:  context.Background(),
		Log:      logr.Discard(),
		Observer: &recordingObserver{},
		Built:    built,
	}

	err := linkPhase{}.Run(ctx)

	require.Error(t, err)
	assert.True(t, retry.IsFatal(err))
	assert.Contains(t, err.Error(), "search-igw-dev")
	assert.Nil(t, ctx.Graph)
}

func TestAssemble_Metrics(t *testing.T) {
	// Not parallel: counters are process-wide.
	successBefore := testutil.ToFloat64(runsTotal.WithLabelValues(resultSuccess, string(StateDone)))
	failedBefore := testutil.ToFloat64(runsTotal.WithLabelValues(resultFailed, string(StateNormalizing)))
	vpcBefore := testutil.ToFloat64(descriptorsTotal.WithLabelValues("VPC"))
	subnetsBefore := testutil.ToFloat64(descriptorsTotal.WithLabelValues("Subnet"))

	assemble(t, nil)
	_, err := Assemble(context.Background(), composite(map[string]any{"azCount": 1}))
	require.Error(t, err)

	assert.Equal(t, successBefore+1, testutil.ToFloat64(runsTotal.WithLabelValues(resultSuccess, string(StateDone))))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(runsTotal.WithLabelValues(resultFailed, string(StateNormalizing))))
	assert.Equal(t, vpcBefore+1, testutil.ToFloat64(descriptorsTotal.WithLabelValues("VPC")))
	assert.Equal(t, subnetsBefore+2, testutil.ToFloat64(descriptorsTotal.WithLabelValues("Subnet")))
}

func TestLogObserver(t *testing.T) {
	t.Parallel()
	var lines []string
	log := funcr.New(func(prefix, args string) { lines = append(lines, prefix+" "+args) }, funcr.Options{})
	obs := NewLogObserver(log)

	obs.Event(Event{Type: EventPhaseStarted, Phase: StateBuilding, Message: "[Building (3/4)] starting"})
	obs.Event(Event{Type: EventPhaseFailed, Phase: StateBuilding, Message: "[Building (3/4)] failed", Err: assert.AnError})

	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "starting")
	assert.Contains(t, lines[0], "Building")
	assert.True(t, strings.Contains(lines[1], assert.AnError.Error()))

	// Resource events are verbose.
	obs.Event(Event{Type: EventResourceBuilt, Resource: "search-vpc-dev", Kind: "VPC", Message: "built"})
	assert.Len(t, lines, 2)
}
