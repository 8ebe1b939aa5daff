package assembler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/netip"
	"strings"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"

	"github.com/imamik/vectordb/internal/assembler"
	"github.com/imamik/vectordb/internal/descriptor"
)

const suitePassword = "Sup3r$ecretPassw0rd"

func suiteComposite(spec map[string]any) map[string]any {
	return map[string]any{
		"apiVersion": "vectordb.io/v1alpha1",
		"kind":       "VectorDatabase",
		"metadata":   map[string]any{"name": "search", "namespace": "default"},
		"spec":       spec,
	}
}

func mustAssemble(spec map[string]any, opts ...assembler.Option) *assembler.Result {
	GinkgoHelper()
	fixed := func() (string, error) { return suitePassword, nil }
	opts = append([]assembler.Option{assembler.WithPasswordGenerator(fixed)}, opts...)
	res, err := assembler.Assemble(context.Background(), suiteComposite(spec), opts...)
	Expect(err).NotTo(HaveOccurred())
	return res
}

// referencedNames returns every name written into a *Ref or *Refs field.
// The master password reference may name a secret outside the graph.
func referencedNames(fp map[string]any) []string {
	var out []string
	for key, v := range fp {
		switch {
		case key == "masterPasswordSecretRef":
		case strings.HasSuffix(key, "Ref"):
			if m, ok := v.(map[string]any); ok {
				out = append(out, m["name"].(string))
			}
		case strings.HasSuffix(key, "Refs"):
			for _, e := range v.([]any) {
				out = append(out, e.(map[string]any)["name"].(string))
			}
		}
	}
	return out
}

var scenarios = []TableEntry{
	Entry("defaults", map[string]any(nil)),
	Entry("five zones", map[string]any{"azCount": 5, "instanceCount": 3}),
	Entry("selector mode", map[string]any{"referenceMode": "selector"}),
	Entry("existing network", map[string]any{"vpcId": "vpc-0abc", "subnetIds": "subnet-a,subnet-b"}),
	Entry("minimal", map[string]any{"monitoringInterval": 0, "vectorExtension": false, "generatePassword": false}),
	Entry("external secret", map[string]any{
		"region":            "eu-central-1",
		"generatePassword":  false,
		"passwordSecretRef": map[string]any{"name": "pg-admin"},
	}),
}

var _ = Describe("Assembled graphs", func() {
	DescribeTable("are deterministic",
		func(spec map[string]any) {
			first := mustAssemble(spec)
			second := mustAssemble(spec)
			Expect(cmp.Diff(first.Graph.Resources(), second.Graph.Resources())).To(BeEmpty())
			Expect(first.Graph.Fingerprint()).To(Equal(second.Graph.Fingerprint()))
		},
		scenarios,
	)

	DescribeTable("only depend on earlier resources",
		func(spec map[string]any) {
			g := mustAssemble(spec).Graph
			position := map[string]int{}
			for i, name := range g.Names() {
				position[name] = i
			}
			for _, e := range g.Edges() {
				Expect(position).To(HaveKey(e.To), "edge %s", e)
				Expect(position[e.To]).To(BeNumerically("<", position[e.From]), "edge %s", e)
			}
			var layered int
			for _, layer := range g.Layers() {
				layered += len(layer)
			}
			Expect(layered).To(Equal(g.Len()))
		},
		scenarios,
	)

	DescribeTable("reference only resources inside the graph",
		func(spec map[string]any) {
			g := mustAssemble(spec).Graph
			for _, d := range g.Descriptors() {
				for _, name := range referencedNames(d.ForProvider()) {
					_, ok := g.Get(name)
					Expect(ok).To(BeTrue(), "%s references unknown %s", d, name)
					Expect(g.Dependencies(d.Name)).To(ContainElement(name))
				}
				if deps := d.Annotations[descriptor.AnnotationDependsOn]; deps != "" {
					Expect(strings.Split(deps, ",")).To(ConsistOf(g.Dependencies(d.Name)))
				}
			}
		},
		scenarios,
	)

	DescribeTable("carry the master password in at most one place",
		func(spec map[string]any) {
			g := mustAssemble(spec).Graph
			for _, d := range g.Descriptors() {
				b, err := json.Marshal(d.Payload)
				Expect(err).NotTo(HaveOccurred())
				if d.Kind != descriptor.KindSecret {
					Expect(string(b)).NotTo(ContainSubstring(suitePassword), "%s", d)
				}
				if d.Kind == descriptor.KindCluster {
					fp := d.ForProvider()
					_, managed := fp["manageMasterUserPassword"]
					_, referenced := fp["masterPasswordSecretRef"]
					Expect(managed).NotTo(Equal(referenced), "exactly one credential source")
				}
			}
		},
		scenarios,
	)

	DescribeTable("allocate disjoint database subnets inside the parent network",
		func(azCount int) {
			res := mustAssemble(map[string]any{"azCount": azCount, "vpcCidr": "172.20.0.0/16"})
			parent := netip.MustParsePrefix("172.20.0.0/16")
			Expect(res.Blocks).To(HaveLen(azCount))
			for i, b := range res.Blocks {
				Expect(b.Prefix.Bits()).To(Equal(24))
				Expect(parent.Contains(b.Prefix.Addr())).To(BeTrue())
				for _, other := range res.Blocks[i+1:] {
					Expect(b.Prefix.Overlaps(other.Prefix)).To(BeFalse(), "%s overlaps %s", b, other)
				}
			}
		},
		Entry("2 zones", 2),
		Entry("3 zones", 3),
		Entry("6 zones", 6),
		Entry("26 zones", 26),
	)

	It("fingerprints independently of the generated password", func() {
		first := mustAssemble(nil)
		second := mustAssemble(nil, assembler.WithPasswordGenerator(func() (string, error) { return "An0ther!Passw0rd", nil }))
		Expect(first.Graph.Fingerprint()).To(Equal(second.Graph.Fingerprint()))
	})

	Context("with five zones", func() {
		var res *assembler.Result

		BeforeEach(func() {
			res = mustAssemble(map[string]any{"azCount": 5, "instanceCount": 7})
		})

		It("creates one /24 per zone from the database tier offset", func() {
			var cidrs []string
			for i := range 5 {
				subnet, ok := res.Graph.Get(fmt.Sprintf("search-subnet-%d-dev", i))
				Expect(ok).To(BeTrue())
				cidrs = append(cidrs, subnet.ForProvider()["cidrBlock"].(string))
			}
			Expect(cidrs).To(Equal([]string{
				"10.10.6.0/24", "10.10.7.0/24", "10.10.8.0/24", "10.10.9.0/24", "10.10.10.0/24",
			}))
		})

		It("spreads instances over the zones round-robin", func() {
			zones := make([]string, 0, 7)
			for i := range 7 {
				instance, ok := res.Graph.Get(fmt.Sprintf("search-instance-%d-dev", i))
				Expect(ok).To(BeTrue())
				zones = append(zones, instance.ForProvider()["availabilityZone"].(string))
			}
			Expect(zones).To(Equal([]string{
				"us-west-2a", "us-west-2b", "us-west-2c", "us-west-2d", "us-west-2e", "us-west-2a", "us-west-2b",
			}))
		})
	})

	Context("in eu-central-1 with an existing password secret", func() {
		var res *assembler.Result

		BeforeEach(func() {
			res = mustAssemble(map[string]any{
				"region":            "eu-central-1",
				"envSuffix":         "prod",
				"generatePassword":  false,
				"passwordSecretRef": map[string]any{"name": "pg-admin", "namespace": "secrets"},
			})
		})

		It("does not generate a secret", func() {
			for _, d := range res.Graph.Descriptors() {
				Expect(d.Kind).NotTo(Equal(descriptor.KindSecret))
			}
		})

		It("points the cluster at the caller's secret", func() {
			cluster, ok := res.Graph.Get("search-cluster-prod")
			Expect(ok).To(BeTrue())
			Expect(cluster.ForProvider()["masterPasswordSecretRef"]).To(Equal(map[string]any{
				"name":      "pg-admin",
				"namespace": "secrets",
				"key":       "password",
			}))
			Expect(cluster.Annotations[descriptor.AnnotationDependsOn]).NotTo(ContainSubstring("master-password"))
		})

		It("places every regional resource in the region", func() {
			for _, d := range res.Graph.Descriptors() {
				region, found, _ := unstructured.NestedString(d.Payload, "spec", "forProvider", "region")
				switch d.Kind {
				case descriptor.KindRole, descriptor.KindRolePolicyAttachment, descriptor.KindSecret:
					Expect(found).To(BeFalse(), "%s", d)
				default:
					Expect(region).To(Equal("eu-central-1"), "%s", d)
				}
			}
			subnet, _ := res.Graph.Get("search-subnet-1-prod")
			Expect(subnet.ForProvider()["availabilityZone"]).To(Equal("eu-central-1b"))
		})
	})

	Context("in selector mode", func() {
		It("addresses every generated target by labels", func() {
			res := mustAssemble(map[string]any{"referenceMode": "selector"})
			for _, d := range res.Graph.Descriptors() {
				fp := d.ForProvider()
				for key := range fp {
					if key == "masterPasswordSecretRef" {
						continue
					}
					Expect(key).NotTo(HaveSuffix("Ref"), "%s", d)
					Expect(key).NotTo(HaveSuffix("Refs"), "%s", d)
				}
			}
			group, _ := res.Graph.Get("search-subnet-group-dev")
			Expect(group.ForProvider()).To(HaveKey("subnetIdSelector"))
			Expect(res.Graph.Dependencies("search-subnet-group-dev")).To(ConsistOf(
				"search-subnet-0-dev", "search-subnet-1-dev",
			))
		})
	})
})
