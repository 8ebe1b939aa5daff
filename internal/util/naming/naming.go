package naming

import "fmt"

// Naming functions for desired-state resources.
// Every name carries the claim and the environment suffix so that several
// environments of the same claim never collide inside one composition.

// DefaultClaim is used when the composite resource carries no name.
const DefaultClaim = "vectordb"

func VPC(claim, env string) string {
	return singleton(claim, "vpc", env)
}

func InternetGateway(claim, env string) string {
	return singleton(claim, "igw", env)
}

func Subnet(claim, env string, index int) string {
	return indexed(claim, "subnet", index, env)
}

func RouteTable(claim, env string) string {
	return singleton(claim, "route-table", env)
}

func InternetRoute(claim, env string) string {
	return singleton(claim, "internet-route", env)
}

func RouteTableAssociation(claim, env string, index int) string {
	return indexed(claim, "rta", index, env)
}

func SecurityGroup(claim, env string) string {
	return singleton(claim, "sg", env)
}

// IngressRule names the rule admitting the index-th allowed source range.
func IngressRule(claim, env string, index int) string {
	return indexed(claim, "postgres-ingress", index, env)
}

func EgressRule(claim, env string) string {
	return singleton(claim, "egress-all", env)
}

func SubnetGroup(claim, env string) string {
	return singleton(claim, "subnet-group", env)
}

func PasswordSecret(claim, env string) string {
	return singleton(claim, "master-password", env)
}

func MonitoringRole(claim, env string) string {
	return singleton(claim, "monitoring-role", env)
}

func MonitoringPolicyAttachment(claim, env string) string {
	return singleton(claim, "monitoring-policy", env)
}

func ClusterParameterGroup(claim, env string) string {
	return singleton(claim, "cluster-params", env)
}

func InstanceParameterGroup(claim, env string) string {
	return singleton(claim, "instance-params", env)
}

// Cluster is also the default database cluster identifier.
func Cluster(claim, env string) string {
	return singleton(claim, "cluster", env)
}

// ConnectionSecret receives the endpoint and credentials published by the cluster.
func ConnectionSecret(claim, env string) string {
	return singleton(claim, "connection", env)
}

func Instance(claim, env string, index int) string {
	return indexed(claim, "instance", index, env)
}

func FinalSnapshot(clusterIdentifier string) string {
	return fmt.Sprintf("%s-final-snapshot", clusterIdentifier)
}

// AvailabilityZone returns the zone for the given ordinal, assigning letters round-robin.
func AvailabilityZone(region string, index int) string {
	return fmt.Sprintf("%s%c", region, rune('a'+index%26))
}

func singleton(claim, kind, env string) string {
	return fmt.Sprintf("%s-%s-%s", claim, kind, env)
}

func indexed(claim, kind string, index int, env string) string {
	return fmt.Sprintf("%s-%s-%d-%s", claim, kind, index, env)
}
