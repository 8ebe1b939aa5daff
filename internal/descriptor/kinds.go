package descriptor

import (
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime/schema"
)

// API groups of the managed resources.
var (
	EC2GroupVersion = schema.GroupVersion{Group: "ec2.aws.upbound.io", Version: "v1beta1"}
	RDSGroupVersion = schema.GroupVersion{Group: "rds.aws.upbound.io", Version: "v1beta1"}
	IAMGroupVersion = schema.GroupVersion{Group: "iam.aws.upbound.io", Version: "v1beta1"}
)

// Kinds emitted into desired state.
var (
	KindVPC                      = EC2GroupVersion.WithKind("VPC")
	KindInternetGateway          = EC2GroupVersion.WithKind("InternetGateway")
	KindSubnet                   = EC2GroupVersion.WithKind("Subnet")
	KindRouteTable               = EC2GroupVersion.WithKind("RouteTable")
	KindRoute                    = EC2GroupVersion.WithKind("Route")
	KindRouteTableAssociation    = EC2GroupVersion.WithKind("RouteTableAssociation")
	KindSecurityGroup            = EC2GroupVersion.WithKind("SecurityGroup")
	KindSecurityGroupIngressRule = EC2GroupVersion.WithKind("SecurityGroupIngressRule")
	KindSecurityGroupEgressRule  = EC2GroupVersion.WithKind("SecurityGroupEgressRule")

	KindDBSubnetGroup          = RDSGroupVersion.WithKind("SubnetGroup")
	KindCluster                = RDSGroupVersion.WithKind("Cluster")
	KindClusterInstance        = RDSGroupVersion.WithKind("ClusterInstance")
	KindClusterParameterGroup  = RDSGroupVersion.WithKind("ClusterParameterGroup")
	KindInstanceParameterGroup = RDSGroupVersion.WithKind("ParameterGroup")

	KindRole                 = IAMGroupVersion.WithKind("Role")
	KindRolePolicyAttachment = IAMGroupVersion.WithKind("RolePolicyAttachment")

	KindSecret = corev1.SchemeGroupVersion.WithKind("Secret")
)
