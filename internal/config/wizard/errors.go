package wizard

import "errors"

// Validation errors for the interactive wizard.
var (
	errClaimNameRequired = errors.New("name is required")
	errClaimNameInvalid  = errors.New("name must be 1-40 lowercase alphanumeric characters or hyphens, starting with a letter")
	errCIDRRequired      = errors.New("CIDR is required")
	errCIDRInvalid       = errors.New("invalid CIDR format (expected: x.x.x.x/xx)")
	errCapacityInvalid   = errors.New("capacity must be a multiple of 0.5 between 0 and 256 ACUs")
	errSubnetsRequired   = errors.New("at least two subnet IDs are required")
	errVPCIDInvalid      = errors.New("VPC ID must look like vpc-0123abcd")
	errRetentionInvalid  = errors.New("backup retention must be between 1 and 35 days")
)
