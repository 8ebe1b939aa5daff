package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	// Identity
	ClaimName string
	Namespace string
	EnvSuffix string
	Region    string

	// Network. VPCID switches to an existing network.
	ReuseNetwork bool
	VPCCIDR      string
	VPCID        string
	SubnetIDs    []string
	AZCount      int

	// Database
	EngineVersion string
	MinCapacity   string
	MaxCapacity   string
	InstanceClass string
	InstanceCount int

	// Credentials. PasswordSecret is used when GeneratePassword is false.
	GeneratePassword bool
	PasswordSecret   string

	// Advanced options (only set in advanced mode)
	AdvancedOptions *AdvancedOptions
}

// AdvancedOptions holds advanced configuration options.
type AdvancedOptions struct {
	ProviderConfig        string
	AllowedCIDRs          []string
	BackupRetentionPeriod int
	DeletionProtection    bool
	MonitoringInterval    int
	VectorExtension       bool
}

// RunWizard runs the interactive configuration wizard.
// If advanced is true, additional configuration options are shown.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, advanced bool) (*WizardResult, error) {
	result := &WizardResult{}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	if err := runNetworkGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	if err := runDatabaseGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if err := runCredentialsGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}

	if advanced {
		advOpts := &AdvancedOptions{}
		if err := runAdvancedGroup(ctx, advOpts); err != nil {
			return nil, fmt.Errorf("advanced: %w", err)
		}
		result.AdvancedOptions = advOpts
	}

	return result, nil
}
