package wizard

import (
	"context"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/imamik/vectordb/internal/config"
)

// claimNameRegex validates claim names: they prefix every resource name and the cluster identifier.
var claimNameRegex = regexp.MustCompile(`^[a-z](?:[a-z0-9-]{0,38}[a-z0-9])?$`)

var vpcIDRegex = regexp.MustCompile(`^vpc-[0-9a-f]{8,17}$`)

// runIdentityGroup prompts for name, namespace, environment and region.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	result.Namespace = config.DefaultNamespace
	result.EnvSuffix = config.DefaultEnvironment
	result.Region = config.DefaultRegion

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Prefix of every generated resource").
				Placeholder("search").
				Value(&result.ClaimName).
				Validate(validateClaimName),
			huh.NewInput().
				Title("Namespace").
				Description("Namespace of the composite and the password secret").
				Value(&result.Namespace).
				Validate(validateClaimName),
			huh.NewInput().
				Title("Environment").
				Description("Suffix appended to every resource name").
				Value(&result.EnvSuffix).
				Validate(validateClaimName),
			huh.NewSelect[string]().
				Title("Region").
				Description("AWS region").
				Options(RegionsToOptions()...).
				Value(&result.Region),
		).Title("Identity"),
	).RunWithContext(ctx)
}

// runNetworkGroup prompts for a new or existing network.
func runNetworkGroup(ctx context.Context, result *WizardResult) error {
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Use an existing VPC?").
				Description("Otherwise a new VPC with one database subnet per zone is created").
				Value(&result.ReuseNetwork),
		).Title("Network"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	if result.ReuseNetwork {
		var subnets string
		err := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("VPC ID").
					Placeholder("vpc-0123abcd").
					Value(&result.VPCID).
					Validate(validateVPCID),
				huh.NewInput().
					Title("Subnet IDs").
					Description("Comma-separated subnets in at least two zones").
					Placeholder("subnet-0a, subnet-0b").
					Value(&subnets).
					Validate(validateSubnets),
			).Title("Existing Network"),
		).RunWithContext(ctx)
		if err != nil {
			return err
		}
		result.SubnetIDs = parseList(subnets)
		return nil
	}

	result.VPCCIDR = config.DefaultVPCCIDR
	result.AZCount = 3
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("VPC CIDR").
				Description("Parent network; database subnets are /24 blocks inside it").
				Value(&result.VPCCIDR).
				Validate(validateCIDR),
			huh.NewSelect[int]().
				Title("Availability Zones").
				Options(ZoneCountOptions...).
				Value(&result.AZCount),
		).Title("New Network"),
	).RunWithContext(ctx)
}

// runDatabaseGroup prompts for engine, capacity and instances.
func runDatabaseGroup(ctx context.Context, result *WizardResult) error {
	result.EngineVersion = config.DefaultEngineVersion
	result.MinCapacity = config.DefaultMinCapacity.String()
	result.MaxCapacity = config.DefaultMaxCapacity.String()
	result.InstanceClass = config.DefaultInstanceClass
	result.InstanceCount = config.DefaultInstanceCount

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Engine Version").
				Description("Aurora PostgreSQL version").
				Options(VersionsToOptions(EngineVersions)...).
				Value(&result.EngineVersion),
			huh.NewSelect[string]().
				Title("Instance Class").
				Options(InstanceClassesToOptions()...).
				Value(&result.InstanceClass),
			huh.NewSelect[int]().
				Title("Instances").
				Options(InstanceCountOptions...).
				Value(&result.InstanceCount),
		).Title("Database"),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum Capacity (ACUs)").
				Value(&result.MinCapacity).
				Validate(validateCapacity),
			huh.NewInput().
				Title("Maximum Capacity (ACUs)").
				Value(&result.MaxCapacity).
				Validate(validateCapacity),
		).Title("Serverless Capacity").
			WithHideFunc(func() bool { return result.InstanceClass != config.DefaultInstanceClass }),
	).RunWithContext(ctx)
}

// runCredentialsGroup prompts for the master password source.
func runCredentialsGroup(ctx context.Context, result *WizardResult) error {
	result.GeneratePassword = true

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Generate Master Password?").
				Description("Stores a random password in a secret next to the composite").
				Value(&result.GeneratePassword),
		).Title("Credentials"),
	).RunWithContext(ctx)
	if err != nil || result.GeneratePassword {
		return err
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Existing Password Secret").
				Description("Leave empty to let AWS manage the master password").
				Placeholder("pg-admin").
				Value(&result.PasswordSecret),
		).Title("Credentials"),
	).RunWithContext(ctx)
}

// runAdvancedGroup prompts for access, backup and monitoring settings.
func runAdvancedGroup(ctx context.Context, opts *AdvancedOptions) error {
	opts.ProviderConfig = config.DefaultProviderConfig
	opts.BackupRetentionPeriod = config.DefaultBackupRetentionPeriod
	opts.DeletionProtection = true
	opts.MonitoringInterval = config.DefaultMonitoringInterval
	opts.VectorExtension = true
	allowed := config.DefaultAllowedCIDR
	retention := strconv.Itoa(opts.BackupRetentionPeriod)

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Provider Config").
				Description("Crossplane AWS provider configuration").
				Value(&opts.ProviderConfig),
			huh.NewInput().
				Title("Allowed CIDRs").
				Description("Comma-separated networks allowed to reach PostgreSQL").
				Value(&allowed).
				Validate(validateCIDRList),
		).Title("Access"),
		huh.NewGroup(
			huh.NewInput().
				Title("Backup Retention (days)").
				Value(&retention).
				Validate(validateRetention),
			huh.NewConfirm().
				Title("Deletion Protection").
				Value(&opts.DeletionProtection),
			huh.NewSelect[int]().
				Title("Enhanced Monitoring").
				Options(MonitoringIntervalOptions...).
				Value(&opts.MonitoringInterval),
			huh.NewConfirm().
				Title("Preload pgvector").
				Description("Adds parameter groups with shared_preload_libraries=vector").
				Value(&opts.VectorExtension),
		).Title("Operations"),
	).RunWithContext(ctx)
	if err != nil {
		return err
	}

	opts.AllowedCIDRs = parseList(allowed)
	opts.BackupRetentionPeriod, _ = strconv.Atoi(strings.TrimSpace(retention))
	return nil
}

func validateClaimName(s string) error {
	if s == "" {
		return errClaimNameRequired
	}
	if !claimNameRegex.MatchString(s) {
		return errClaimNameInvalid
	}
	return nil
}

func validateCIDR(s string) error {
	if s == "" {
		return errCIDRRequired
	}
	if _, _, err := net.ParseCIDR(s); err != nil {
		return errCIDRInvalid
	}
	return nil
}

func validateCIDRList(s string) error {
	cidrs := parseList(s)
	if len(cidrs) == 0 {
		return errCIDRRequired
	}
	for _, c := range cidrs {
		if err := validateCIDR(c); err != nil {
			return err
		}
	}
	return nil
}

func validateCapacity(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return errCapacityInvalid
	}
	if d.LessThan(config.MinCapacityFloor) || d.GreaterThan(config.MaxCapacityCeiling) {
		return errCapacityInvalid
	}
	if !d.Mod(config.CapacityStep).IsZero() {
		return errCapacityInvalid
	}
	return nil
}

func validateRetention(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 35 {
		return errRetentionInvalid
	}
	return nil
}

func validateVPCID(s string) error {
	if !vpcIDRegex.MatchString(strings.TrimSpace(s)) {
		return errVPCIDInvalid
	}
	return nil
}

func validateSubnets(s string) error {
	if len(parseList(s)) < config.MinReusedSubnets {
		return errSubnetsRequired
	}
	return nil
}

// parseList parses a comma-separated list, dropping blanks and duplicates.
func parseList(input string) []string {
	parts := lo.Map(strings.Split(input, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
	return lo.Uniq(lo.Compact(parts))
}
