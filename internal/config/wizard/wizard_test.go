package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vectordb/internal/config"
)

func defaultResult() *WizardResult {
	return &WizardResult{
		ClaimName:        "search",
		Namespace:        config.DefaultNamespace,
		EnvSuffix:        config.DefaultEnvironment,
		Region:           config.DefaultRegion,
		VPCCIDR:          config.DefaultVPCCIDR,
		AZCount:          config.DefaultZoneCount,
		EngineVersion:    config.DefaultEngineVersion,
		MinCapacity:      config.DefaultMinCapacity.String(),
		MaxCapacity:      config.DefaultMaxCapacity.String(),
		InstanceClass:    config.DefaultInstanceClass,
		InstanceCount:    config.DefaultInstanceCount,
		GeneratePassword: true,
	}
}

func TestBuildComposite_Defaults(t *testing.T) {
	t.Parallel()

	vdb := BuildComposite(defaultResult())

	assert.Equal(t, "search", vdb.Name)
	assert.Equal(t, "default", vdb.Namespace)
	assert.Equal(t, "VectorDatabase", vdb.Kind)
	assert.Equal(t, config.DefaultRegion, vdb.Spec.Region)
	assert.Empty(t, vdb.Spec.EnvSuffix)
	assert.Empty(t, vdb.Spec.VPCCIDR)
	assert.Nil(t, vdb.Spec.AZCount)
	assert.Nil(t, vdb.Spec.GeneratePassword)
	assert.Empty(t, vdb.Spec.MinCapacity)
	assert.Nil(t, vdb.Spec.InstanceCount)
	assert.Nil(t, vdb.Spec.ProviderConfigRef)
}

func TestBuildComposite_Customized(t *testing.T) {
	t.Parallel()
	result := defaultResult()
	result.EnvSuffix = "prod"
	result.Region = "eu-central-1"
	result.AZCount = 3
	result.VPCCIDR = "172.16.0.0/16"
	result.MinCapacity = "0.5"
	result.InstanceCount = 2
	result.GeneratePassword = false
	result.PasswordSecret = "pg-admin"
	result.AdvancedOptions = &AdvancedOptions{
		ProviderConfig:        "aws-prod",
		AllowedCIDRs:          []string{"10.0.0.0/8"},
		BackupRetentionPeriod: 14,
		DeletionProtection:    false,
		MonitoringInterval:    0,
		VectorExtension:       true,
	}

	vdb := BuildComposite(result)
	spec := vdb.Spec

	assert.Equal(t, "prod", spec.EnvSuffix)
	assert.Equal(t, "172.16.0.0/16", spec.VPCCIDR)
	require.NotNil(t, spec.AZCount)
	assert.Equal(t, int32(3), *spec.AZCount)
	assert.Equal(t, "0.5", spec.MinCapacity)
	assert.Empty(t, spec.MaxCapacity)
	require.NotNil(t, spec.InstanceCount)
	assert.Equal(t, int32(2), *spec.InstanceCount)
	require.NotNil(t, spec.GeneratePassword)
	assert.False(t, *spec.GeneratePassword)
	require.NotNil(t, spec.PasswordSecretRef)
	assert.Equal(t, "pg-admin", spec.PasswordSecretRef.Name)
	assert.Equal(t, "password", spec.PasswordSecretRef.Key)

	require.NotNil(t, spec.ProviderConfigRef)
	assert.Equal(t, "aws-prod", spec.ProviderConfigRef.Name)
	assert.Equal(t, []string{"10.0.0.0/8"}, spec.AllowedCIDRs)
	require.NotNil(t, spec.BackupRetentionPeriod)
	assert.Equal(t, int32(14), *spec.BackupRetentionPeriod)
	require.NotNil(t, spec.DeletionProtection)
	assert.False(t, *spec.DeletionProtection)
	require.NotNil(t, spec.MonitoringInterval)
	assert.Equal(t, int32(0), *spec.MonitoringInterval)
	assert.Nil(t, spec.VectorExtension)
}

func TestBuildComposite_ExistingNetwork(t *testing.T) {
	t.Parallel()
	result := defaultResult()
	result.ReuseNetwork = true
	result.VPCID = "vpc-0abc1234"
	result.SubnetIDs = []string{"subnet-a", "subnet-b"}
	result.VPCCIDR = ""
	result.AZCount = 0

	vdb := BuildComposite(result)

	assert.Equal(t, "vpc-0abc1234", vdb.Spec.VPCID)
	assert.Equal(t, []string{"subnet-a", "subnet-b"}, vdb.Spec.SubnetIDs)
	assert.Empty(t, vdb.Spec.VPCCIDR)
	assert.Nil(t, vdb.Spec.AZCount)
}

func TestBuildComposite_ProvisionedClassDropsCapacity(t *testing.T) {
	t.Parallel()
	result := defaultResult()
	result.InstanceClass = "db.r6g.large"
	result.MinCapacity = "4"

	vdb := BuildComposite(result)

	assert.Equal(t, "db.r6g.large", vdb.Spec.InstanceClass)
	assert.Empty(t, vdb.Spec.MinCapacity)
}

func TestBuildComposite_ManagedPassword(t *testing.T) {
	t.Parallel()
	result := defaultResult()
	result.GeneratePassword = false

	vdb := BuildComposite(result)

	require.NotNil(t, vdb.Spec.GeneratePassword)
	assert.False(t, *vdb.Spec.GeneratePassword)
	assert.Nil(t, vdb.Spec.PasswordSecretRef)
}

func TestBuildComposite_Normalizes(t *testing.T) {
	t.Parallel()
	result := defaultResult()
	result.AZCount = 3
	result.AdvancedOptions = &AdvancedOptions{
		ProviderConfig:        "aws-prod",
		AllowedCIDRs:          []string{"10.0.0.0/8", "192.168.0.0/16"},
		BackupRetentionPeriod: 30,
		DeletionProtection:    true,
		MonitoringInterval:    15,
		VectorExtension:       false,
	}

	doc, err := BuildComposite(result).Document()
	require.NoError(t, err)
	cfg, err := config.Normalize(doc)
	require.NoError(t, err)

	assert.Equal(t, "search", cfg.Claim)
	assert.Equal(t, 3, cfg.ZoneCount)
	assert.Equal(t, "aws-prod", cfg.ProviderConfig)
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.0.0/16"}, cfg.AllowedCIDRs)
	assert.Equal(t, 30, cfg.Database.BackupRetentionPeriod)
	assert.Equal(t, 15, cfg.MonitoringInterval)
	assert.False(t, cfg.VectorExtension)
	assert.True(t, cfg.Credentials.Generate)
}

func TestValidateClaimName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "search", nil},
		{"with hyphen", "vector-search", nil},
		{"with digits", "search2", nil},
		{"empty", "", errClaimNameRequired},
		{"uppercase", "Search", errClaimNameInvalid},
		{"leading digit", "2search", errClaimNameInvalid},
		{"trailing hyphen", "search-", errClaimNameInvalid},
		{"too long", "a123456789012345678901234567890123456789x", errClaimNameInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantErr, validateClaimName(tt.input))
		})
	}
}

func TestValidateCIDR(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateCIDR("10.0.0.0/16"))
	assert.Equal(t, errCIDRRequired, validateCIDR(""))
	assert.Equal(t, errCIDRInvalid, validateCIDR("10.0.0.0"))
	assert.Equal(t, errCIDRInvalid, validateCIDR("not-a-cidr"))

	assert.NoError(t, validateCIDRList("10.0.0.0/8, 192.168.0.0/16"))
	assert.Equal(t, errCIDRRequired, validateCIDRList(" , "))
	assert.Equal(t, errCIDRInvalid, validateCIDRList("10.0.0.0/8,bad"))
}

func TestValidateCapacity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		valid bool
	}{
		{"0", true},
		{"0.5", true},
		{"2", true},
		{"256", true},
		{" 16 ", true},
		{"0.25", false},
		{"-1", false},
		{"256.5", false},
		{"lots", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if tt.valid {
				assert.NoError(t, validateCapacity(tt.input))
			} else {
				assert.Equal(t, errCapacityInvalid, validateCapacity(tt.input))
			}
		})
	}
}

func TestValidateNetworkInputs(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validateVPCID("vpc-0abc1234"))
	assert.Equal(t, errVPCIDInvalid, validateVPCID("vpc-xyz"))
	assert.Equal(t, errVPCIDInvalid, validateVPCID("0abc1234"))

	assert.NoError(t, validateSubnets("subnet-a,subnet-b"))
	assert.Equal(t, errSubnetsRequired, validateSubnets("subnet-a"))
	assert.Equal(t, errSubnetsRequired, validateSubnets("subnet-a, subnet-a"))

	assert.NoError(t, validateRetention("7"))
	assert.Equal(t, errRetentionInvalid, validateRetention("0"))
	assert.Equal(t, errRetentionInvalid, validateRetention("36"))
	assert.Equal(t, errRetentionInvalid, validateRetention("week"))
}

func TestParseList(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"a", "b"}, parseList(" a, b ,,a"))
	assert.Empty(t, parseList(""))
}
