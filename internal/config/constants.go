package config

import "github.com/shopspring/decimal"

// Defaults applied when a field is absent.
const (
	DefaultRegion                = "us-west-2"
	DefaultVPCCIDR               = "10.10.0.0/16"
	DefaultZoneCount             = 2
	MinZoneCount                 = 2
	DefaultEngineVersion         = "16.6"
	DefaultDatabaseName          = "vectordb"
	DefaultMasterUsername        = "postgres"
	DefaultBackupRetentionPeriod = 7
	DefaultBackupWindow          = "06:42-07:12"
	DefaultMaintenanceWindow     = "wed:04:35-wed:05:05"
	DefaultInstanceCount         = 1
	DefaultInstanceClass         = "db.serverless"
	DefaultEnvironment           = "dev"
	DefaultNamespace             = "default"
	DefaultProviderConfig        = "default"
	DefaultMonitoringInterval    = 60
	DefaultAllowedCIDR           = "0.0.0.0/0"
	// PasswordSecretKey is the key holding the password in generated secrets.
	PasswordSecretKey = "password"
)

// Aurora Serverless v2 capacity bounds in ACUs.
var (
	DefaultMinCapacity = decimal.NewFromInt(2)
	DefaultMaxCapacity = decimal.NewFromInt(16)
	MinCapacityFloor   = decimal.Zero
	MaxCapacityCeiling = decimal.NewFromInt(256)
	CapacityStep       = decimal.RequireFromString("0.5")
)
