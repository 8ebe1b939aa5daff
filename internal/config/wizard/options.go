package wizard

import (
	"github.com/charmbracelet/huh"

	"github.com/imamik/vectordb/internal/config"
)

// RegionOption represents an AWS region.
type RegionOption struct {
	Value       string
	Label       string
	Description string
}

// InstanceClassOption represents a database instance class.
type InstanceClassOption struct {
	Value       string
	Label       string
	Description string
}

// VersionOption represents an engine version.
type VersionOption struct {
	Value       string
	Label       string
	Description string
}

// Regions contains the AWS regions offered by the wizard.
var Regions = []RegionOption{
	{Value: "us-west-2", Label: "us-west-2", Description: "US West (Oregon)"},
	{Value: "us-east-1", Label: "us-east-1", Description: "US East (N. Virginia)"},
	{Value: "us-east-2", Label: "us-east-2", Description: "US East (Ohio)"},
	{Value: "eu-central-1", Label: "eu-central-1", Description: "Europe (Frankfurt)"},
	{Value: "eu-west-1", Label: "eu-west-1", Description: "Europe (Ireland)"},
	{Value: "ap-southeast-1", Label: "ap-southeast-1", Description: "Asia Pacific (Singapore)"},
	{Value: "ap-northeast-1", Label: "ap-northeast-1", Description: "Asia Pacific (Tokyo)"},
}

// InstanceClasses contains recommended instance classes.
var InstanceClasses = []InstanceClassOption{
	{Value: config.DefaultInstanceClass, Label: config.DefaultInstanceClass, Description: "Serverless v2 (scales with capacity bounds)"},
	{Value: "db.r6g.large", Label: "db.r6g.large", Description: "2 vCPU, 16GB RAM (Graviton2)"},
	{Value: "db.r6g.xlarge", Label: "db.r6g.xlarge", Description: "4 vCPU, 32GB RAM (Graviton2)"},
	{Value: "db.r7g.large", Label: "db.r7g.large", Description: "2 vCPU, 16GB RAM (Graviton3)"},
	{Value: "db.r6i.large", Label: "db.r6i.large", Description: "2 vCPU, 16GB RAM (Intel)"},
}

// EngineVersions contains available Aurora PostgreSQL versions with pgvector.
var EngineVersions = []VersionOption{
	{Value: config.DefaultEngineVersion, Label: config.DefaultEngineVersion, Description: "Latest stable"},
	{Value: "15.10", Label: "15.10", Description: "Previous major"},
}

// ZoneCountOptions contains valid availability zone counts.
var ZoneCountOptions = []huh.Option[int]{
	huh.NewOption("2 (Minimum for Aurora)", 2),
	huh.NewOption("3 (Recommended)", 3),
}

// InstanceCountOptions contains common instance counts.
var InstanceCountOptions = []huh.Option[int]{
	huh.NewOption("1 (Writer only)", 1),
	huh.NewOption("2 (Writer + 1 reader)", 2),
	huh.NewOption("3 (Writer + 2 readers)", 3),
}

// MonitoringIntervalOptions contains the supported enhanced monitoring intervals.
var MonitoringIntervalOptions = []huh.Option[int]{
	huh.NewOption("Disabled", 0),
	huh.NewOption("15 seconds", 15),
	huh.NewOption("30 seconds", 30),
	huh.NewOption("60 seconds", 60),
}

// RegionsToOptions converts regions to huh options.
func RegionsToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(Regions))
	for i, r := range Regions {
		opts[i] = huh.NewOption(r.Label+" - "+r.Description, r.Value)
	}
	return opts
}

// InstanceClassesToOptions converts instance classes to huh options.
func InstanceClassesToOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(InstanceClasses))
	for i, c := range InstanceClasses {
		opts[i] = huh.NewOption(c.Label+" - "+c.Description, c.Value)
	}
	return opts
}

// VersionsToOptions converts versions to huh options.
func VersionsToOptions(versions []VersionOption) []huh.Option[string] {
	opts := make([]huh.Option[string], len(versions))
	for i, v := range versions {
		opts[i] = huh.NewOption(v.Label+" ("+v.Description+")", v.Value)
	}
	return opts
}
