package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/vectordb/internal/config"
	"github.com/imamik/vectordb/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = wizard.FileExists

	// confirmOverwrite asks before replacing an existing file.
	confirmOverwrite = wizard.ConfirmOverwrite

	// runWizard runs the interactive wizard.
	runWizard = wizard.RunWizard

	// writeComposite writes the composite to a file.
	writeComposite = wizard.WriteComposite
)

// Init runs the configuration wizard and writes the resulting composite to a file.
func Init(ctx context.Context, outputPath string, advanced bool) error {
	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	printWelcome()

	result, err := runWizard(ctx, advanced)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	vdb := wizard.BuildComposite(result)

	if err := writeComposite(vdb, outputPath); err != nil {
		return fmt.Errorf("failed to write composite: %w", err)
	}

	printInitSuccess(outputPath, result)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Println()
	fmt.Println("vectordb - pgvector on Aurora PostgreSQL")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("This wizard creates a VectorDatabase composite.")
	fmt.Println("Values left at their defaults are omitted from the file.")
	fmt.Println()
}

// printInitSuccess prints the success message with summary and next steps.
func printInitSuccess(outputPath string, result *wizard.WizardResult) {
	fmt.Println()
	fmt.Println("Composite saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Database Summary")
	fmt.Println("----------------")
	fmt.Printf("  Name:        %s-%s (namespace %s)\n", result.ClaimName, result.EnvSuffix, result.Namespace)
	fmt.Printf("  Region:      %s\n", result.Region)
	if result.ReuseNetwork {
		fmt.Printf("  Network:     %s (%d subnets)\n", result.VPCID, len(result.SubnetIDs))
	} else {
		fmt.Printf("  Network:     %s across %d zones\n", result.VPCCIDR, result.AZCount)
	}
	fmt.Printf("  Engine:      aurora-postgresql %s\n", result.EngineVersion)
	if result.InstanceClass == config.DefaultInstanceClass {
		fmt.Printf("  Instances:   %d x %s (%s-%s ACU)\n", result.InstanceCount, result.InstanceClass, result.MinCapacity, result.MaxCapacity)
	} else {
		fmt.Printf("  Instances:   %d x %s\n", result.InstanceCount, result.InstanceClass)
	}
	switch {
	case result.GeneratePassword:
		fmt.Println("  Credentials: generated master password secret")
	case result.PasswordSecret != "":
		fmt.Printf("  Credentials: existing secret %s\n", result.PasswordSecret)
	default:
		fmt.Println("  Credentials: managed by RDS")
	}
	if opts := result.AdvancedOptions; opts != nil {
		if opts.MonitoringInterval > 0 {
			fmt.Printf("  Monitoring:  every %ds\n", opts.MonitoringInterval)
		}
		if opts.VectorExtension {
			fmt.Println("  pgvector:    parameter groups enabled")
		}
	}
	fmt.Println()

	fmt.Println("Next steps:")
	fmt.Printf("  1. Review the generated resources:  vectordb plan -f %s\n", outputPath)
	fmt.Printf("  2. Render the desired state:        vectordb render -f %s\n", outputPath)
	fmt.Printf("  3. Apply to your cluster:           kubectl apply -f %s\n", outputPath)
	fmt.Println()
}
