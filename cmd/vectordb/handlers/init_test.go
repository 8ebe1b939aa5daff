package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vectordb/api/v1alpha1"
	"github.com/imamik/vectordb/internal/config/wizard"
)

func saveInitFactories(t *testing.T) {
	t.Helper()
	origFileExists := fileExists
	origConfirm := confirmOverwrite
	origRunWizard := runWizard
	origWrite := writeComposite
	t.Cleanup(func() {
		fileExists = origFileExists
		confirmOverwrite = origConfirm
		runWizard = origRunWizard
		writeComposite = origWrite
	})
}

func wizardResult() *wizard.WizardResult {
	return &wizard.WizardResult{
		ClaimName:        "search",
		Namespace:        "default",
		EnvSuffix:        "dev",
		Region:           "us-west-2",
		VPCCIDR:          "10.10.0.0/16",
		AZCount:          2,
		EngineVersion:    "16.6",
		MinCapacity:      "0.5",
		MaxCapacity:      "4",
		InstanceClass:    "db.serverless",
		InstanceCount:    1,
		GeneratePassword: true,
	}
}

func TestInit_Success(t *testing.T) {
	saveInitFactories(t)

	var written *v1alpha1.VectorDatabase
	var writtenPath string
	fileExists = func(string) bool { return false }
	runWizard = func(_ context.Context, advanced bool) (*wizard.WizardResult, error) {
		assert.True(t, advanced)
		return wizardResult(), nil
	}
	writeComposite = func(vdb *v1alpha1.VectorDatabase, path string) error {
		written = vdb
		writtenPath = path
		return nil
	}

	var err error
	output := captureOutput(func() {
		err = Init(context.Background(), "out.yaml", true)
	})
	require.NoError(t, err)

	require.NotNil(t, written)
	assert.Equal(t, "search", written.Name)
	assert.Equal(t, "out.yaml", writtenPath)
	assert.Contains(t, output, "Composite saved!")
	assert.Contains(t, output, "10.10.0.0/16 across 2 zones")
	assert.Contains(t, output, "1 x db.serverless (0.5-4 ACU)")
	assert.Contains(t, output, "vectordb plan -f out.yaml")
}

func TestInit_WizardCanceled(t *testing.T) {
	saveInitFactories(t)

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context, bool) (*wizard.WizardResult, error) {
		return nil, errors.New("user aborted")
	}
	writeComposite = func(*v1alpha1.VectorDatabase, string) error {
		t.Fatal("writeComposite should not be called")
		return nil
	}

	var err error
	captureOutput(func() {
		err = Init(context.Background(), "out.yaml", false)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wizard canceled")
}

func TestInit_WriteError(t *testing.T) {
	saveInitFactories(t)

	fileExists = func(string) bool { return false }
	runWizard = func(context.Context, bool) (*wizard.WizardResult, error) {
		return wizardResult(), nil
	}
	writeComposite = func(*v1alpha1.VectorDatabase, string) error {
		return errors.New("disk full")
	}

	var err error
	captureOutput(func() {
		err = Init(context.Background(), "out.yaml", false)
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write composite")
}

func TestInit_OverwriteDeclined(t *testing.T) {
	saveInitFactories(t)

	fileExists = func(string) bool { return true }
	confirmOverwrite = func(string) (bool, error) { return false, nil }
	runWizard = func(context.Context, bool) (*wizard.WizardResult, error) {
		t.Fatal("runWizard should not be called")
		return nil, nil
	}

	var err error
	output := captureOutput(func() {
		err = Init(context.Background(), "out.yaml", false)
	})
	require.NoError(t, err)
	assert.Contains(t, output, "Aborted.")
}

func TestInit_OverwriteConfirmError(t *testing.T) {
	saveInitFactories(t)

	fileExists = func(string) bool { return true }
	confirmOverwrite = func(string) (bool, error) { return false, errors.New("EOF") }

	err := Init(context.Background(), "out.yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to confirm overwrite")
}

func TestPrintInitSuccess_Variants(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*wizard.WizardResult)
		want   []string
	}{
		{
			name: "existing network",
			modify: func(r *wizard.WizardResult) {
				r.ReuseNetwork = true
				r.VPCID = "vpc-0123456789abcdef0"
				r.SubnetIDs = []string{"subnet-a", "subnet-b"}
			},
			want: []string{"vpc-0123456789abcdef0 (2 subnets)"},
		},
		{
			name: "provisioned class",
			modify: func(r *wizard.WizardResult) {
				r.InstanceClass = "db.r6g.large"
				r.InstanceCount = 2
			},
			want: []string{"2 x db.r6g.large"},
		},
		{
			name: "existing secret",
			modify: func(r *wizard.WizardResult) {
				r.GeneratePassword = false
				r.PasswordSecret = "pg-admin"
			},
			want: []string{"existing secret pg-admin"},
		},
		{
			name: "managed password",
			modify: func(r *wizard.WizardResult) {
				r.GeneratePassword = false
			},
			want: []string{"managed by RDS"},
		},
		{
			name: "advanced",
			modify: func(r *wizard.WizardResult) {
				r.AdvancedOptions = &wizard.AdvancedOptions{MonitoringInterval: 30, VectorExtension: true}
			},
			want: []string{"every 30s", "parameter groups enabled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := wizardResult()
			tt.modify(result)
			output := captureOutput(func() {
				printInitSuccess("vectordb.yaml", result)
			})
			for _, w := range tt.want {
				assert.Contains(t, output, w)
			}
		})
	}
}
