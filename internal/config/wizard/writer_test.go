package wizard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/vectordb/internal/config"
)

func TestWriteComposite(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "vectordb.yaml")

	result := defaultResult()
	result.Region = "eu-central-1"
	result.AZCount = 3

	err := WriteComposite(BuildComposite(result), outputPath)
	require.NoError(t, err)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	text := string(content)

	assert.True(t, strings.HasPrefix(text, "# vectordb composite resource"))
	assert.Contains(t, text, "vectordb render -f "+outputPath)
	assert.Contains(t, text, "apiVersion: vectordb.io/v1alpha1")
	assert.Contains(t, text, "kind: VectorDatabase")
	assert.Contains(t, text, "region: eu-central-1")
	assert.Contains(t, text, "azCount: 3")
	assert.NotContains(t, text, "status:")
	assert.NotContains(t, text, "creationTimestamp")
	assert.Less(t, strings.Index(text, "apiVersion:"), strings.Index(text, "spec:"))
}

func TestWriteComposite_LoadsBack(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "vectordb.yaml")

	result := defaultResult()
	result.ClaimName = "embeddings"
	result.EnvSuffix = "staging"
	result.ReuseNetwork = true
	result.VPCID = "vpc-0abc1234"
	result.SubnetIDs = []string{"subnet-a", "subnet-b"}
	result.MaxCapacity = "32"

	require.NoError(t, WriteComposite(BuildComposite(result), outputPath))

	cfg, err := config.LoadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "embeddings", cfg.Claim)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, config.ReuseExisting{VPCID: "vpc-0abc1234", SubnetIDs: []string{"subnet-a", "subnet-b"}}, cfg.Network)
	assert.Equal(t, "32", cfg.Database.MaxCapacity.String())
}

func TestWriteComposite_FilePermissions(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "vectordb.yaml")

	require.NoError(t, WriteComposite(BuildComposite(defaultResult()), outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteComposite_InvalidPath(t *testing.T) {
	err := WriteComposite(BuildComposite(defaultResult()), filepath.Join(t.TempDir(), "missing", "vectordb.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write file")
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "exists.yaml")

	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	assert.True(t, FileExists(path))
}

func TestConfirmOverwrite(t *testing.T) {
	original := confirmOverwrite
	defer func() { confirmOverwrite = original }()

	var asked string
	confirmOverwrite = func(path string) (bool, error) {
		asked = path
		return true, nil
	}

	ok, err := ConfirmOverwrite("vectordb.yaml")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "vectordb.yaml", asked)
}
