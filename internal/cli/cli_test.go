package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/admixmap/pkg/model"
)

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("ADMIXMAP_DATA_DIR", "../../data")
	t.Setenv("ADMIXMAP_LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProcessCommand(t *testing.T) {
	input := filepath.Join(t.TempDir(), "k2.txt")
	require.NoError(t, os.WriteFile(input, []byte("European: 80%\nAfrican: 20%\n"), 0o644))

	out, err := runCommand(t, "", "process", input)
	require.NoError(t, err)

	var result model.ProcessingResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "K2", result.ModelID)
	assert.Equal(t, "Europe", result.Statistics.DominantRegion)
}

func TestProcessCommand_Stdin(t *testing.T) {
	_, err := runCommand(t, "European: 80%\nAfrican: 20%\n", "process", "--calculator", "k3")

	require.ErrorIs(t, err, model.ErrInconsistentData)
}

func TestProcessCommand_Samples(t *testing.T) {
	out, err := runCommand(t, "NA1 0.5 0.5\nNA2 0.7 0.3\n", "process", "--samples")
	require.NoError(t, err)

	var summary model.SampleSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Individuals)
	assert.Equal(t, []model.Component{{Name: "C1", Proportion: 0.6}, {Name: "C2", Proportion: 0.4}}, summary.Averages)
}

func TestSeedAndModelsCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "registry.db")

	_, err := runCommand(t, "", "seed", dbPath)
	require.NoError(t, err)

	t.Setenv("ADMIXMAP_REGISTRY_DB", dbPath)
	out, err := runCommand(t, "", "models")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[5], "K36"))
}
