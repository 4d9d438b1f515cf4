package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, 0.5, config.Parser.ErrorRateThreshold)
	assert.Equal(t, "info", config.Parser.LogLevel)
	assert.Empty(t, config.Histories)
}

func TestLoadConfigFromFile(t *testing.T) {
	content := `
parser {
  player_username      = "Hero"
  strict_validation    = true
  error_rate_threshold = 0.25
}

history "pokerstars" {
  paths   = ["/data/stars"]
  recurse = true
}
`
	path := filepath.Join(t.TempDir(), "parser.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, "Hero", config.Parser.PlayerUsername)
	assert.True(t, config.Parser.StrictValidation)
	assert.Equal(t, 0.25, config.Parser.ErrorRateThreshold)
	require.Len(t, config.Histories, 1)
	assert.Equal(t, "pokerstars", config.Histories[0].Platform)
	assert.True(t, config.Histories[0].Recurse)
}

func TestConfigValidate(t *testing.T) {
	config := DefaultConfig()
	config.Parser.ErrorRateThreshold = 1.5
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Histories = []HistoryConfig{{Platform: "fulltilt", Paths: []string{"/x"}}}
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Histories = []HistoryConfig{{Platform: "ggpoker"}}
	assert.Error(t, config.Validate())
}
