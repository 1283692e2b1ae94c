package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o644))
	return dir
}

func TestLoadConfigFrom(t *testing.T) {
	t.Setenv("CRICAPI_KEY", "secret-from-env")
	dir := writeConfig(t, `
prediction:
  policy: " Role "
sync:
  cache_ttl: 5s
  enabled_feeds: [cricapi]
feeds:
  cricapi:
    base_url: http://example.test
    api_key: from-yaml
`)

	cfg, err := LoadConfigFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, " Role ", cfg.Prediction.Policy, "policy is parsed by predictor.ParsePolicy")
	assert.Equal(t, 60*time.Second, cfg.Sync.CacheTTL)
	assert.Equal(t, "secret-from-env", cfg.Feeds["cricapi"].APIKey)
	assert.Equal(t, "csv", cfg.Stats.Source)
	assert.Equal(t, "player_stats.csv", cfg.Stats.Path)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 24*time.Hour, cfg.Sync.Retention)
}

func TestLoadConfigFromMissingFile(t *testing.T) {
	_, err := LoadConfigFrom(t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		check   func(t *testing.T, c *Config)
	}{
		{
			name: "empty stats source defaults to csv",
			cfg:  Config{},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, "csv", c.Stats.Source)
			},
		},
		{
			name: "ttl clamped to upper bound",
			cfg:  Config{Sync: SyncConfig{CacheTTL: time.Hour}},
			check: func(t *testing.T, c *Config) {
				assert.Equal(t, 600*time.Second, c.Sync.CacheTTL)
			},
		},
		{
			name:    "db stats without database",
			cfg:     Config{Stats: StatsConfig{Source: "db"}},
			wantErr: true,
		},
		{
			name:    "enabled feed without config",
			cfg:     Config{Sync: SyncConfig{EnabledFeeds: []string{"cricapi"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, &cfg)
			}
		})
	}
}
