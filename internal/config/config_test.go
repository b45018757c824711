package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DISCORD_TOKEN", "APP_ID", "GUILD_ID", "STORAGE_TYPE", "DATA_DIR",
		"ES_URL", "ES_USERNAME", "ES_PASSWORD", "HTTP_ADDR", "STARTING_BALANCE", "LOG_LEVEL", "ENVIRONMENT"} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv("/srv/tuco")
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageType)
	assert.Equal(t, filepath.Join("/srv/tuco", "data"), cfg.DataDir)
	assert.Equal(t, filepath.Join("/srv/tuco", "data", "tucotrainer.db"), cfg.DatabasePath())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, int64(1000), cfg.StartingBalanceDollars)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.ElasticsearchEnabled())
	assert.NoError(t, cfg.validate())
	assert.Error(t, cfg.ValidateDiscord())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("APP_ID", "app")
	t.Setenv("GUILD_ID", "guild")
	t.Setenv("STORAGE_TYPE", "sqlite")
	t.Setenv("DATA_DIR", "/var/lib/tuco")
	t.Setenv("ES_URL", "http://localhost:9200")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("STARTING_BALANCE", "250")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := FromEnv("/ignored")
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.Token)
	assert.Equal(t, "guild", cfg.GuildID)
	assert.Equal(t, StorageSQLite, cfg.StorageType)
	assert.Equal(t, "/var/lib/tuco", cfg.DataDir)
	assert.True(t, cfg.ElasticsearchEnabled())
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, int64(250), cfg.StartingBalanceDollars)
	assert.False(t, cfg.IsDevelopment())
	assert.NoError(t, cfg.validate())
	assert.NoError(t, cfg.ValidateDiscord())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "memory", cfg: Config{StorageType: StorageMemory, StartingBalanceDollars: 1}},
		{name: "unknown storage", cfg: Config{StorageType: "postgres", StartingBalanceDollars: 1}, wantErr: true},
		{name: "zero balance", cfg: Config{StorageType: StorageMemory}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBadStartingBalance(t *testing.T) {
	t.Setenv("STARTING_BALANCE", "lots")
	_, err := FromEnv("/srv/tuco")
	assert.Error(t, err)
}
