package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, yaml string) string {
	t.Helper()
	tmpFile, err := os.CreateTemp("", "pumpwatch-config-*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	_, err = tmpFile.WriteString(yaml)
	require.NoError(t, err)
	tmpFile.Close()
	return tmpFile.Name()
}

func TestLoadConfig(t *testing.T) {
	path := writeTempConfig(t, `
general:
  instance_id: "test-node"
  dry_run: true
  log_level: "debug"

feed:
  url: "http://localhost:8080/migrated_coins"
  poll_interval_s: 60

rugcheck:
  url: "http://localhost:8081/v1/check"

tweetscout:
  enabled: true
  url: "http://localhost:8082/v1/analyze"
  api_key: "ts-key"

telegram:
  bot_token: "123:abc"
  chat_id: "-100200300"
  command_prefix: "/trade"

postgres:
  dsn: "postgres://localhost:5432/pumpwatch_test"

blacklists:
  symbols:
    - "SCAM"
  dev_addresses:
    - "DevBad111"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "test-node", cfg.General.InstanceID)
	assert.True(t, cfg.General.DryRun)
	assert.Equal(t, "http://localhost:8080/migrated_coins", cfg.Feed.URL)
	assert.Equal(t, 60, cfg.Feed.PollIntervalS)
	assert.Equal(t, "ts-key", cfg.TweetScout.APIKey)
	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Equal(t, "/trade", cfg.Telegram.CommandPrefix)
	assert.Equal(t, []string{"SCAM"}, cfg.Blacklists.Symbols)
	assert.Equal(t, []string{"DevBad111"}, cfg.Blacklists.DevAddresses)

	require.NoError(t, cfg.Validate())
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, `
general:
  dry_run: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pumpwatch-1", cfg.General.InstanceID)
	assert.Equal(t, "info", cfg.General.LogLevel)
	assert.Equal(t, "json", cfg.General.LogFormat)
	assert.Equal(t, "https://pumpfunadvanced.com/api/migrated_coins", cfg.Feed.URL)
	assert.Equal(t, 300, cfg.Feed.PollIntervalS)
	assert.Equal(t, "http://api.rugcheck.xyz/v1/check", cfg.Rugcheck.URL)
	assert.Equal(t, "/bonk", cfg.Telegram.CommandPrefix)
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	os.Setenv("TEST_PUMPWATCH_TOKEN", "env-token:xyz")
	defer os.Unsetenv("TEST_PUMPWATCH_TOKEN")

	path := writeTempConfig(t, `
general:
  dry_run: true
telegram:
  bot_token: "${TEST_PUMPWATCH_TOKEN}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-token:xyz", cfg.Telegram.BotToken)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "live mode requires bot token",
			mutate:  func(c *Config) { c.General.DryRun = false; c.Telegram.ChatID = "x" },
			wantErr: "bot_token",
		},
		{
			name:    "live mode requires chat id",
			mutate:  func(c *Config) { c.General.DryRun = false; c.Telegram.BotToken = "123:abc" },
			wantErr: "chat_id",
		},
		{
			name:    "tweetscout enabled requires key",
			mutate:  func(c *Config) { c.TweetScout.Enabled = true },
			wantErr: "api_key",
		},
		{
			name:    "stream enabled requires endpoint",
			mutate:  func(c *Config) { c.Feed.StreamEnabled = true },
			wantErr: "ws_endpoint",
		},
		{
			name:   "dry run needs no telegram",
			mutate: func(c *Config) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.General.DryRun = true
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
