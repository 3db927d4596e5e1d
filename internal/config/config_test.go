package config_test

import (
	"elearning_backend/internal/config"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "/elearning", cfg.Server.BasePath)
	assert.Equal(t, "users.csv", cfg.Records.Object)
	assert.Equal(t, 0.7, cfg.Quiz.PassThreshold)
	assert.Equal(t, "プログラマ", cfg.Discord.RoleName)
	assert.Equal(t, 10*time.Second, cfg.Discord.Timeout)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Contains(t, cfg.Records.BaselineFields, "test001")
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "server:\n  port: \"8081\"\nquiz:\n  pass_threshold: 0.8\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))
	t.Setenv("DISCORD_GUILD_ID", "g-env")
	t.Setenv("ELEARNING_DISCORD_ROLE_NAME", "Dev")

	cfg, err := config.LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, 0.8, cfg.Quiz.PassThreshold)
	assert.Equal(t, "g-env", cfg.Discord.GuildID)
	assert.Equal(t, "Dev", cfg.Discord.RoleName)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("storage:\n  type: ftp\n"), 0644))

	_, err := config.LoadConfig(dir)
	assert.Error(t, err)
}
