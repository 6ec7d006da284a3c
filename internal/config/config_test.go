package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	v := viper.New()
	v.SetConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, "/tmp/xdg-data/copilotmd", v.GetString("data_dir"))
	assert.Equal(t, 50, v.GetInt("history.max_entries"))
	assert.Equal(t, "ansi", v.GetString("render.output"))
	assert.Equal(t, "sqlite:///tmp/xdg-data/copilotmd/history.db", ResolveStoreURL(v))
	assert.NoError(t, CheckConfigValidity(v))
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "store = \"mem\"\n[render]\nwidth = 100\noutput = \"plain\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("COPILOTMD_RENDER_WIDTH", "120")

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, Load(context.Background(), v))

	assert.Equal(t, "mem://", ResolveStoreURL(v))
	assert.Equal(t, "plain", v.GetString("render.output"))
	assert.Equal(t, 120, v.GetInt("render.width"), "env overrides file")
}

func TestCheckConfigValidityInvalid(t *testing.T) {
	v := viper.New()
	v.Set("data_dir", "")
	v.Set("store", "postgres")
	v.Set("http_addr", "")
	v.Set("history.max_entries", 0)
	v.Set("render.width", -1)
	v.Set("render.output", "pdf")

	err := CheckConfigValidity(v)
	require.Error(t, err)

	msg := err.Error()
	expected := []string{
		"data_dir is required",
		"store must be sqlite or mem",
		"http_addr is required",
		"history.max_entries must be greater than 0",
		"render.width must be greater than 0",
		"render.output must be one of",
	}
	for _, want := range expected {
		assert.Contains(t, msg, want)
	}
}

func TestRenderDefaultTOMLParses(t *testing.T) {
	out := RenderDefaultTOML()
	assert.True(t, strings.HasPrefix(out, "# copilotmd configuration (TOML)\n"))
	assert.Contains(t, out, "[history]\n# Answers kept in history")
	assert.Contains(t, out, "max_entries = 50")

	v := viper.New()
	v.SetConfigType("toml")
	require.NoError(t, v.ReadConfig(strings.NewReader(out)))
	assert.Equal(t, "dracula", v.GetString("render.style"))
	assert.Equal(t, true, v.GetBool("pager.enabled"))
}

func TestUpdateTOML(t *testing.T) {
	existing := "store = \"mem\"\nlegacy = 1\n[render]\nwidth = 72\n"
	out, changed := UpdateTOML(existing)
	assert.True(t, changed)
	assert.Contains(t, out, "# OUTDATED: option removed from config schema\n# legacy = 1")
	assert.Contains(t, out, "width = 72")
	assert.Contains(t, out, "# Added by config update")
	assert.Contains(t, out, "max_entries = 50")
	assert.Equal(t, 1, strings.Count(out, "store = "))

	again, changed := UpdateTOML(out)
	assert.False(t, changed)
	assert.Equal(t, out, again)
}
