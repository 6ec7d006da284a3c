package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const appName = "copilotmd"

// OutputModes lists the values accepted by render.output.
var OutputModes = []string{"plain", "pretty", "ansi", "html", "json", "ndjson", "dump"}

type ConfigOption struct {
	Key     string
	Default any
	Comment string
}

// GetConfigOptions returns the default configuration options and their meanings.
// It is the single source of defaults for Load and for config generate.
func GetConfigOptions() []ConfigOption {
	return []ConfigOption{
		{Key: "data_dir", Default: defaultDataDir(), Comment: "Directory for local state; history lives in data_dir/history.db"},
		{Key: "store", Default: "sqlite", Comment: "History backend: sqlite or mem"},
		{Key: "http_addr", Default: "127.0.0.1:5001", Comment: "Listen address for copilotmd serve"},

		{Key: "auth.token", Default: "", Comment: "Bearer token required by the history API; empty disables auth"},
		{Key: "auth.keyring", Default: false, Comment: "Read the bearer token from the system keyring when auth.token is empty"},
		{Key: "history.max_entries", Default: 50, Comment: "Answers kept in history; older ones are pruned after each save"},
		{Key: "render.output", Default: "ansi", Comment: "Default output: plain, pretty, ansi, html, json, ndjson, dump"},
		{Key: "render.width", Default: 80, Comment: "Wrap width for terminal output"},
		{Key: "render.style", Default: "dracula", Comment: "Glamour standard style used by the pretty output"},
		{Key: "pager.enabled", Default: true, Comment: "Pipe terminal output through $PAGER"},
	}
}

// applyDefaults seeds Viper with defaults defined in GetConfigOptions.
func applyDefaults(v *viper.Viper) {
	for _, o := range GetConfigOptions() {
		v.SetDefault(o.Key, o.Default)
	}
}

// Load resolves configuration with precedence: defaults < file < env.
// The provided Viper instance is mutated with defaults, file contents, and env.
func Load(ctx context.Context, v *viper.Viper) error {
	// An explicit SetConfigFile upstream wins over the search path.
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, appName))
		}
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appName))
		}
		v.AddConfigPath(".")
	}

	applyDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && v.ConfigFileUsed() != "" && fileExists(v.ConfigFileUsed()) {
			return fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	// Environment variables: COPILOTMD_* (highest among these sources)
	v.SetEnvPrefix(appName)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		v.Set("data_dir", defaultDataDir())
	}
	return nil
}

// CheckConfigValidity reports every invalid setting at once.
func CheckConfigValidity(v *viper.Viper) error {
	var errs []error
	if strings.TrimSpace(v.GetString("data_dir")) == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	switch v.GetString("store") {
	case "sqlite", "mem":
	default:
		errs = append(errs, fmt.Errorf("store must be sqlite or mem, got %q", v.GetString("store")))
	}
	if strings.TrimSpace(v.GetString("http_addr")) == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if v.GetInt("history.max_entries") <= 0 {
		errs = append(errs, errors.New("history.max_entries must be greater than 0"))
	}
	if v.GetInt("render.width") <= 0 {
		errs = append(errs, errors.New("render.width must be greater than 0"))
	}
	if out := v.GetString("render.output"); !validOutput(out) {
		errs = append(errs, fmt.Errorf("render.output must be one of %s, got %q", strings.Join(OutputModes, ", "), out))
	}
	return errors.Join(errs...)
}

func validOutput(s string) bool {
	for _, m := range OutputModes {
		if m == s {
			return true
		}
	}
	return false
}

// defaultDataDir resolves default data dir: $XDG_DATA_HOME/copilotmd or ~/.local/share/copilotmd
func defaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DefaultConfigPath resolves the standard config.toml location.
func DefaultConfigPath() string {
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, _ := os.UserHomeDir()
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, appName, "config.toml")
}

// ResolveStoreURL builds the history store URL from store and data_dir.
func ResolveStoreURL(v *viper.Viper) string {
	if v.GetString("store") == "mem" {
		return "mem://"
	}
	dir := v.GetString("data_dir")
	if dir == "" {
		dir = defaultDataDir()
	}
	// Expand ~ for convenience
	if len(dir) > 0 && dir[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, dir[1:])
		}
	}
	return "sqlite://" + filepath.Join(dir, "history.db")
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
