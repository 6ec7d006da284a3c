package wire

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/mithrel/copilotmd/internal/config"
	"github.com/mithrel/copilotmd/internal/keys"
	"github.com/mithrel/copilotmd/pkg/api"
)

func loadConfig(t *testing.T) *viper.Viper {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	v := viper.New()
	require.NoError(t, config.Load(context.Background(), v))
	return v
}

func TestBuildAppOpensStore(t *testing.T) {
	v := loadConfig(t)
	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	entries, err := app.Store.List(context.Background(), api.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildAppRejectsInvalidConfig(t *testing.T) {
	v := loadConfig(t)
	v.Set("store", "postgres")
	_, err := BuildApp(context.Background(), v)
	assert.ErrorContains(t, err, "store must be sqlite or mem")
}

func TestBuildAppReadsKeyringToken(t *testing.T) {
	keyring.MockInit()
	require.NoError(t, (&keys.KeyringStore{}).Put(keys.TokenName, "from-keyring"))

	v := loadConfig(t)
	v.Set("store", "mem")
	v.Set("auth.keyring", true)
	app, err := BuildApp(context.Background(), v)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	assert.Equal(t, "from-keyring", app.Cfg.GetString("auth.token"))
}
