package keys

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestMapStoreRoundTrip(t *testing.T) {
	store := &MapStore{}
	require.NoError(t, store.Put(TokenName, "secret"))

	got, err := store.Get(TokenName)
	require.NoError(t, err)
	assert.Equal(t, "secret", got)

	require.NoError(t, store.Delete(TokenName))
	_, err = store.Get(TokenName)
	assert.ErrorIs(t, err, ErrSecretNotFound)
}

func TestKeyringStoreRoundTrip(t *testing.T) {
	keyring.MockInit()
	store := &KeyringStore{}

	_, err := store.Get(TokenName)
	assert.ErrorIs(t, err, ErrSecretNotFound)

	require.NoError(t, store.Put(TokenName, "s3cret"))
	got, err := store.Get(TokenName)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	require.NoError(t, store.Delete(TokenName))
	require.NoError(t, store.Delete(TokenName), "deleting twice is fine")
	assert.True(t, KeyringAvailable())
}

func TestResolveToken(t *testing.T) {
	store := &MapStore{Secrets: map[string]string{TokenName: " from-keyring "}}

	v := viper.New()
	tok, err := ResolveToken(v, store)
	require.NoError(t, err)
	assert.Empty(t, tok, "keyring ignored unless enabled")

	v.Set("auth.keyring", true)
	tok, err = ResolveToken(v, store)
	require.NoError(t, err)
	assert.Equal(t, "from-keyring", tok)

	v.Set("auth.token", "from-config")
	tok, err = ResolveToken(v, store)
	require.NoError(t, err)
	assert.Equal(t, "from-config", tok)

	v.Set("auth.token", "")
	tok, err = ResolveToken(v, &MapStore{})
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestKeyringAvailableWithMock(t *testing.T) {
	keyring.MockInit()
	assert.True(t, KeyringAvailable())
}
