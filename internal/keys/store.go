package keys

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// SecretStore holds named secrets such as the API bearer token.
type SecretStore interface {
	Get(name string) (string, error)
	Put(name, value string) error
	Delete(name string) error
}

var ErrSecretNotFound = errors.New("secret not found")

// TokenName is the secret name of the HTTP bearer token.
const TokenName = "auth.token"

// MapStore keeps secrets in memory. Used when no keyring is available.
type MapStore struct {
	Secrets map[string]string
}

func (s *MapStore) Get(name string) (string, error) {
	if s == nil || s.Secrets == nil {
		return "", ErrSecretNotFound
	}
	val, ok := s.Secrets[name]
	if !ok || val == "" {
		return "", ErrSecretNotFound
	}
	return val, nil
}

func (s *MapStore) Put(name, value string) error {
	if s.Secrets == nil {
		s.Secrets = map[string]string{}
	}
	s.Secrets[name] = value
	return nil
}

func (s *MapStore) Delete(name string) error {
	if s == nil || s.Secrets == nil {
		return nil
	}
	delete(s.Secrets, name)
	return nil
}

// ResolveToken returns the bearer token: auth.token from configuration
// when set, otherwise the keyring copy when auth.keyring is enabled.
// An empty result means auth is off.
func ResolveToken(v *viper.Viper, store SecretStore) (string, error) {
	if tok := strings.TrimSpace(v.GetString("auth.token")); tok != "" {
		return tok, nil
	}
	if !v.GetBool("auth.keyring") || store == nil {
		return "", nil
	}
	tok, err := store.Get(TokenName)
	if errors.Is(err, ErrSecretNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok), nil
}
