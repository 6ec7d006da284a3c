package wire

import (
	"context"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/mithrel/copilotmd/internal/config"
	"github.com/mithrel/copilotmd/internal/db"
	"github.com/mithrel/copilotmd/internal/keys"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg     *viper.Viper
	Log     *log.Logger
	Store   db.Store
	Secrets keys.SecretStore
}

// BuildApp validates cfg, resolves the bearer token and opens the history
// store cfg names.
func BuildApp(ctx context.Context, cfg *viper.Viper) (*App, error) {
	if err := config.CheckConfigValidity(cfg); err != nil {
		return nil, err
	}
	logger := log.New(os.Stderr, "copilotmd ", log.LstdFlags)
	secrets := &keys.KeyringStore{}
	tok, err := keys.ResolveToken(cfg, secrets)
	if err != nil {
		logger.Printf("keyring: %v", err)
	} else if tok != "" {
		cfg.Set("auth.token", tok)
	}
	store, err := db.Open(ctx, config.ResolveStoreURL(cfg))
	if err != nil {
		return nil, err
	}
	return &App{
		Cfg:     cfg,
		Log:     logger,
		Store:   store,
		Secrets: secrets,
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
