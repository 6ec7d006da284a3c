package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mithrel/copilotmd/pkg/api"
)

// Store keeps answered queries, newest first.
type Store interface {
	// Put stores e, assigning ID and CreatedAt when empty. If an entry with
	// the same content hash exists it is returned unchanged instead.
	Put(ctx context.Context, e api.Entry) (api.Entry, error)
	Get(ctx context.Context, id string) (api.Entry, error)
	List(ctx context.Context, q api.ListQuery) ([]api.Entry, error)
	Delete(ctx context.Context, id string) error
	// Prune keeps the newest keep entries and reports how many it removed.
	Prune(ctx context.Context, keep int) (int, error)
	Close() error
}

var ErrNotFound = errors.New("not found")

// Open returns a Store for url: "mem://" or "sqlite://<path>".
// A bare path is treated as a sqlite file.
func Open(ctx context.Context, url string) (Store, error) {
	switch {
	case url == "" || strings.HasPrefix(url, "mem://"):
		return newMemStore(), nil
	case strings.HasPrefix(url, "sqlite://"):
		return openSQLite(ctx, url)
	case strings.Contains(url, "://"):
		return nil, fmt.Errorf("unsupported store url %q", url)
	default:
		return openSQLite(ctx, "sqlite://"+url)
	}
}
