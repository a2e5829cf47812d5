package users

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	redislib "github.com/redis/go-redis/v9"
)

// directoryStore is the slice of the redis client the gateway needs.
type directoryStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	UserDirectoryKey() string
}

// Gateway durably stores the user directory snapshot. Accounts are the only
// store contents that survive a restart; everything else is rebuilt empty.
type Gateway struct {
	store directoryStore
}

// NewGateway builds a persistence gateway over the redis client.
func NewGateway(store directoryStore) (*Gateway, error) {
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user gateway requires a redis store")
	}
	return &Gateway{store: store}, nil
}

// Save writes the current directory snapshot. No TTL: accounts persist until
// explicitly replaced.
func (g *Gateway) Save(ctx context.Context, src *Store) error {
	payload, err := json.Marshal(src.Snapshot())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding user directory")
	}
	if err := g.store.Set(ctx, g.store.UserDirectoryKey(), string(payload), 0); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "storing user directory")
	}
	return nil
}

// Load rehydrates the directory from the stored snapshot. A missing key is
// not an error; the directory simply starts empty.
func (g *Gateway) Load(ctx context.Context, dst *Store) error {
	raw, err := g.store.Get(ctx, g.store.UserDirectoryKey())
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading user directory")
	}

	var snapshot []User
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding user directory")
	}
	dst.Rehydrate(snapshot)
	return nil
}
