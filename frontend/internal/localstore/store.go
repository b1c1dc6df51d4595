// Package localstore is the client's durable key-value storage: the session
// (flag, token, profile) and best-effort mirrors of the fetched feeds.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/studentcollab/collabhub/shared/config"
)

// Keys
const (
	KeyLoggedIn     = "loggedIn"
	KeyAccessToken  = "access_token"
	KeyProfile      = "profile"
	KeyNotes        = "notes"
	KeyJobs         = "jobs"
	KeyThreads      = "threads"
	KeyLikedThreads = "likedThreads"
	KeyPapers       = "papers"
)

var ErrNotFound = errors.New("key not found")

type Store interface {
	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// GetJSON decodes the value stored under key into out.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	b, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decode %q: %w", key, err)
	}
	return nil
}

// SetJSON encodes value and stores it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, b)
}

// Open builds the store selected by cfg, sealed when a storage key is set.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	var (
		s   Store
		err error
	)
	switch cfg.Public.Storage.Driver {
	case "sqlite", "":
		s, err = NewSqliteStore(ctx, cfg.Public.Storage.SqlitePath)
	case "redis":
		s, err = NewRedisStore(ctx, cfg.Public.Storage.RedisURL)
	case "memory":
		s = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Public.Storage.Driver)
	}
	if err != nil {
		return nil, err
	}

	if key := cfg.StorageKey(); key != "" {
		sealed, err := NewSealedStore(s, key)
		if err != nil {
			s.Close()
			return nil, err
		}
		return sealed, nil
	}
	return s, nil
}
