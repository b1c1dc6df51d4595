package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/studentcollab/collabhub/frontend/internal/localstore"
	"github.com/studentcollab/collabhub/shared/logger"
)

// Mirror copies collections to durable storage after every change. Writes are
// best effort: a failure is logged and the in-memory state stays as it is.
// A nil *Mirror does nothing.
type Mirror struct {
	store localstore.Store
	log   *slog.Logger
}

func NewMirror(store localstore.Store) *Mirror {
	return &Mirror{store: store, log: logger.Component("mirror")}
}

func (m *Mirror) save(ctx context.Context, key string, value any) {
	if m == nil {
		return
	}
	if err := localstore.SetJSON(ctx, m.store, key, value); err != nil {
		m.log.Warn("mirror write failed", "key", key, "error", err)
	}
}

// load decodes key into out and reports whether anything was found.
func (m *Mirror) load(ctx context.Context, key string, out any) bool {
	if m == nil {
		return false
	}
	err := localstore.GetJSON(ctx, m.store, key, out)
	switch {
	case err == nil:
		return true
	case errors.Is(err, localstore.ErrNotFound):
	default:
		m.log.Warn("ignoring unreadable mirror", "key", key, "error", err)
	}
	return false
}
