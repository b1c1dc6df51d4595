package setup

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/studentcollab/collabhub/frontend/internal/apiclient"
	"github.com/studentcollab/collabhub/frontend/internal/handler"
	"github.com/studentcollab/collabhub/frontend/internal/localstore"
	"github.com/studentcollab/collabhub/frontend/internal/markdown"
	"github.com/studentcollab/collabhub/frontend/internal/middleware"
	"github.com/studentcollab/collabhub/frontend/internal/repository"
	"github.com/studentcollab/collabhub/frontend/internal/session"
	"github.com/studentcollab/collabhub/frontend/internal/syncengine"
	"github.com/studentcollab/collabhub/frontend/templates"
	"github.com/studentcollab/collabhub/shared/config"
	"github.com/studentcollab/collabhub/shared/logger"
)

const templateReloadInterval = 5 * time.Second

type Dependencies struct {
	Handler    *handler.Handler
	Guard      *middleware.Guard
	Public     config.Public
	Store      localstore.Store
	CancelFunc context.CancelFunc
}

// Close stops background work and releases the durable store.
func (d *Dependencies) Close() error {
	d.CancelFunc()
	return d.Store.Close()
}

func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	ctx, cancel := context.WithCancel(context.Background())

	store, err := localstore.Open(ctx, cfg)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	apiClient := apiclient.New(cfg.Public.ApiURL, cfg.Public.ApiTimeout)
	sess, err := session.Load(ctx, store, apiClient)
	if err != nil {
		cancel()
		store.Close()
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	apiClient.TokenSource = sess.Token

	repos := repository.New(repository.NewMirror(store))
	repos.Hydrate(ctx)
	engine := syncengine.New(apiClient, sess, repos)

	tmpl, err := templates.Load()
	if err != nil {
		cancel()
		store.Close()
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	h := handler.New(tmpl, cfg.Public, markdown.New(), sess, engine)
	startTemplateReloader(ctx, h)

	logger.Log.Info("dependencies ready",
		"api_url", cfg.Public.ApiURL,
		"storage", cfg.Public.Storage.Driver,
		"sealed", cfg.StorageKey() != "",
		"logged_in", sess.IsLoggedIn())

	return &Dependencies{
		Handler:    h,
		Guard:      middleware.NewGuard(sess),
		Public:     cfg.Public,
		Store:      store,
		CancelFunc: cancel,
	}, nil
}

// startTemplateReloader re-reads templates from TEMPLATES_DIR while
// developing, so edits show without a rebuild.
func startTemplateReloader(ctx context.Context, h *handler.Handler) {
	dir := os.Getenv("TEMPLATES_DIR")
	if os.Getenv("ENV") != "development" || dir == "" {
		return
	}
	ticker := time.NewTicker(templateReloadInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				t, err := templates.LoadFS(os.DirFS(dir))
				if err != nil {
					logger.Log.Warn("template reload failed", "error", err)
					continue
				}
				h.SetTemplates(t)
			}
		}
	}()
}
