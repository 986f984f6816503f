// Package http arma el handler completo del broker: cache, sesiones,
// registry de providers, clients upstream, services, controllers y rutas.
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dropDatabas3/socialgate/internal/cache"
	"github.com/dropDatabas3/socialgate/internal/cache/memory"
	rediscache "github.com/dropDatabas3/socialgate/internal/cache/redis"
	"github.com/dropDatabas3/socialgate/internal/config"
	"github.com/dropDatabas3/socialgate/internal/graph"
	ctrl "github.com/dropDatabas3/socialgate/internal/http/controllers/social"
	"github.com/dropDatabas3/socialgate/internal/http/router"
	svc "github.com/dropDatabas3/socialgate/internal/http/services/social"
	"github.com/dropDatabas3/socialgate/internal/provider"
	"github.com/dropDatabas3/socialgate/internal/session"
	"github.com/dropDatabas3/socialgate/internal/tiktok"
)

// BuildHandler construye el handler HTTP completo a partir de la configuración.
func BuildHandler(cfg *config.Config) (http.Handler, error) {
	var backend cache.Cache
	switch strings.ToLower(cfg.Cache.Kind) {
	case "redis":
		backend = rediscache.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
	default:
		backend = memory.New(cfg.Cache.Memory.DefaultTTL)
	}

	store := session.NewStore(backend, cfg.Session.TTL)
	sessions := session.NewManager(store, session.CookieConfig{
		Name:     cfg.Session.CookieName,
		Domain:   cfg.Session.Domain,
		SameSite: cfg.Session.SameSite,
		Secure:   cfg.Session.Secure,
		TTL:      cfg.Session.TTL,
	})

	registry := BuildRegistry(cfg)

	graphClient := graph.New(cfg.Graph.BaseURL, cfg.Graph.Version)
	tiktokClient := tiktok.New(cfg.TikTok.APIBaseURL)
	exchanger := provider.NewExchanger()

	services := svc.Services{
		Start: svc.NewStartService(svc.StartDeps{Registry: registry}),
		Callback: svc.NewCallbackService(svc.CallbackDeps{
			Registry:  registry,
			Exchanger: exchanger,
			Enrichers: map[string]svc.Enricher{
				session.KeyFacebook:  svc.NewFacebookEnricher(graphClient),
				session.KeyInstagram: svc.NewInstagramEnricher(graphClient),
				session.KeyTikTok:    svc.NewTikTokEnricher(),
			},
		}),
		Facebook:  svc.NewFacebookService(svc.FacebookDeps{Graph: graphClient}),
		Instagram: svc.NewInstagramService(svc.InstagramDeps{Graph: graphClient}),
		TikTok:    svc.NewTikTokService(svc.TikTokDeps{API: tiktokClient}),
	}

	controllers := ctrl.NewControllers(services, sessions, registry)

	r := chi.NewRouter()
	router.RegisterSocialRoutes(r, router.SocialRouterDeps{
		Controllers: controllers,
		Sessions:    sessions,
		Registry:    registry,
	})

	r.Get("/healthz", healthz)

	metricsHandler, err := RegisterMetrics(nil)
	if err != nil {
		return nil, err
	}
	r.Handle("/metrics", metricsHandler)

	return WithMetrics(r), nil
}

// BuildRegistry arma los tres providers a partir de la configuración.
// Facebook e Instagram comparten el flujo Graph (exchange por GET);
// TikTok usa client_key, POST form y PKCE.
func BuildRegistry(cfg *config.Config) *provider.Registry {
	graphAuthURL := cfg.Graph.AuthBaseURL + "/" + cfg.Graph.Version + "/dialog/oauth"
	graphTokenURL := cfg.Graph.BaseURL + "/" + cfg.Graph.Version + "/oauth/access_token"

	return provider.NewRegistry(
		provider.Config{
			Key:          session.KeyFacebook,
			Slug:         "facebook",
			Name:         "Facebook",
			AuthURL:      graphAuthURL,
			TokenURL:     graphTokenURL,
			ClientID:     cfg.Providers.Facebook.ClientID,
			ClientSecret: cfg.Providers.Facebook.ClientSecret,
			RedirectURI:  cfg.Providers.Facebook.RedirectURI,
			Scopes:       cfg.Providers.Facebook.Scopes,
			TokenViaGet:  true,
			CallbackPath: cfg.Providers.Facebook.CallbackPath,
		},
		provider.Config{
			Key:          session.KeyInstagram,
			Slug:         "instagram",
			Name:         "Instagram",
			AuthURL:      graphAuthURL,
			TokenURL:     graphTokenURL,
			ClientID:     cfg.Providers.Instagram.ClientID,
			ClientSecret: cfg.Providers.Instagram.ClientSecret,
			RedirectURI:  cfg.Providers.Instagram.RedirectURI,
			Scopes:       cfg.Providers.Instagram.Scopes,
			TokenViaGet:  true,
			CallbackPath: cfg.Providers.Instagram.CallbackPath,
		},
		provider.Config{
			Key:           session.KeyTikTok,
			Slug:          "tiktok",
			Name:          "TikTok",
			AuthURL:       cfg.TikTok.AuthURL,
			TokenURL:      cfg.TikTok.TokenURL,
			ClientID:      cfg.Providers.TikTok.ClientID,
			ClientSecret:  cfg.Providers.TikTok.ClientSecret,
			RedirectURI:   cfg.Providers.TikTok.RedirectURI,
			Scopes:        cfg.Providers.TikTok.Scopes,
			UsePKCE:       true,
			ClientIDParam: "client_key",
			CallbackPath:  cfg.Providers.TikTok.CallbackPath,
		},
	)
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Start levanta el servidor y lo apaga ordenadamente cuando ctx se cancela.
func Start(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
