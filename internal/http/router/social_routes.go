// Package router registra los endpoints HTTP del broker sobre chi.
package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/socialgate/internal/http/controllers/social"
	mw "github.com/dropDatabas3/socialgate/internal/http/middlewares"
	"github.com/dropDatabas3/socialgate/internal/provider"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// SocialRouterDeps contiene las dependencias para el router del broker.
type SocialRouterDeps struct {
	Controllers *ctrl.Controllers
	Sessions    *session.Manager
	Registry    *provider.Registry
}

// RegisterSocialRoutes registra las rutas del broker: home, flujos OAuth,
// result viewer y action endpoints.
func RegisterSocialRoutes(r chi.Router, deps SocialRouterDeps) {
	c := deps.Controllers

	r.Group(func(r chi.Router) {
		r.Use(
			mw.WithRecover(),
			mw.WithRequestID(),
			mw.WithSecurityHeaders(),
			mw.WithNoStore(),
			mw.WithLogging(),
			mw.WithSession(deps.Sessions),
		)

		r.Get("/", c.Home.Home)
		r.Get("/result", c.Result.Result)

		// Flujos OAuth
		r.Get("/auth/{provider}", c.Start.Start)
		r.Get("/callback/{provider}", c.Callback.Callback)
		r.Get("/logout/{provider}", c.Logout.Logout)

		// Callbacks configurados fuera del patrón canónico (p.ej. el
		// redirect URI de TikTok registrado con otro path).
		for _, p := range deps.Registry.All() {
			if p.CallbackPath != "" && p.CallbackPath != "/callback/"+p.Slug {
				r.Get(p.CallbackPath, c.Callback.ForProvider(p.Slug))
			}
		}

		// Action endpoints autenticados
		r.Get("/facebook/page-token/{pageId}", c.Facebook.PageToken)
		r.Post("/facebook/page-post/{pageId}", c.Facebook.PagePost)
		r.Get("/facebook/refresh", c.Facebook.Refresh)
		r.Post("/instagram/post/{igUserId}", c.Instagram.Post)
		r.Get("/tiktok/profile", c.TikTok.Profile)
	})
}
