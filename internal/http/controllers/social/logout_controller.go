package social

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/socialgate/internal/http/errors"
	"github.com/dropDatabas3/socialgate/internal/http/middlewares"
	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/provider"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// LogoutController handles GET /logout/{provider}: drops the stored
// credential for one provider without touching the others.
type LogoutController struct {
	sessions *session.Manager
	registry *provider.Registry
}

// NewLogoutController creates a new LogoutController.
func NewLogoutController(sessions *session.Manager, registry *provider.Registry) *LogoutController {
	return &LogoutController{sessions: sessions, registry: registry}
}

func (c *LogoutController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LogoutController.Logout"))

	slug := chi.URLParam(r, "provider")
	cfg, err := c.registry.BySlug(slug)
	if err != nil {
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("unknown provider"))
		return
	}

	sess := middlewares.SessionFrom(ctx)
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	sess.ClearCredential(cfg.Key)
	sess.SetResult(&session.Result{
		Title:   cfg.Name + " Logout",
		Payload: "Disconnected from " + cfg.Name + ".",
	})

	if err := c.sessions.Save(ctx, sess); err != nil {
		log.Error("session save failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	log.Info("credential cleared", logger.Provider(cfg.Key))
	http.Redirect(w, r, "/result", http.StatusFound)
}
