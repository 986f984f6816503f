package social

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/socialgate/internal/http/errors"
	"github.com/dropDatabas3/socialgate/internal/http/middlewares"
	svc "github.com/dropDatabas3/socialgate/internal/http/services/social"
	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// StartController handles GET /auth/{provider}.
type StartController struct {
	service  svc.StartService
	sessions *session.Manager
}

// NewStartController creates a new StartController.
func NewStartController(service svc.StartService, sessions *session.Manager) *StartController {
	return &StartController{service: service, sessions: sessions}
}

// Start redirects the browser to the provider's consent page.
func (c *StartController) Start(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("StartController.Start"))

	providerSlug := chi.URLParam(r, "provider")
	sess := middlewares.SessionFrom(ctx)
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	result, err := c.service.Start(ctx, sess, providerSlug)
	if err != nil {
		if errors.Is(err, svc.ErrProviderUnknown) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("unknown provider"))
			return
		}
		log.Error("start failed", logger.String("provider", providerSlug), logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	// Persistir el pending state antes de soltar al browser.
	if err := c.sessions.Save(ctx, sess); err != nil {
		log.Error("session save failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	http.Redirect(w, r, result.RedirectURL, http.StatusFound)
}
