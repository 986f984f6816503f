package social

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	httperrors "github.com/dropDatabas3/socialgate/internal/http/errors"
	"github.com/dropDatabas3/socialgate/internal/http/middlewares"
	svc "github.com/dropDatabas3/socialgate/internal/http/services/social"
	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// CallbackController handles GET /callback/{provider}.
type CallbackController struct {
	service  svc.CallbackService
	sessions *session.Manager
}

// NewCallbackController creates a new CallbackController.
func NewCallbackController(service svc.CallbackService, sessions *session.Manager) *CallbackController {
	return &CallbackController{service: service, sessions: sessions}
}

// Callback processes the provider redirect. Every flow outcome, success or
// error, lands in LastResult and redirects to /result; only an unknown
// provider gets an HTTP error.
func (c *CallbackController) Callback(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, chi.URLParam(r, "provider"))
}

// ForProvider returns a handler with a fixed provider slug, used for
// callback paths configured outside the canonical /callback/{provider}
// pattern (e.g. TikTok's /auth/tiktok/callback revision).
func (c *CallbackController) ForProvider(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.handle(w, r, slug)
	}
}

func (c *CallbackController) handle(w http.ResponseWriter, r *http.Request, providerSlug string) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("CallbackController.Callback"))

	sess := middlewares.SessionFrom(ctx)
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	q := r.URL.Query()
	req := svc.CallbackRequest{
		Provider: providerSlug,
		Code:     strings.TrimSpace(q.Get("code")),
		State:    strings.TrimSpace(q.Get("state")),
	}

	if err := c.service.Callback(ctx, sess, req); err != nil {
		if errors.Is(err, svc.ErrProviderUnknown) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("unknown provider"))
			return
		}
		// Error de flujo: ya quedó registrado en LastResult.
		log.Warn("callback flow failed", logger.String("provider", providerSlug), logger.Err(err))
	}

	if err := c.sessions.Save(ctx, sess); err != nil {
		log.Error("session save failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	http.Redirect(w, r, "/result", http.StatusFound)
}
