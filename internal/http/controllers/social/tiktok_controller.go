package social

import (
	"net/http"

	httperrors "github.com/dropDatabas3/socialgate/internal/http/errors"
	"github.com/dropDatabas3/socialgate/internal/http/middlewares"
	svc "github.com/dropDatabas3/socialgate/internal/http/services/social"
	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// TikTokController handles GET /tiktok/profile.
type TikTokController struct {
	service  svc.TikTokService
	sessions *session.Manager
}

// NewTikTokController creates a new TikTokController.
func NewTikTokController(service svc.TikTokService, sessions *session.Manager) *TikTokController {
	return &TikTokController{service: service, sessions: sessions}
}

func (c *TikTokController) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("TikTokController.Profile"))

	sess := middlewares.SessionFrom(ctx)
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	if err := c.service.Profile(ctx, sess); err != nil {
		log.Warn("profile fetch failed", logger.Err(err))
		writeActionError(w, err)
		return
	}

	if err := c.sessions.Save(ctx, sess); err != nil {
		log.Error("session save failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	http.Redirect(w, r, "/result", http.StatusFound)
}
