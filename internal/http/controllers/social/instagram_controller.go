package social

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/socialgate/internal/http/dto/social"
	httperrors "github.com/dropDatabas3/socialgate/internal/http/errors"
	"github.com/dropDatabas3/socialgate/internal/http/middlewares"
	svc "github.com/dropDatabas3/socialgate/internal/http/services/social"
	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// InstagramController handles POST /instagram/post/{igUserId}.
type InstagramController struct {
	service  svc.InstagramService
	sessions *session.Manager
}

// NewInstagramController creates a new InstagramController.
func NewInstagramController(service svc.InstagramService, sessions *session.Manager) *InstagramController {
	return &InstagramController{service: service, sessions: sessions}
}

func (c *InstagramController) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("InstagramController.Post"))

	sess := middlewares.SessionFrom(ctx)
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	var req dto.InstagramPostRequest
	if isJSON(r) {
		_ = json.NewDecoder(r.Body).Decode(&req)
	} else {
		_ = r.ParseForm()
		req.ImageURL = r.PostFormValue("imageUrl")
		req.Caption = r.PostFormValue("caption")
	}

	if req.ImageURL == "" {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("imageUrl is required"))
		return
	}

	igUserID := chi.URLParam(r, "igUserId")
	if err := c.service.Post(ctx, sess, igUserID, req.ImageURL, req.Caption); err != nil {
		log.Warn("instagram post failed", logger.String("ig_user_id", igUserID), logger.Err(err))
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
