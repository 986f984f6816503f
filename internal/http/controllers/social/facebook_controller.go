package social

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	dto "github.com/dropDatabas3/socialgate/internal/http/dto/social"
	httperrors "github.com/dropDatabas3/socialgate/internal/http/errors"
	"github.com/dropDatabas3/socialgate/internal/http/middlewares"
	svc "github.com/dropDatabas3/socialgate/internal/http/services/social"
	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// FacebookController handles the authenticated Facebook action endpoints.
// To diferencia del callback: acá los errores se devuelven con status HTTP,
// no se registran en LastResult.
type FacebookController struct {
	service  svc.FacebookService
	sessions *session.Manager
}

// NewFacebookController creates a new FacebookController.
func NewFacebookController(service svc.FacebookService, sessions *session.Manager) *FacebookController {
	return &FacebookController{service: service, sessions: sessions}
}

// PageToken handles GET /facebook/page-token/{pageId}.
func (c *FacebookController) PageToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("FacebookController.PageToken"))

	sess := middlewares.SessionFrom(ctx)
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	pageID := chi.URLParam(r, "pageId")
	if err := c.service.PageToken(ctx, sess, pageID); err != nil {
		log.Warn("page token failed", logger.PageID(pageID), logger.Err(err))
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

// PagePost handles POST /facebook/page-post/{pageId}. Acepta el mensaje por
// JSON o por form body; sin mensaje usa el texto de prueba por defecto.
func (c *FacebookController) PagePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("FacebookController.PagePost"))

	sess := middlewares.SessionFrom(ctx)
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	var req dto.PagePostRequest
	if isJSON(r) {
		_ = json.NewDecoder(r.Body).Decode(&req)
	} else {
		_ = r.ParseForm()
		req.Message = r.PostFormValue("message")
	}

	pageID := chi.URLParam(r, "pageId")
	if err := c.service.PagePost(ctx, sess, pageID, req.Message); err != nil {
		log.Warn("page post failed", logger.PageID(pageID), logger.Err(err))
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

// Refresh handles GET /facebook/refresh. Graph user tokens can't be renewed
// through a refresh grant, so this always records an explanatory error.
func (c *FacebookController) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("FacebookController.Refresh"))

	sess := middlewares.SessionFrom(ctx)
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	sess.SetResult(&session.Result{
		Title: "Facebook Token Refresh",
		Error: "Facebook user tokens do not support refresh. Please re-login if expired.",
	})

	if err := c.sessions.Save(ctx, sess); err != nil {
		log.Error("session save failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	http.Redirect(w, r, "/result", http.StatusFound)
}

// isJSON reporta si el request trae body JSON.
func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}
