package social

import (
	"encoding/json"
	"net/http"

	dto "github.com/dropDatabas3/socialgate/internal/http/dto/social"
	httperrors "github.com/dropDatabas3/socialgate/internal/http/errors"
	"github.com/dropDatabas3/socialgate/internal/http/middlewares"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// HomeController handles GET /, the per-provider connection status view.
type HomeController struct{}

// NewHomeController creates a new HomeController.
func NewHomeController() *HomeController {
	return &HomeController{}
}

func (c *HomeController) Home(w http.ResponseWriter, r *http.Request) {
	sess := middlewares.SessionFrom(r.Context())
	if sess == nil {
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
		return
	}

	resp := dto.HomeResponse{
		Facebook:  statusFor(sess, session.KeyFacebook),
		Instagram: statusFor(sess, session.KeyInstagram),
		TikTok:    statusFor(sess, session.KeyTikTok),
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(resp)
}

func statusFor(sess *session.Session, key string) dto.ProviderStatus {
	cred := sess.Credential(key)
	if cred == nil || cred.AccessToken == "" {
		return dto.ProviderStatus{}
	}
	at := cred.ObtainedAt
	return dto.ProviderStatus{Connected: true, ObtainedAt: &at}
}
