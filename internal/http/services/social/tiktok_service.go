package social

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/session"
	"github.com/dropDatabas3/socialgate/internal/tiktok"
)

// TikTokAPI son las llamadas del open API de TikTok que usa el broker.
// *tiktok.Client la implementa; los tests usan spies.
type TikTokAPI interface {
	Profile(ctx context.Context, accessToken string) (*tiktok.UserInfo, error)
}

// TikTokService son los action endpoints de TikTok.
type TikTokService interface {
	// Profile obtiene el perfil del usuario autenticado.
	Profile(ctx context.Context, sess *session.Session) error
}

// TikTokDeps contains dependencies for the TikTok action service.
type TikTokDeps struct {
	API TikTokAPI
}

type tiktokService struct {
	api TikTokAPI
}

// NewTikTokService creates a new TikTokService.
func NewTikTokService(d TikTokDeps) TikTokService {
	return &tiktokService{api: d.API}
}

func (s *tiktokService) Profile(ctx context.Context, sess *session.Session) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.tiktok"))

	cred := sess.Credential(session.KeyTikTok)
	if cred == nil || cred.AccessToken == "" {
		return ErrNotAuthenticated
	}

	profile, err := s.api.Profile(ctx, cred.AccessToken)
	if err != nil {
		log.Warn("profile fetch failed", logger.Err(err))
		return fmt.Errorf("%w: %v", ErrUpstreamActionFailed, err)
	}

	sess.SetResult(&session.Result{
		Title:   "TikTok: User Profile",
		Payload: profile,
	})

	log.Info("tiktok profile fetched")
	return nil
}
