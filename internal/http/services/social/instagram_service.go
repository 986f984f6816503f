package social

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// DefaultInstagramCaption se usa cuando el body no trae caption.
const DefaultInstagramCaption = "Test post from OAuth demo"

// InstagramService publica en una cuenta IG Business vinculada.
// Publicación en dos pasos: crear el media container y publicarlo.
type InstagramService interface {
	Post(ctx context.Context, sess *session.Session, igUserID, imageURL, caption string) error
}

// InstagramDeps contains dependencies for the Instagram action service.
type InstagramDeps struct {
	Graph GraphAPI
}

type instagramService struct {
	graph GraphAPI
}

// NewInstagramService creates a new InstagramService.
func NewInstagramService(d InstagramDeps) InstagramService {
	return &instagramService{graph: d.Graph}
}

func (s *instagramService) Post(ctx context.Context, sess *session.Session, igUserID, imageURL, caption string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.instagram"))

	cred := sess.Credential(session.KeyInstagram)
	if cred == nil || cred.AccessToken == "" {
		return ErrNotAuthenticated
	}

	if caption == "" {
		caption = DefaultInstagramCaption
	}

	// Paso 1: media container
	media, err := s.graph.CreateMedia(ctx, igUserID, cred.AccessToken, imageURL, caption)
	if err != nil {
		log.Warn("media container creation failed", logger.Err(err))
		return fmt.Errorf("%w: %v", ErrUpstreamActionFailed, err)
	}

	// Paso 2: publicar
	published, err := s.graph.PublishMedia(ctx, igUserID, cred.AccessToken, media.ID)
	if err != nil {
		log.Warn("media publish failed", logger.Err(err))
		return fmt.Errorf("%w: %v", ErrUpstreamActionFailed, err)
	}

	sess.SetResult(&session.Result{
		Title:   "Instagram: Post Result",
		Payload: published,
	})

	log.Info("instagram post published", logger.String("ig_user_id", igUserID))
	return nil
}
