package social

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/socialgate/internal/graph"
	dto "github.com/dropDatabas3/socialgate/internal/http/dto/social"
	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// DefaultPagePostMessage se usa cuando el body no trae mensaje.
const DefaultPagePostMessage = "Test post from OAuth demo (for access verification)."

// FacebookService son los action endpoints de Facebook. Requieren una
// credencial primaria ya almacenada; sin ella fallan con ErrNotAuthenticated
// antes de cualquier llamada de red.
type FacebookService interface {
	// PageToken resuelve y cachea el token page-scoped de una página.
	PageToken(ctx context.Context, sess *session.Session, pageID string) error
	// PagePost publica un mensaje en el feed de una página.
	PagePost(ctx context.Context, sess *session.Session, pageID, message string) error
}

// FacebookDeps contains dependencies for the Facebook action service.
type FacebookDeps struct {
	Graph GraphAPI
}

type facebookService struct {
	graph GraphAPI
}

// NewFacebookService creates a new FacebookService.
func NewFacebookService(d FacebookDeps) FacebookService {
	return &facebookService{graph: d.Graph}
}

func (s *facebookService) PageToken(ctx context.Context, sess *session.Session, pageID string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.facebook"))

	cred := sess.Credential(session.KeyFacebook)
	if cred == nil || cred.AccessToken == "" {
		return ErrNotAuthenticated
	}

	pages, err := s.graph.ListPages(ctx, cred.AccessToken, "")
	if err != nil {
		log.Warn("page listing failed", logger.Err(err))
		return fmt.Errorf("%w: %v", ErrUpstreamActionFailed, err)
	}

	page := findPage(pages, pageID)
	if page == nil {
		return ErrResourceNotFound
	}

	// Cachear el token derivado en la credencial almacenada.
	cred.PageAccessToken = page.AccessToken

	sess.SetResult(&session.Result{
		Title: "Facebook: Page Token for " + pageID,
		Payload: dto.PageTokenPayload{
			PageID:          pageID,
			PageName:        page.Name,
			PageAccessToken: page.AccessToken,
		},
	})

	log.Info("page token cached", logger.PageID(pageID))
	return nil
}

func (s *facebookService) PagePost(ctx context.Context, sess *session.Session, pageID, message string) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.facebook"))

	cred := sess.Credential(session.KeyFacebook)
	if cred == nil || cred.AccessToken == "" {
		return ErrNotAuthenticated
	}

	if message == "" {
		message = DefaultPagePostMessage
	}

	// Token page-scoped: usar el cacheado o buscarlo una única vez.
	pageToken := cred.PageAccessToken
	if pageToken == "" {
		pages, err := s.graph.ListPages(ctx, cred.AccessToken, "")
		if err != nil {
			log.Warn("page listing failed", logger.Err(err))
			return fmt.Errorf("%w: %v", ErrUpstreamActionFailed, err)
		}
		page := findPage(pages, pageID)
		if page == nil {
			return ErrResourceNotFound
		}
		pageToken = page.AccessToken
		cred.PageAccessToken = pageToken
	}

	post, err := s.graph.PostToFeed(ctx, pageID, pageToken, message)
	if err != nil {
		log.Warn("page post failed", logger.PageID(pageID), logger.Err(err))
		return fmt.Errorf("%w: %v", ErrUpstreamActionFailed, err)
	}

	sess.SetResult(&session.Result{
		Title:   "Facebook: Page Post Result",
		Payload: post,
	})

	log.Info("page post published", logger.PageID(pageID))
	return nil
}

// findPage busca una página por id entre las administradas por el usuario.
func findPage(pages *graph.PageList, id string) *graph.Page {
	for i := range pages.Data {
		if pages.Data[i].ID == id {
			return &pages.Data[i]
		}
	}
	return nil
}
