package social

import (
	"context"
	"errors"

	"github.com/dropDatabas3/socialgate/internal/graph"
	"github.com/dropDatabas3/socialgate/internal/provider"
)

// GraphAPI son las llamadas del Graph API que usan los flujos y actions.
// *graph.Client la implementa; los tests usan spies.
type GraphAPI interface {
	ListPages(ctx context.Context, accessToken, fields string) (*graph.PageList, error)
	PageInfo(ctx context.Context, pageID, accessToken string) (*graph.PageInfo, error)
	PostToFeed(ctx context.Context, pageID, pageToken, message string) (*graph.PostResult, error)
	CreateMedia(ctx context.Context, igUserID, accessToken, imageURL, caption string) (*graph.PostResult, error)
	PublishMedia(ctx context.Context, igUserID, accessToken, creationID string) (*graph.PostResult, error)
}

// facebookEnricher lists the user's managed pages after authorization.
type facebookEnricher struct {
	graph GraphAPI
}

// NewFacebookEnricher creates the Facebook post-auth enrichment step.
func NewFacebookEnricher(g GraphAPI) Enricher {
	return &facebookEnricher{graph: g}
}

func (e *facebookEnricher) Enrich(ctx context.Context, tok *provider.Token) (string, any, error) {
	pages, err := e.graph.ListPages(ctx, tok.AccessToken, "")
	if err != nil {
		return "", nil, &FlowError{
			Message: upstreamOr(err, "Failed to fetch Facebook pages."),
			Err:     err,
		}
	}
	return "Facebook: Your Pages", pages, nil
}

// instagramEnricher maps each managed page to its linked Instagram business
// account. A failing lookup for one page is recorded in place; the other
// pages keep their results (order and length preserved).
type instagramEnricher struct {
	graph GraphAPI
}

// NewInstagramEnricher creates the Instagram post-auth enrichment step.
func NewInstagramEnricher(g GraphAPI) Enricher {
	return &instagramEnricher{graph: g}
}

func (e *instagramEnricher) Enrich(ctx context.Context, tok *provider.Token) (string, any, error) {
	pages, err := e.graph.ListPages(ctx, tok.AccessToken, "id,name")
	if err != nil {
		return "", nil, &FlowError{
			Message: upstreamOr(err, "Failed to fetch Facebook pages."),
			Err:     err,
		}
	}

	// Secuencial, en el orden del listing, a lo sumo un intento por página.
	results := make([]graph.PageInfo, 0, len(pages.Data))
	for _, p := range pages.Data {
		info, err := e.graph.PageInfo(ctx, p.ID, tok.AccessToken)
		if err != nil {
			results = append(results, graph.PageInfo{
				ID:    p.ID,
				Name:  p.Name,
				Error: upstreamOr(err, "Failed to fetch IG business account."),
			})
			continue
		}
		results = append(results, *info)
	}

	return "Instagram: Linked IG Business Accounts", results, nil
}

// tiktokEnricher has no dependent network calls: the result is the token
// itself (TikTok issues a refresh token, unlike the Graph flows).
type tiktokEnricher struct{}

// NewTikTokEnricher creates the TikTok post-auth step.
func NewTikTokEnricher() Enricher {
	return &tiktokEnricher{}
}

func (e *tiktokEnricher) Enrich(_ context.Context, tok *provider.Token) (string, any, error) {
	payload := map[string]any{
		"access_token":  tok.AccessToken,
		"refresh_token": tok.RefreshToken,
		"expires_in":    tok.ExpiresIn,
	}
	return "TikTok: Access Token", payload, nil
}

// upstreamOr returns the provider's error message verbatim when the error
// carries one, otherwise the fallback.
func upstreamOr(err error, fallback string) string {
	var ge *graph.Error
	if errors.As(err, &ge) && ge.Message != "" {
		return ge.Message
	}
	var xe *provider.ExchangeError
	if errors.As(err, &xe) && xe.Message != "" {
		return xe.Message
	}
	return fallback
}
