package social

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/provider"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// StartDeps contains dependencies for start service.
type StartDeps struct {
	Registry *provider.Registry
}

type startService struct {
	registry *provider.Registry
}

// NewStartService creates a new StartService.
func NewStartService(d StartDeps) StartService {
	return &startService{registry: d.Registry}
}

// Start initiates the OAuth flow for a provider.
// A missing client id/secret is a deployment misconfiguration; this layer
// does not detect it.
func (s *startService) Start(ctx context.Context, sess *session.Session, providerSlug string) (*StartResult, error) {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.start"))

	cfg, err := s.registry.BySlug(providerSlug)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnknown, err)
	}

	state := provider.NewState()
	pending := &session.PendingAuth{State: state}

	challenge := ""
	if cfg.UsePKCE {
		// El verifier queda server-side; al provider viaja solo el challenge.
		verifier := provider.NewVerifier()
		pending.CodeVerifier = verifier
		challenge = provider.Challenge(verifier)
	}

	sess.SetPending(cfg.Key, pending)

	log.Info("authorization flow started",
		logger.Provider(cfg.Key),
		logger.SessionID(sess.ID),
	)

	return &StartResult{RedirectURL: cfg.AuthCodeURL(state, challenge)}, nil
}
