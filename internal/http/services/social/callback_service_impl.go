package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dropDatabas3/socialgate/internal/observability/logger"
	"github.com/dropDatabas3/socialgate/internal/provider"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// CallbackDeps contains dependencies for callback service.
type CallbackDeps struct {
	Registry  *provider.Registry
	Exchanger provider.Exchanger
	// Enrichers por provider key. Un provider sin enricher no es válido:
	// todos los providers declaran qué resultado produce su callback.
	Enrichers map[string]Enricher
}

type callbackService struct {
	registry  *provider.Registry
	exchanger provider.Exchanger
	enrichers map[string]Enricher
}

// NewCallbackService creates a new CallbackService.
func NewCallbackService(d CallbackDeps) CallbackService {
	return &callbackService{
		registry:  d.Registry,
		exchanger: d.Exchanger,
		enrichers: d.Enrichers,
	}
}

// Callback runs the callback state machine: one pass, terminal on the first
// failure. The state check always happens before the exchange call.
func (s *callbackService) Callback(ctx context.Context, sess *session.Session, req CallbackRequest) error {
	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("social.callback"))

	cfg, err := s.registry.BySlug(req.Provider)
	if err != nil {
		// Sin provider no hay título para el resultado; el controller
		// responde 404 directamente.
		return fmt.Errorf("%w: %v", ErrProviderUnknown, err)
	}

	fail := func(sentinel error, msg string) error {
		sess.SetResult(&session.Result{
			Title: cfg.Name + " OAuth Error",
			Error: msg,
		})
		return sentinel
	}

	// 1. Code presente
	if req.Code == "" {
		log.Warn("missing code", logger.Provider(cfg.Key))
		return fail(ErrMissingCode, "Missing code parameter from "+cfg.Name+".")
	}

	// 2. State contra el pending de la sesión (única defensa CSRF).
	// El pending se consume acá: un segundo callback con el mismo state
	// también falla.
	pending := sess.ConsumePending(cfg.Key)
	if req.State == "" || pending == nil || req.State != pending.State {
		log.Warn("state validation failed", logger.Provider(cfg.Key))
		return fail(ErrInvalidState, "Invalid or missing state parameter.")
	}

	// 3. Verifier presente (solo PKCE)
	if cfg.UsePKCE && pending.CodeVerifier == "" {
		log.Warn("missing pkce verifier", logger.Provider(cfg.Key))
		return fail(ErrMissingVerifier, "Missing PKCE code_verifier in session.")
	}

	// 4. Exchange code → token. Un intento, sin retries.
	tok, err := s.exchanger.Exchange(ctx, cfg, req.Code, pending.CodeVerifier)
	if err != nil {
		log.Warn("token exchange failed", logger.Provider(cfg.Key), logger.Err(err))
		msg := "Failed to exchange code for token."
		var xe *provider.ExchangeError
		if errors.As(err, &xe) && xe.Message != "" {
			msg = xe.Message
		}
		return fail(fmt.Errorf("%w: %v", ErrTokenExchangeFailed, err), msg)
	}

	// 5. Persistir credencial antes de las llamadas dependientes: una
	// falla posterior no borra el token ya obtenido.
	sess.SetCredential(cfg.Key, &session.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ObtainedAt:   time.Now().UTC(),
	})

	// 6. Llamadas dependientes del provider.
	enricher, ok := s.enrichers[cfg.Key]
	if !ok {
		log.Error("no enricher registered", logger.Provider(cfg.Key))
		return fail(ErrDependentCallFailed, cfg.Name+" flow is misconfigured.")
	}

	title, payload, err := enricher.Enrich(ctx, tok)
	if err != nil {
		log.Warn("dependent call failed", logger.Provider(cfg.Key), logger.Err(err))
		msg := "Failed to complete " + cfg.Name + " flow."
		var fe *FlowError
		if errors.As(err, &fe) {
			msg = fe.Message
		}
		return fail(fmt.Errorf("%w: %v", ErrDependentCallFailed, err), msg)
	}

	// 7. Resultado final
	sess.SetResult(&session.Result{Title: title, Payload: payload})

	log.Info("callback completed",
		logger.Provider(cfg.Key),
		logger.SessionID(sess.ID),
	)
	return nil
}
