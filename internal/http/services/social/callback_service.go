package social

import (
	"context"

	"github.com/dropDatabas3/socialgate/internal/provider"
	"github.com/dropDatabas3/socialgate/internal/session"
)

// CallbackRequest son los parámetros del callback OAuth.
type CallbackRequest struct {
	Provider string // slug del path
	Code     string
	State    string
}

// CallbackService procesa el callback OAuth de un provider.
//
// Siempre deja escrito sess.LastResult (éxito o error de flujo); el error de
// retorno existe para logging y para que el controller distinga un provider
// desconocido (404) de un flujo terminado. El controller redirige a /result
// en todos los demás casos.
type CallbackService interface {
	Callback(ctx context.Context, sess *session.Session, req CallbackRequest) error
}

// Enricher runs the provider's dependent calls right after a successful
// exchange and produces the result title and payload. Implementations must
// not fail the whole flow for a single entity: per-entity failures are
// recorded in place in the payload.
type Enricher interface {
	Enrich(ctx context.Context, tok *provider.Token) (title string, payload any, err error)
}
