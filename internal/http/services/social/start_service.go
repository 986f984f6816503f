package social

import (
	"context"

	"github.com/dropDatabas3/socialgate/internal/session"
)

// StartResult es el resultado de iniciar un flujo OAuth.
type StartResult struct {
	RedirectURL string
}

// StartService inicia el flujo de autorización de un provider.
type StartService interface {
	// Start genera state (y PKCE si aplica), lo guarda en la sesión
	// (pisando cualquier pending previo del provider) y devuelve la URL
	// de autorización para redirigir al browser.
	Start(ctx context.Context, sess *session.Session, providerSlug string) (*StartResult, error)
}
