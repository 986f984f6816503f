package social

import (
	"errors"
	"net/http"

	httperrors "github.com/dropDatabas3/socialgate/internal/http/errors"
	svc "github.com/dropDatabas3/socialgate/internal/http/services/social"
)

// writeActionError mapea los errores sentinela de los action services a
// respuestas HTTP. Los errores de flujo OAuth no pasan por acá: esos van a
// LastResult y el callback siempre redirige a /result.
func writeActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, svc.ErrNotAuthenticated):
		httperrors.WriteError(w, httperrors.ErrNotAuthenticated)
	case errors.Is(err, svc.ErrResourceNotFound):
		httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("resource not found for this account"))
	case errors.Is(err, svc.ErrUpstreamActionFailed):
		httperrors.WriteError(w, httperrors.ErrUpstreamFailed.WithCause(err))
	default:
		httperrors.WriteError(w, httperrors.ErrInternalServerError.WithCause(err))
	}
}
