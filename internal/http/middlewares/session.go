package middlewares

import (
	"context"
	"net/http"

	"github.com/dropDatabas3/socialgate/internal/session"
)

type sessKey struct{}

// SessionFrom retorna la sesión inyectada por WithSession, o nil.
func SessionFrom(ctx context.Context) *session.Session {
	if v, ok := ctx.Value(sessKey{}).(*session.Session); ok {
		return v
	}
	return nil
}

// WithSession carga (o crea) la sesión del request y la inyecta en el
// contexto. La sesión es propiedad exclusiva de este request; los handlers
// que la mutan deben persistirla via Manager.Save.
func WithSession(m *session.Manager) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := m.Attach(w, r)
			ctx := context.WithValue(r.Context(), sessKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
