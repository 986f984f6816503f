package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CookieConfig describe la cookie de sesión (HTTP-only, server-side id).
type CookieConfig struct {
	Name     string
	Domain   string
	SameSite string
	Secure   bool
	TTL      time.Duration
}

// Manager carga/crea sesiones a partir de la cookie y las persiste en el Store.
type Manager struct {
	store  Store
	cookie CookieConfig
}

// NewManager crea un Manager.
func NewManager(store Store, cookie CookieConfig) *Manager {
	if cookie.Name == "" {
		cookie.Name = "sg_session"
	}
	if cookie.TTL <= 0 {
		cookie.TTL = 24 * time.Hour
	}
	return &Manager{store: store, cookie: cookie}
}

// Attach obtiene la sesión del request (creándola si no existe) y setea la
// cookie cuando corresponde. La sesión nueva no se persiste hasta Save.
func (m *Manager) Attach(w http.ResponseWriter, r *http.Request) *Session {
	if ck, err := r.Cookie(m.cookie.Name); err == nil && ck.Value != "" {
		if sess, err := m.store.Get(r.Context(), ck.Value); err == nil {
			return sess
		}
		// Cookie presente pero sesión expirada/perdida: emitir una nueva.
	}

	sess := New(uuid.NewString())
	http.SetCookie(w, m.buildCookie(sess.ID))
	return sess
}

// Save persiste la sesión.
func (m *Manager) Save(ctx context.Context, s *Session) error {
	return m.store.Save(ctx, s)
}

// Destroy elimina la sesión y expira la cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, s *Session) error {
	http.SetCookie(w, m.buildDeletionCookie())
	return m.store.Delete(ctx, s.ID)
}

func (m *Manager) buildCookie(value string) *http.Cookie {
	ck := &http.Cookie{
		Name:     m.cookie.Name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: parseSameSite(m.cookie.SameSite),
	}
	if strings.TrimSpace(m.cookie.Domain) != "" {
		ck.Domain = m.cookie.Domain
	}
	if m.cookie.TTL > 0 {
		ck.Expires = time.Now().Add(m.cookie.TTL).UTC()
		ck.MaxAge = int(m.cookie.TTL.Seconds())
	}
	return ck
}

func (m *Manager) buildDeletionCookie() *http.Cookie {
	ck := &http.Cookie{
		Name:     m.cookie.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.cookie.Secure,
		SameSite: parseSameSite(m.cookie.SameSite),
		Expires:  time.Unix(0, 0).UTC(),
		MaxAge:   -1,
	}
	if strings.TrimSpace(m.cookie.Domain) != "" {
		ck.Domain = m.cookie.Domain
	}
	return ck
}

func parseSameSite(s string) http.SameSite {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
