package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dropDatabas3/socialgate/internal/cache/memory"
)

func newTestManager() *Manager {
	store := NewStore(memory.New(time.Minute), time.Minute)
	return NewManager(store, CookieConfig{Name: "sg_session", SameSite: "lax"})
}

func TestAttach_NewSessionSetsCookie(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	sess := m.Attach(rec, req)
	if sess == nil || sess.ID == "" {
		t.Fatalf("session = %+v", sess)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sg_session" || cookies[0].Value != sess.ID {
		t.Fatalf("cookies = %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("session cookie must be http-only")
	}
}

func TestAttach_ExistingSessionLoadedByCookie(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess := New("known-id")
	sess.SetCredential(KeyFacebook, &Credential{AccessToken: "tok"})
	if err := m.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sg_session", Value: "known-id"})

	got := m.Attach(rec, req)
	if got.ID != "known-id" {
		t.Fatalf("loaded id = %q", got.ID)
	}
	if got.Credential(KeyFacebook) == nil {
		t.Fatal("loaded session lost its credential")
	}
}

// Cookie presente pero sesión expirada: se emite una nueva en vez de fallar.
func TestAttach_StaleCookieGetsFreshSession(t *testing.T) {
	m := newTestManager()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "sg_session", Value: "expired-id"})

	sess := m.Attach(rec, req)
	if sess.ID == "expired-id" {
		t.Fatal("stale id must not be reused")
	}
	if len(rec.Result().Cookies()) != 1 {
		t.Fatal("fresh cookie must be issued")
	}
}

func TestDestroy_RemovesSessionAndExpiresCookie(t *testing.T) {
	m := newTestManager()
	ctx := context.Background()

	sess := New("gone-id")
	if err := m.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	rec := httptest.NewRecorder()
	if err := m.Destroy(ctx, rec, sess); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("deletion cookie = %+v", cookies)
	}

	if _, err := m.store.Get(ctx, "gone-id"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
