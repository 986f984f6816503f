package session

import (
	"context"
	"testing"
	"time"

	"github.com/dropDatabas3/socialgate/internal/cache/memory"
)

func newMemoryStore(t *testing.T) Store {
	t.Helper()
	return NewStore(memory.New(time.Minute), time.Minute)
}

func TestStore_RoundTrip(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	sess := New("abc")
	sess.SetCredential(KeyFacebook, &Credential{AccessToken: "tok", ObtainedAt: time.Now().UTC()})
	sess.SetPending(KeyTikTok, &PendingAuth{State: "st", CodeVerifier: "ver"})
	sess.SetResult(&Result{Title: "T", Payload: map[string]any{"k": "v"}})

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Credential(KeyFacebook) == nil || got.Credential(KeyFacebook).AccessToken != "tok" {
		t.Fatalf("credential = %+v", got.Credential(KeyFacebook))
	}
	if p := got.Pending[KeyTikTok]; p == nil || p.CodeVerifier != "ver" {
		t.Fatalf("pending = %+v", p)
	}
	if got.LastResult == nil || got.LastResult.Title != "T" {
		t.Fatalf("last result = %+v", got.LastResult)
	}
}

func TestStore_MissingIsNotFound(t *testing.T) {
	store := newMemoryStore(t)

	if _, err := store.Get(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_Delete(t *testing.T) {
	store := newMemoryStore(t)
	ctx := context.Background()

	sess := New("abc")
	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "abc"); err != ErrNotFound {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestConsumePending_ReadOnce(t *testing.T) {
	sess := New("abc")
	sess.SetPending(KeyFacebook, &PendingAuth{State: "st"})

	if p := sess.ConsumePending(KeyFacebook); p == nil || p.State != "st" {
		t.Fatalf("first consume = %+v", p)
	}
	if p := sess.ConsumePending(KeyFacebook); p != nil {
		t.Fatalf("second consume = %+v, want nil", p)
	}
}

// Un logout de un provider no toca las credenciales de los demás.
func TestClearCredential_Isolated(t *testing.T) {
	sess := New("abc")
	sess.SetCredential(KeyFacebook, &Credential{AccessToken: "fb"})
	sess.SetCredential(KeyTikTok, &Credential{AccessToken: "tt"})

	sess.ClearCredential(KeyFacebook)

	if sess.Credential(KeyFacebook) != nil {
		t.Fatal("facebook credential must be gone")
	}
	if c := sess.Credential(KeyTikTok); c == nil || c.AccessToken != "tt" {
		t.Fatalf("tiktok credential = %+v", c)
	}
}
