package social

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/dropDatabas3/socialgate/internal/provider"
	"github.com/dropDatabas3/socialgate/internal/session"
)

func TestStart_StoresPendingStateAndRedirects(t *testing.T) {
	svc := NewStartService(StartDeps{Registry: provider.NewRegistry(fbCfg(), ttCfg())})
	sess := session.New("s1")

	res, err := svc.Start(context.Background(), sess, "facebook")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	pending := sess.Pending[session.KeyFacebook]
	if pending == nil || pending.State == "" {
		t.Fatalf("pending = %+v", pending)
	}
	if pending.CodeVerifier != "" {
		t.Fatal("facebook must not carry a PKCE verifier")
	}

	u, err := url.Parse(res.RedirectURL)
	if err != nil {
		t.Fatalf("parse redirect: %v", err)
	}
	if got := u.Query().Get("state"); got != pending.State {
		t.Fatalf("url state %q != pending state %q", got, pending.State)
	}
}

func TestStart_TikTokDerivesChallengeFromStoredVerifier(t *testing.T) {
	svc := NewStartService(StartDeps{Registry: provider.NewRegistry(fbCfg(), ttCfg())})
	sess := session.New("s1")

	res, err := svc.Start(context.Background(), sess, "tiktok")
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	pending := sess.Pending[session.KeyTikTok]
	if pending == nil || pending.CodeVerifier == "" {
		t.Fatalf("pending = %+v", pending)
	}

	u, _ := url.Parse(res.RedirectURL)
	q := u.Query()
	if q.Get("code_challenge") != provider.Challenge(pending.CodeVerifier) {
		t.Fatal("challenge in url does not match stored verifier")
	}
	if q.Get("code_challenge_method") != "S256" {
		t.Fatalf("method = %q", q.Get("code_challenge_method"))
	}
	// El verifier nunca viaja en la URL.
	if q.Get("code_verifier") != "" {
		t.Fatal("verifier leaked into the authorization url")
	}
}

// Reiniciar el flujo pisa el pending anterior: solo el último state vale.
func TestStart_RestartOverwritesPending(t *testing.T) {
	svc := NewStartService(StartDeps{Registry: provider.NewRegistry(fbCfg(), ttCfg())})
	sess := session.New("s1")

	_, _ = svc.Start(context.Background(), sess, "facebook")
	first := sess.Pending[session.KeyFacebook].State

	_, _ = svc.Start(context.Background(), sess, "facebook")
	second := sess.Pending[session.KeyFacebook].State

	if first == second {
		t.Fatal("restart must issue a fresh state")
	}
}

func TestStart_UnknownProvider(t *testing.T) {
	svc := NewStartService(StartDeps{Registry: provider.NewRegistry(fbCfg())})

	_, err := svc.Start(context.Background(), session.New("s1"), "twitter")
	if !errors.Is(err, ErrProviderUnknown) {
		t.Fatalf("err = %v", err)
	}
}
