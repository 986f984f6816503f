package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/socialgate/internal/session"
	"github.com/dropDatabas3/socialgate/internal/tiktok"
)

type spyTikTok struct {
	info  *tiktok.UserInfo
	err   error
	calls int
}

func (s *spyTikTok) Profile(_ context.Context, _ string) (*tiktok.UserInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func TestTikTokProfile_NotAuthenticated_NoCall(t *testing.T) {
	api := &spyTikTok{}
	svc := NewTikTokService(TikTokDeps{API: api})

	err := svc.Profile(context.Background(), session.New("s1"))
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v", err)
	}
	if api.calls != 0 {
		t.Fatal("no upstream call without a stored credential")
	}
}

func TestTikTokProfile_StoresResult(t *testing.T) {
	api := &spyTikTok{info: &tiktok.UserInfo{OpenID: "oid", DisplayName: "Tester"}}
	svc := NewTikTokService(TikTokDeps{API: api})

	sess := session.New("s1")
	sess.SetCredential(session.KeyTikTok, &session.Credential{AccessToken: "tok", ObtainedAt: time.Now().UTC()})

	if err := svc.Profile(context.Background(), sess); err != nil {
		t.Fatalf("profile: %v", err)
	}
	if sess.LastResult.Title != "TikTok: User Profile" {
		t.Fatalf("title = %q", sess.LastResult.Title)
	}
	if info := sess.LastResult.Payload.(*tiktok.UserInfo); info.OpenID != "oid" {
		t.Fatalf("payload = %+v", info)
	}
}

func TestTikTokProfile_UpstreamFailure(t *testing.T) {
	api := &spyTikTok{err: &tiktok.Error{Status: 401, Code: "access_token_invalid"}}
	svc := NewTikTokService(TikTokDeps{API: api})

	sess := session.New("s1")
	sess.SetCredential(session.KeyTikTok, &session.Credential{AccessToken: "tok"})

	err := svc.Profile(context.Background(), sess)
	if !errors.Is(err, ErrUpstreamActionFailed) {
		t.Fatalf("err = %v", err)
	}
}
