package social

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dropDatabas3/socialgate/internal/graph"
	"github.com/dropDatabas3/socialgate/internal/session"
)

func sessionWithInstagram() *session.Session {
	sess := session.New("s1")
	sess.SetCredential(session.KeyInstagram, &session.Credential{
		AccessToken: "ig-user-tok",
		ObtainedAt:  time.Now().UTC(),
	})
	return sess
}

func TestInstagramPost_NotAuthenticated(t *testing.T) {
	svc := NewInstagramService(InstagramDeps{Graph: &spyGraph{}})

	err := svc.Post(context.Background(), session.New("s1"), "ig-1", "https://img.example/x.jpg", "")
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("err = %v", err)
	}
}

// Publicación en dos pasos: el publish usa el creation id del container.
func TestInstagramPost_TwoStepPublish(t *testing.T) {
	g := &spyGraph{}
	svc := NewInstagramService(InstagramDeps{Graph: g})
	sess := sessionWithInstagram()

	if err := svc.Post(context.Background(), sess, "ig-1", "https://img.example/x.jpg", "caption"); err != nil {
		t.Fatalf("post: %v", err)
	}
	if g.lastCreation != "creation-1" {
		t.Fatalf("publish used creation id %q", g.lastCreation)
	}
	if sess.LastResult.Title != "Instagram: Post Result" {
		t.Fatalf("title = %q", sess.LastResult.Title)
	}
	res := sess.LastResult.Payload.(*graph.PostResult)
	if res.ID != "media-1" {
		t.Fatalf("payload = %+v", res)
	}
}

func TestInstagramPost_CreateFailureSkipsPublish(t *testing.T) {
	g := &spyGraph{createErr: &graph.Error{Status: 400, Message: "Invalid image URL"}}
	svc := NewInstagramService(InstagramDeps{Graph: g})

	err := svc.Post(context.Background(), sessionWithInstagram(), "ig-1", "bad", "")
	if !errors.Is(err, ErrUpstreamActionFailed) {
		t.Fatalf("err = %v", err)
	}
	if g.lastCreation != "" {
		t.Fatal("publish must not run when the container creation failed")
	}
}
