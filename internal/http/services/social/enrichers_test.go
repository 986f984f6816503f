package social

import (
	"context"
	"testing"

	"github.com/dropDatabas3/socialgate/internal/graph"
	"github.com/dropDatabas3/socialgate/internal/provider"
)

// Un lookup fallido para una página se registra en su lugar; las demás
// conservan su resultado, con orden y largo del listado original.
func TestInstagramEnricher_PartialFailureInPlace(t *testing.T) {
	g := &spyGraph{
		pages: &graph.PageList{Data: []graph.Page{
			{ID: "1", Name: "First"},
			{ID: "2", Name: "Second"},
			{ID: "3", Name: "Third"},
		}},
		infoErr: map[string]error{
			"2": &graph.Error{Status: 400, Message: "Unsupported get request."},
		},
		accounts: map[string]*graph.IGAccount{
			"1": {ID: "ig-1", Username: "first_ig"},
			"3": {ID: "ig-3", Username: "third_ig"},
		},
	}

	title, payload, err := NewInstagramEnricher(g).Enrich(context.Background(), &provider.Token{AccessToken: "tok"})
	if err != nil {
		t.Fatalf("enrich: %v", err)
	}
	if title != "Instagram: Linked IG Business Accounts" {
		t.Fatalf("title = %q", title)
	}

	results, ok := payload.([]graph.PageInfo)
	if !ok {
		t.Fatalf("payload type %T", payload)
	}
	if len(results) != 3 {
		t.Fatalf("len = %d, want 3 (length preserved)", len(results))
	}
	if results[0].ID != "1" || results[1].ID != "2" || results[2].ID != "3" {
		t.Fatalf("order not preserved: %+v", results)
	}
	if results[1].Error != "Unsupported get request." {
		t.Fatalf("in-place error = %q, want provider message verbatim", results[1].Error)
	}
	if results[0].InstagramBusinessAccount == nil || results[0].InstagramBusinessAccount.Username != "first_ig" {
		t.Fatalf("entry 0 = %+v", results[0])
	}
	if results[2].Error != "" {
		t.Fatalf("entry 2 must not carry an error: %+v", results[2])
	}
}

func TestFacebookEnricher_ListingFailureAbortsFlow(t *testing.T) {
	g := &spyGraph{listErr: &graph.Error{Status: 500, Message: "An unknown error occurred"}}

	_, _, err := NewFacebookEnricher(g).Enrich(context.Background(), &provider.Token{AccessToken: "tok"})
	if err == nil {
		t.Fatal("expected error")
	}
	fe, ok := err.(*FlowError)
	if !ok {
		t.Fatalf("error type %T", err)
	}
	if fe.Message != "An unknown error occurred" {
		t.Fatalf("message = %q", fe.Message)
	}
}
