package store

import (
	"context"
	"errors"
	"testing"

	authoring "github.com/sharanyavinod/aem-spa-page-model-manager"
)

func seedStore(t *testing.T) *MemoryStore[authoring.Settings] {
	t.Helper()
	ctx := context.Background()
	s := NewMemoryStore[authoring.Settings]()

	if _, err := s.Save(ctx, Ref{Scope: ScopeGlobal}, authoring.Settings{
		APIDomain: "https://global.example.com",
		Rules:     map[string]string{"edit": "global", "preview": "global"},
	}, Meta{}); err != nil {
		t.Fatalf("seed global: %v", err)
	}
	if _, err := s.Save(ctx, Ref{Site: "wknd", Scope: ScopeSite}, authoring.Settings{
		APIDomain: "https://wknd.example.com",
		Rules:     map[string]string{"edit": "site"},
	}, Meta{}); err != nil {
		t.Fatalf("seed site: %v", err)
	}
	if _, err := s.Save(ctx, Ref{Site: "wknd", Scope: ScopePage, Path: "/content/home"}, authoring.Settings{
		Rules: map[string]string{"edit": "page"},
	}, Meta{}); err != nil {
		t.Fatalf("seed page: %v", err)
	}
	return s
}

func TestResolverChainPrecedence(t *testing.T) {
	resolver := Resolver[authoring.Settings]{Store: seedStore(t)}

	resolved, err := resolver.Resolve(context.Background(), "wknd", "/content/home")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	merged := resolved.Value
	if merged.Rules["edit"] != "page" {
		t.Fatalf("expected page rule to win, got %q", merged.Rules["edit"])
	}
	if merged.Rules["preview"] != "global" {
		t.Fatalf("expected global rule to fill gap, got %q", merged.Rules["preview"])
	}
	if merged.APIDomain != "https://wknd.example.com" {
		t.Fatalf("expected site domain, got %q", merged.APIDomain)
	}

	layers := resolved.Layers()
	if len(layers) != 3 {
		t.Fatalf("expected 3 layers, got %d", len(layers))
	}
	if layers[0].Scope.Name != ScopePage || layers[2].Scope.Name != ScopeGlobal {
		t.Fatalf("expected strongest-first ordering, got %q..%q",
			layers[0].Scope.Name, layers[2].Scope.Name)
	}
	if layers[0].SnapshotID == "" {
		t.Fatalf("expected snapshot IDs to flow into provenance")
	}
}

func TestResolverSkipsMissingLayers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[authoring.Settings]()
	if _, err := s.Save(ctx, Ref{Scope: ScopeGlobal}, authoring.Settings{
		APIDomain: "https://global.example.com",
	}, Meta{}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	resolver := Resolver[authoring.Settings]{Store: s}
	resolved, err := resolver.Resolve(ctx, "wknd", "/content/home")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Value.APIDomain != "https://global.example.com" {
		t.Fatalf("expected global fallback, got %+v", resolved.Value)
	}
	if len(resolved.Layers()) != 1 {
		t.Fatalf("expected a single layer, got %d", len(resolved.Layers()))
	}
}

func TestResolverWithoutPagePath(t *testing.T) {
	resolver := Resolver[authoring.Settings]{Store: seedStore(t)}

	resolved, err := resolver.Resolve(context.Background(), "wknd", "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Value.Rules["edit"] != "site" {
		t.Fatalf("expected site rule without page scope, got %q", resolved.Value.Rules["edit"])
	}
	if len(resolved.Layers()) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(resolved.Layers()))
	}
}

func TestResolverEmptyStore(t *testing.T) {
	resolver := Resolver[authoring.Settings]{Store: NewMemoryStore[authoring.Settings]()}

	resolved, err := resolver.Resolve(context.Background(), "wknd", "/content/home")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Value.APIDomain != "" || len(resolved.Layers()) != 0 {
		t.Fatalf("expected zero value for empty store, got %+v", resolved)
	}
}

func TestResolverRequiresStore(t *testing.T) {
	if _, err := (Resolver[authoring.Settings]{}).Resolve(context.Background(), "wknd", ""); err == nil {
		t.Fatalf("expected error without a store")
	}
}

type failingStore struct{}

func (failingStore) Load(context.Context, Ref) (authoring.Settings, Meta, bool, error) {
	return authoring.Settings{}, Meta{}, false, errors.New("backend down")
}

func (failingStore) Save(context.Context, Ref, authoring.Settings, Meta) (Meta, error) {
	return Meta{}, errors.New("backend down")
}

func TestResolverPropagatesLoadErrors(t *testing.T) {
	resolver := Resolver[authoring.Settings]{Store: failingStore{}}
	if _, err := resolver.Resolve(context.Background(), "wknd", "/content/home"); err == nil {
		t.Fatalf("expected load error to propagate")
	}
}
