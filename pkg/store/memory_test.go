package store

import (
	"context"
	"errors"
	"testing"

	authoring "github.com/sharanyavinod/aem-spa-page-model-manager"
)

func TestRefIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		ref     Ref
		want    string
		wantErr bool
	}{
		{name: "global", ref: Ref{Scope: ScopeGlobal}, want: "global/settings"},
		{name: "site", ref: Ref{Site: "wknd", Scope: ScopeSite}, want: "site/wknd/settings"},
		{name: "page", ref: Ref{Site: "wknd", Scope: ScopePage, Path: "/content/home"}, want: "site/wknd/page/content/home/settings"},
		{name: "site missing site", ref: Ref{Scope: ScopeSite}, wantErr: true},
		{name: "page missing path", ref: Ref{Site: "wknd", Scope: ScopePage}, wantErr: true},
		{name: "unknown scope", ref: Ref{Scope: "tenant"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.ref.Identifier()
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestMemoryStoreSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[authoring.Settings]()
	ref := Ref{Site: "wknd", Scope: ScopeSite}

	if _, _, ok, err := s.Load(ctx, ref); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	saved, err := s.Save(ctx, ref, authoring.Settings{APIDomain: "https://author.example.com"}, Meta{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.SnapshotID == "" || saved.ETag == "" || saved.UpdatedAt.IsZero() {
		t.Fatalf("expected stamped meta, got %+v", saved)
	}

	snapshot, meta, ok, err := s.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if snapshot.APIDomain != "https://author.example.com" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}
	if meta.SnapshotID != saved.SnapshotID || meta.ETag != saved.ETag {
		t.Fatalf("expected stored meta %+v, got %+v", saved, meta)
	}
}

func TestMemoryStoreETagConflict(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[authoring.Settings]()
	ref := Ref{Scope: ScopeGlobal}

	first, err := s.Save(ctx, ref, authoring.Settings{APIDomain: "v1"}, Meta{})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// A second writer with the current ETag succeeds and rotates it.
	second, err := s.Save(ctx, ref, authoring.Settings{APIDomain: "v2"}, first)
	if err != nil {
		t.Fatalf("save with matching etag: %v", err)
	}
	if second.ETag == first.ETag {
		t.Fatalf("expected fresh etag after save")
	}

	// The stale writer must be rejected.
	if _, err := s.Save(ctx, ref, authoring.Settings{APIDomain: "v3"}, first); !errors.Is(err, ErrETagMismatch) {
		t.Fatalf("expected ErrETagMismatch, got %v", err)
	}

	// Writers without an ETag overwrite unconditionally.
	if _, err := s.Save(ctx, ref, authoring.Settings{APIDomain: "v4"}, Meta{}); err != nil {
		t.Fatalf("unconditional save: %v", err)
	}
}

func TestMutate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[authoring.Settings]()
	ref := Ref{Site: "wknd", Scope: ScopeSite}

	snapshot, meta, err := Mutate(ctx, s, ref, func(settings *authoring.Settings) error {
		if settings.Rules == nil {
			settings.Rules = map[string]string{}
		}
		settings.Rules["edit"] = `query.aemmode == "edit"`
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}
	if snapshot.Rules["edit"] == "" {
		t.Fatalf("expected mutation to apply, got %+v", snapshot)
	}
	if meta.SnapshotID == "" {
		t.Fatalf("expected stamped meta")
	}

	stored, _, ok, err := s.Load(ctx, ref)
	if err != nil || !ok {
		t.Fatalf("load after mutate: ok=%v err=%v", ok, err)
	}
	if stored.Rules["edit"] == "" {
		t.Fatalf("mutation not persisted: %+v", stored)
	}
}

func TestMutateError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[authoring.Settings]()
	ref := Ref{Scope: ScopeGlobal}

	wantErr := errors.New("boom")
	if _, _, err := Mutate(ctx, s, ref, func(*authoring.Settings) error { return wantErr }); !errors.Is(err, wantErr) {
		t.Fatalf("expected mutator error, got %v", err)
	}
	if _, _, ok, _ := s.Load(ctx, ref); ok {
		t.Fatalf("failed mutation must not persist")
	}
}
