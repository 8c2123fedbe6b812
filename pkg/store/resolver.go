package store

import (
	"context"
	"fmt"

	authoring "github.com/sharanyavinod/aem-spa-page-model-manager"
)

// Resolver loads the scope chain for a page and merges it into a single
// settings value, strongest scope first. Missing layers are skipped.
type Resolver[T any] struct {
	Store Store[T]
}

// Resolve merges global → site → page snapshots for the given page. When no
// snapshot exists at any scope, the zero settings value is returned with an
// empty provenance.
func (r Resolver[T]) Resolve(ctx context.Context, site, pagePath string) (*authoring.Resolved[T], error) {
	if r.Store == nil {
		return nil, fmt.Errorf("store: resolver requires a store")
	}

	chain := []struct {
		ref   Ref
		scope authoring.Scope
	}{
		{
			ref:   Ref{Site: site, Path: pagePath, Scope: ScopePage},
			scope: authoring.NewScope(ScopePage, authoring.ScopePriorityPage, authoring.WithScopeLabel("Page")),
		},
		{
			ref:   Ref{Site: site, Scope: ScopeSite},
			scope: authoring.NewScope(ScopeSite, authoring.ScopePrioritySite, authoring.WithScopeLabel("Site")),
		},
		{
			ref:   Ref{Scope: ScopeGlobal},
			scope: authoring.NewScope(ScopeGlobal, authoring.ScopePriorityGlobal, authoring.WithScopeLabel("Global Defaults")),
		},
	}

	var layers []authoring.Layer[T]
	for _, entry := range chain {
		if entry.ref.Scope == ScopePage && pagePath == "" {
			continue
		}
		snapshot, meta, ok, err := r.Store.Load(ctx, entry.ref)
		if err != nil {
			return nil, fmt.Errorf("store: load %s scope: %w", entry.ref.Scope, err)
		}
		if !ok {
			continue
		}
		layers = append(layers, authoring.NewLayer(entry.scope, snapshot,
			authoring.WithSnapshotID[T](meta.SnapshotID)))
	}

	if len(layers) == 0 {
		return &authoring.Resolved[T]{}, nil
	}

	stack, err := authoring.NewStack(layers...)
	if err != nil {
		return nil, err
	}
	return stack.Merge()
}
