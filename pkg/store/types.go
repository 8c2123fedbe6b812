// Package store persists per-scope authoring settings snapshots and
// resolves the scope chain for a page into a single merged settings value.
//
// A snapshot is addressed by Ref: the site it belongs to, the scope bucket
// (global, site or page) and, for page scope, the page path. Stores own the
// Meta block (snapshot ID, ETag, timestamps) used for provenance and
// optimistic concurrency.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrETagMismatch indicates a concurrent writer updated the snapshot
	// between load and save.
	ErrETagMismatch = errors.New("store: etag mismatch")
)

// Scope buckets recognised by Ref.
const (
	ScopeGlobal = "global"
	ScopeSite   = "site"
	ScopePage   = "page"
)

// Ref identifies one persisted settings snapshot.
type Ref struct {
	Site  string // site identifier, e.g. "wknd"
	Scope string // ScopeGlobal, ScopeSite or ScopePage
	Path  string // page path, required when Scope == ScopePage
}

// Identifier returns the deterministic storage key for the reference.
func (r Ref) Identifier() (string, error) {
	switch r.Scope {
	case ScopeGlobal:
		return "global/settings", nil
	case ScopeSite:
		if r.Site == "" {
			return "", fmt.Errorf("store: site required for scope %q", r.Scope)
		}
		return fmt.Sprintf("site/%s/settings", r.Site), nil
	case ScopePage:
		if r.Site == "" || r.Path == "" {
			return "", fmt.Errorf("store: site and path required for scope %q", r.Scope)
		}
		return fmt.Sprintf("site/%s/page%s/settings", r.Site, r.Path), nil
	default:
		return "", fmt.Errorf("store: unsupported scope %q", r.Scope)
	}
}

// Meta is storage-owned metadata used for provenance and concurrency
// control.
type Meta struct {
	SnapshotID string            `json:"snapshot_id,omitempty"`
	ETag       string            `json:"etag,omitempty"`
	UpdatedAt  time.Time         `json:"updated_at,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Store loads and saves one snapshot per reference. Save enforces
// optimistic concurrency: when meta.ETag is set it must match the stored
// ETag or ErrETagMismatch is returned.
type Store[T any] interface {
	Load(ctx context.Context, ref Ref) (snapshot T, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, snapshot T, meta Meta) (Meta, error)
}

// Mutator adjusts a snapshot in place during Mutate.
type Mutator[T any] func(*T) error
