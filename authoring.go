// Package authoring decides whether a page is being rendered inside an
// AEM-style editing environment and produces the client-library markup the
// editor needs when it is.
//
// Detection combines two signals: the aemmode URL query parameter (set for
// remote SPA deployments) and the cq:wcmmode page meta property (set for
// pages rendered inside AEM). Exactly one of the two indicating a mode
// activates it; when both agree the page is treated as a regular publish
// render.
package authoring

import (
	"net/url"
	"strings"

	"github.com/sharanyavinod/aem-spa-page-model-manager/document"
)

// New constructs a Utils bound to the given API domain. An empty domain
// leaves client library URLs relative.
func New(apiDomain string, opts ...Option) *Utils {
	return &Utils{
		apiDomain: strings.TrimSpace(apiDomain),
		cfg:       applyOptions(opts),
	}
}

// NewFromSettings constructs a Utils from a resolved Settings snapshot.
// Explicit options take precedence over values carried by the settings.
func NewFromSettings(settings Settings, opts ...Option) *Utils {
	combined := make([]Option, 0, len(opts)+1)
	if !settings.Libraries.isZero() {
		combined = append(combined, WithLibraries(settings.Libraries))
	}
	combined = append(combined, opts...)
	return New(settings.APIDomain, combined...)
}

// APIDomain returns the configured base domain, "" when unset.
func (u *Utils) APIDomain() string {
	return u.apiDomain
}

// Libraries returns the editor client library URLs for doc, JS entries
// first, each resolved against the API domain. The list is non-empty only
// for remote apps in edit mode. Entries that cannot be resolved are
// skipped.
func (u *Utils) Libraries(doc document.Document) []string {
	if !u.IsRemoteApp(doc) || !u.IsEditMode(doc) {
		return nil
	}
	set := u.librarySet()
	urls := make([]string, 0, len(set.JS)+len(set.CSS))
	urls = append(urls, u.prependDomain(set.JS)...)
	urls = append(urls, u.prependDomain(set.CSS)...)
	return urls
}

// TagsForState renders the markup to inject for the requested state. The
// result is "" whenever the state is not active for doc.
func (u *Utils) TagsForState(doc document.Document, state State) string {
	if !u.IsStateActive(doc, state) {
		return ""
	}
	set := u.librarySet()
	var b strings.Builder
	for _, src := range u.prependDomain(set.JS) {
		b.WriteString(Element(TagTypeJS, "src", src))
	}
	for _, href := range u.prependDomain(set.CSS) {
		b.WriteString(Element(TagTypeStylesheet, "href", href))
	}
	return b.String()
}

// prependDomain resolves each relative library path against the API domain,
// preserving order. Paths that fail to resolve are dropped.
func (u *Utils) prependDomain(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		resolved, ok := joinDomain(u.apiDomain, path)
		if !ok {
			continue
		}
		out = append(out, resolved)
	}
	return out
}

func joinDomain(domain, path string) (string, bool) {
	if path == "" {
		return "", false
	}
	if domain == "" {
		return path, true
	}
	base, err := url.Parse(domain)
	if err != nil {
		return "", false
	}
	joined, err := url.JoinPath(base.String(), path)
	if err != nil {
		return "", false
	}
	return joined, true
}
