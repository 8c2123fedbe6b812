// Package document models the page under inspection: its URL and the meta
// properties the CMS rendered into its head. A Document is an immutable
// snapshot; malformed inputs degrade to empty values rather than errors.
package document

import (
	"net/url"
	"strings"
)

// Document is a read-only snapshot of a rendered page.
type Document struct {
	url   *url.URL
	title string
	meta  map[string]string
}

// New builds a Document from a raw page URL and meta property map. An
// unparsable URL leaves the document without one.
func New(pageURL string, meta map[string]string) Document {
	doc := Document{meta: copyMeta(meta)}
	if trimmed := strings.TrimSpace(pageURL); trimmed != "" {
		if parsed, err := url.Parse(trimmed); err == nil {
			doc.url = parsed
		}
	}
	return doc
}

// URL returns the page URL, nil when absent or malformed.
func (d Document) URL() *url.URL {
	if d.url == nil {
		return nil
	}
	clone := *d.url
	return &clone
}

// Title returns the page title, "" when unknown.
func (d Document) Title() string {
	return d.title
}

// MetaProperty returns the content of the named meta property.
func (d Document) MetaProperty(name string) (string, bool) {
	value, ok := d.meta[name]
	return value, ok
}

// MetaProperties returns a copy of all meta properties.
func (d Document) MetaProperties() map[string]string {
	return copyMeta(d.meta)
}

// QueryParameter returns the first value of the named URL query parameter.
func (d Document) QueryParameter(name string) (string, bool) {
	if d.url == nil {
		return "", false
	}
	values, ok := d.url.Query()[name]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// HasQueryParameter reports whether the named query parameter is present at
// all, regardless of value.
func (d Document) HasQueryParameter(name string) bool {
	if d.url == nil {
		return false
	}
	_, ok := d.url.Query()[name]
	return ok
}

func copyMeta(meta map[string]string) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for name, value := range meta {
		out[name] = value
	}
	return out
}
