package document

import "net/http"

// FromRequest builds a Document from an inbound server-side render request.
// Only URL-derived signals are available on this path; meta properties come
// from FromHTML once a page body exists.
func FromRequest(r *http.Request) Document {
	if r == nil || r.URL == nil {
		return Document{}
	}
	pageURL := *r.URL
	if pageURL.Host == "" {
		pageURL.Host = r.Host
	}
	if pageURL.Scheme == "" {
		if r.TLS != nil {
			pageURL.Scheme = "https"
		} else {
			pageURL.Scheme = "http"
		}
	}
	return Document{url: &pageURL}
}
