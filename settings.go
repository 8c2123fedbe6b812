package authoring

import (
	"fmt"

	"github.com/sharanyavinod/aem-spa-page-model-manager/internal/hydrate"
)

// Settings is the layered authoring configuration resolved for a site. All
// fields are optional so snapshots merge cleanly across scopes.
type Settings struct {
	APIDomain string            `json:"api_domain,omitempty"`
	Libraries LibrarySet        `json:"libraries,omitempty"`
	Rules     map[string]string `json:"rules,omitempty"`
}

// LibrarySet groups client library paths by tag kind. Injection order is
// JS first, then CSS, each preserving declaration order.
type LibrarySet struct {
	JS  []string `json:"js,omitempty"`
	CSS []string `json:"css,omitempty"`
}

func (s LibrarySet) isZero() bool {
	return len(s.JS) == 0 && len(s.CSS) == 0
}

func (s LibrarySet) clone() LibrarySet {
	out := LibrarySet{}
	if len(s.JS) > 0 {
		out.JS = append([]string(nil), s.JS...)
	}
	if len(s.CSS) > 0 {
		out.CSS = append([]string(nil), s.CSS...)
	}
	return out
}

// Validate checks rule names so broken payloads fail at hydration rather
// than first evaluation.
func (s Settings) Validate() error {
	for name, rule := range s.Rules {
		if name == "" {
			return fmt.Errorf("authoring: settings rule name must not be empty")
		}
		if rule == "" {
			return fmt.Errorf("authoring: settings rule %q must not be empty", name)
		}
	}
	return nil
}

// DefaultSettings returns the built-in editor configuration.
func DefaultSettings() Settings {
	return Settings{
		Libraries: defaultLibraries.clone(),
	}
}

// SettingsFromPayload decodes a CMS settings payload for site into a typed
// Settings value. Legacy camel-case keys emitted by older CMS endpoints are
// normalised before decoding, and the result is validated.
func SettingsFromPayload(site string, payload map[string]any) (Settings, error) {
	decoder := hydrate.NewDecoder(
		hydrate.WithPreHook[Settings](normalizeLegacyKeys),
		hydrate.WithPostHook[Settings](func(_ hydrate.Context, settings *Settings) error {
			return settings.Validate()
		}),
	)
	return decoder.Decode(hydrate.Context{Site: site}, payload)
}

func normalizeLegacyKeys(_ hydrate.Context, payload map[string]any) (map[string]any, error) {
	if value, ok := payload["apiDomain"]; ok {
		if _, exists := payload["api_domain"]; !exists {
			payload["api_domain"] = value
		}
		delete(payload, "apiDomain")
	}
	return payload, nil
}
