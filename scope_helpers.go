package authoring

const (
	// Recommended priorities for the canonical CMS layering chain. Higher
	// numbers win.
	ScopePriorityGlobal = 100
	ScopePrioritySite   = 200
	ScopePriorityPage   = 300
)

// GlobalSitePage assembles the canonical three-layer chain (global defaults
// → site → page) and returns the merged settings.
func GlobalSitePage[T any](global, site, page T) (*Resolved[T], error) {
	layers := []Layer[T]{
		NewLayer(NewScope("page", ScopePriorityPage, WithScopeLabel("Page")), page),
		NewLayer(NewScope("site", ScopePrioritySite, WithScopeLabel("Site")), site),
		NewLayer(NewScope("global", ScopePriorityGlobal, WithScopeLabel("Global Defaults")), global),
	}
	stack, err := NewStack(layers...)
	if err != nil {
		return nil, err
	}
	return stack.Merge()
}
