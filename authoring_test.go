package authoring

import (
	"strings"
	"testing"

	"github.com/sharanyavinod/aem-spa-page-model-manager/document"
)

func pageDoc(pageURL string, meta map[string]string) document.Document {
	return document.New(pageURL, meta)
}

func TestModeDetectionRequiresExactlyOneSource(t *testing.T) {
	cases := []struct {
		name string
		url  string
		meta map[string]string
		mode Mode
		want bool
	}{
		{
			name: "query only",
			url:  "https://spa.example.com/content/home?aemmode=edit",
			mode: ModeEdit,
			want: true,
		},
		{
			name: "meta only",
			url:  "https://author.example.com/content/home.html",
			meta: map[string]string{MetaPropertyWCMMode: "edit"},
			mode: ModeEdit,
			want: true,
		},
		{
			name: "both sources agree",
			url:  "https://spa.example.com/content/home?aemmode=edit",
			meta: map[string]string{MetaPropertyWCMMode: "edit"},
			mode: ModeEdit,
			want: false,
		},
		{
			name: "neither source",
			url:  "https://www.example.com/content/home.html",
			mode: ModeEdit,
			want: false,
		},
		{
			name: "query preview does not activate edit",
			url:  "https://spa.example.com/content/home?aemmode=preview",
			mode: ModeEdit,
			want: false,
		},
		{
			name: "query preview activates preview",
			url:  "https://spa.example.com/content/home?aemmode=preview",
			mode: ModePreview,
			want: true,
		},
		{
			name: "meta disabled never activates",
			url:  "https://www.example.com/content/home.html",
			meta: map[string]string{MetaPropertyWCMMode: "disabled"},
			mode: ModeEdit,
			want: false,
		},
		{
			name: "unparsable value ignored",
			url:  "https://spa.example.com/content/home?aemmode=bogus",
			mode: ModeEdit,
			want: false,
		},
	}

	utils := New("https://author.example.com")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := pageDoc(tc.url, tc.meta)
			got := tc.mode == ModeEdit && utils.IsEditMode(doc) ||
				tc.mode == ModePreview && utils.IsPreviewMode(doc)
			if got != tc.want {
				t.Fatalf("mode %q: expected %v, got %v", tc.mode, tc.want, got)
			}
		})
	}
}

func TestIsStateActiveRecognisesOnlyAuthoring(t *testing.T) {
	utils := New("https://author.example.com")
	doc := pageDoc("https://spa.example.com/content/home?aemmode=edit", nil)

	if !utils.IsStateActive(doc, StateAuthoring) {
		t.Fatalf("expected authoring state to be active")
	}
	if utils.IsStateActive(doc, State("publishing")) {
		t.Fatalf("unknown states must never be active")
	}

	agreeing := pageDoc("https://spa.example.com/content/home?aemmode=edit",
		map[string]string{MetaPropertyWCMMode: "edit"})
	if utils.IsStateActive(agreeing, StateAuthoring) {
		t.Fatalf("agreeing sources must cancel out")
	}
}

func TestIsRemoteAppChecksQueryParameterPresence(t *testing.T) {
	utils := New("https://author.example.com")

	if !utils.IsRemoteApp(pageDoc("https://spa.example.com/?aemmode=edit", nil)) {
		t.Fatalf("expected remote app with aemmode parameter")
	}
	if !utils.IsRemoteApp(pageDoc("https://spa.example.com/?aemmode=", nil)) {
		t.Fatalf("parameter presence matters, not its value")
	}
	if utils.IsRemoteApp(pageDoc("https://spa.example.com/", nil)) {
		t.Fatalf("no parameter means no remote app")
	}
	if utils.IsRemoteApp(pageDoc("", nil)) {
		t.Fatalf("missing URL means no remote app")
	}
}

func TestIsInEditorCombinesSignals(t *testing.T) {
	utils := New("https://author.example.com")

	inAEM := pageDoc("https://author.example.com/content/home.html",
		map[string]string{MetaPropertyWCMMode: "preview"})
	if !utils.IsInEditor(inAEM) {
		t.Fatalf("preview meta should place the page in the editor")
	}

	publish := pageDoc("https://www.example.com/content/home.html", nil)
	if utils.IsInEditor(publish) {
		t.Fatalf("publish render must not be in the editor")
	}
}

func TestLibrariesAreDeterministicAndOrdered(t *testing.T) {
	utils := New("https://author.example.com")
	doc := pageDoc("https://spa.example.com/content/home?aemmode=edit", nil)

	first := utils.Libraries(doc)
	second := utils.Libraries(doc)
	if len(first) == 0 {
		t.Fatalf("expected libraries for remote app in edit mode")
	}
	if len(first) != len(second) {
		t.Fatalf("expected stable library count, got %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("library order changed at %d: %q vs %q", i, first[i], second[i])
		}
	}
	for _, lib := range first {
		if !strings.HasPrefix(lib, "https://author.example.com/") {
			t.Fatalf("library %q not resolved against API domain", lib)
		}
	}
	// JS entries precede CSS entries.
	if !strings.HasSuffix(first[0], ".js") || !strings.HasSuffix(first[len(first)-1], ".css") {
		t.Fatalf("unexpected library ordering: %v", first)
	}
}

func TestLibrariesEmptyOutsideEditContext(t *testing.T) {
	utils := New("https://author.example.com")

	if libs := utils.Libraries(pageDoc("https://www.example.com/", nil)); libs != nil {
		t.Fatalf("expected no libraries on publish, got %v", libs)
	}
	// Meta-only edit mode is not a remote app.
	inAEM := pageDoc("https://author.example.com/content/home.html",
		map[string]string{MetaPropertyWCMMode: "edit"})
	if libs := utils.Libraries(inAEM); libs != nil {
		t.Fatalf("expected no libraries inside AEM, got %v", libs)
	}
}

func TestLibrariesSkipUnresolvablePaths(t *testing.T) {
	utils := New("://not-a-domain", WithLibraries(LibrarySet{
		JS: []string{"/lib/a.js"},
	}))
	doc := pageDoc("https://spa.example.com/?aemmode=edit", nil)
	if libs := utils.Libraries(doc); len(libs) != 0 {
		t.Fatalf("expected unresolvable entries to be skipped, got %v", libs)
	}
}

func TestLibrariesRelativeWithoutDomain(t *testing.T) {
	utils := New("")
	doc := pageDoc("https://spa.example.com/?aemmode=edit", nil)
	libs := utils.Libraries(doc)
	if len(libs) == 0 {
		t.Fatalf("expected relative libraries without a domain")
	}
	for _, lib := range libs {
		if !strings.HasPrefix(lib, editorClientlibPath) {
			t.Fatalf("expected relative path, got %q", lib)
		}
	}
}

func TestTagsForState(t *testing.T) {
	utils := New("https://author.example.com")
	doc := pageDoc("https://spa.example.com/content/home?aemmode=edit", nil)

	markup := utils.TagsForState(doc, StateAuthoring)
	if markup == "" {
		t.Fatalf("expected markup when authoring is active")
	}
	if !strings.Contains(markup, `<script src="https://author.example.com`) {
		t.Fatalf("expected script tags, got %q", markup)
	}
	if !strings.Contains(markup, `rel="stylesheet"`) {
		t.Fatalf("expected stylesheet tags, got %q", markup)
	}
	if idx := strings.Index(markup, "<link"); idx >= 0 && strings.Index(markup, "<script") > idx {
		t.Fatalf("script tags must precede stylesheet tags: %q", markup)
	}

	if got := utils.TagsForState(doc, State("publishing")); got != "" {
		t.Fatalf("expected empty markup for unknown state, got %q", got)
	}
	publish := pageDoc("https://www.example.com/content/home.html", nil)
	if got := utils.TagsForState(publish, StateAuthoring); got != "" {
		t.Fatalf("expected empty markup on publish, got %q", got)
	}
}

func TestElement(t *testing.T) {
	cases := []struct {
		name    string
		tagType TagType
		attr    string
		value   string
		want    string
	}{
		{
			name:    "script",
			tagType: TagTypeJS,
			attr:    "src",
			value:   "/lib/messaging.js",
			want:    `<script src="/lib/messaging.js"></script>`,
		},
		{
			name:    "stylesheet",
			tagType: TagTypeStylesheet,
			attr:    "href",
			value:   "/lib/page.css",
			want:    `<link href="/lib/page.css" rel="stylesheet" type="text/css"/>`,
		},
		{
			name:    "unknown tag type",
			tagType: TagType("iframe"),
			attr:    "src",
			value:   "/x",
			want:    "",
		},
		{
			name:    "escapes attribute value",
			tagType: TagTypeJS,
			attr:    "src",
			value:   `/lib/a.js?x="1"&y=2`,
			want:    `<script src="/lib/a.js?x=&#34;1&#34;&amp;y=2"></script>`,
		},
		{
			name:    "empty value",
			tagType: TagTypeJS,
			attr:    "src",
			value:   "",
			want:    "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Element(tc.tagType, tc.attr, tc.value); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNewFromSettings(t *testing.T) {
	settings := Settings{
		APIDomain: "https://author.example.com",
		Libraries: LibrarySet{JS: []string{"/custom/editor.js"}},
	}
	utils := NewFromSettings(settings)
	if utils.APIDomain() != settings.APIDomain {
		t.Fatalf("expected API domain from settings, got %q", utils.APIDomain())
	}

	doc := pageDoc("https://spa.example.com/?aemmode=edit", nil)
	libs := utils.Libraries(doc)
	if len(libs) != 1 || libs[0] != "https://author.example.com/custom/editor.js" {
		t.Fatalf("expected settings libraries, got %v", libs)
	}

	// Explicit options win over the settings payload.
	overridden := NewFromSettings(settings, WithLibraries(LibrarySet{JS: []string{"/override.js"}}))
	libs = overridden.Libraries(doc)
	if len(libs) != 1 || !strings.HasSuffix(libs[0], "/override.js") {
		t.Fatalf("expected option override, got %v", libs)
	}
}
