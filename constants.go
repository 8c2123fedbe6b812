package authoring

// Mode identifies the AEM rendering mode a page was requested in.
type Mode string

const (
	// ModeEdit marks the page as open inside the page editor.
	ModeEdit Mode = "edit"
	// ModePreview marks the page as rendered through the editor preview.
	ModePreview Mode = "preview"
	// ModeUnknown guards against unrecognised or absent mode values.
	ModeUnknown Mode = ""
)

// ParseMode converts a raw parameter or meta value into a Mode. Unrecognised
// values map onto ModeUnknown rather than erroring.
func ParseMode(value string) Mode {
	switch value {
	case "edit", "EDIT":
		return ModeEdit
	case "preview", "PREVIEW":
		return ModePreview
	default:
		return ModeUnknown
	}
}

// State names an application state callers can test for.
type State string

// StateAuthoring is the only recognised state; any other value is inactive.
const StateAuthoring State = "authoring"

// TagType enumerates the markup kinds emitted for client libraries.
type TagType string

const (
	// TagTypeJS renders a <script> element.
	TagTypeJS TagType = "script"
	// TagTypeStylesheet renders a <link rel="stylesheet"> element.
	TagTypeStylesheet TagType = "stylesheet"
)

// Signals consulted during detection. Remote apps receive the query
// parameter; pages rendered inside AEM carry the meta property.
const (
	// AEMModeParam is the URL query parameter carrying the requested mode.
	AEMModeParam = "aemmode"
	// MetaPropertyWCMMode is the page meta property carrying the WCM mode.
	MetaPropertyWCMMode = "cq:wcmmode"
)

// editorClientlibPath anchors the authoring client libraries below the
// configured API domain.
const editorClientlibPath = "/etc.clientlibs/cq/gui/components/authoring/editors/clientlibs/internal/"

// defaultLibraries lists the editor client libraries in injection order.
// JS entries precede CSS entries and relative order is preserved.
var defaultLibraries = LibrarySet{
	JS: []string{
		editorClientlibPath + "messaging.js",
		editorClientlibPath + "pagemodel/messaging.js",
	},
	CSS: []string{
		editorClientlibPath + "page.css",
	},
}
