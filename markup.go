package authoring

import (
	"fmt"
	"html"
)

// Element renders the markup for a single client library reference. The
// result is a pure function of (tagType, attr, value); unsupported tag
// types render as "". Attribute names and values are escaped.
func Element(tagType TagType, attr, value string) string {
	if attr == "" || value == "" {
		return ""
	}
	switch tagType {
	case TagTypeJS:
		return fmt.Sprintf(`<script %s="%s"></script>`, html.EscapeString(attr), html.EscapeString(value))
	case TagTypeStylesheet:
		return fmt.Sprintf(`<link %s="%s" rel="stylesheet" type="text/css"/>`, html.EscapeString(attr), html.EscapeString(value))
	default:
		return ""
	}
}
