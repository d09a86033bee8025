package markup

import "strings"

// xmlEscaper handles the five XML metacharacters. Ampersand is listed first
// so already-escaped text is not double-escaped out of order.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape replaces the five XML metacharacters in label text. Decoding the
// five entities in the output reproduces the input exactly.
func Escape(s string) string {
	return xmlEscaper.Replace(s)
}

// escapeAttr escapes label text for use inside an attribute value,
// additionally encoding newlines so multi-line labels survive.
func escapeAttr(s string) string {
	return strings.ReplaceAll(Escape(s), "\n", "&#xa;")
}
