package validation

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#x27;",
	"<", "&lt;",
	">", "&gt;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Sanitize trims surrounding whitespace and escapes markup characters.
func Sanitize(s string) string {
	return htmlEscaper.Replace(strings.TrimSpace(s))
}
