package generator

import "regexp"

var (
	newlinesBeforeHeading = regexp.MustCompile(`\n+#`)
	trailingNewlines      = regexp.MustCompile(`\n+$`)
)

// Normalize fixes blank-line spacing across the whole document: exactly one
// blank line before every heading marker and a single trailing newline.
func Normalize(doc string) string {
	doc = newlinesBeforeHeading.ReplaceAllString(doc, "\n\n#")
	return trailingNewlines.ReplaceAllString(doc, "\n")
}
