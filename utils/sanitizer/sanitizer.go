// Package sanitizer repairs XML text whose ampersands were not escaped by the publisher.
package sanitizer

import (
	"regexp"
	"strings"
)

// entity matches what may legally follow an '&' in XML text.
var entity = regexp.MustCompile(`^(?:amp|lt|gt|quot|apos|#[0-9]+|#x[0-9a-fA-F]+);`)

// Sanitize rewrites every '&' that does not start a predefined entity or a numeric
// character reference into "&amp;". Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(xml string) string {
	if !strings.Contains(xml, "&") {
		return xml
	}

	var b strings.Builder
	b.Grow(len(xml) + 16)
	rest := xml
	for {
		i := strings.IndexByte(rest, '&')
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i+1])
		rest = rest[i+1:]
		if !entity.MatchString(rest) {
			b.WriteString("amp;")
		}
	}
	return b.String()
}
