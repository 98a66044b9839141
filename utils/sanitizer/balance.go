package sanitizer

import (
	"regexp"
	"strings"
)

// markup matches, in order: CDATA sections, comments, processing instructions, directives,
// end tags (group 1) and start tags (group 2, with group 3 set on self-closing tags).
var markup = regexp.MustCompile(`(?s)<!\[CDATA\[.*?\]\]>|<!--.*?-->|<\?.*?\?>|<![^>]*>|</\s*([^\s>]+)\s*>|<([A-Za-z_][^\s/>]*)[^>]*?(/?)>`)

// BalanceTags matches every end tag, ignoring case, against the elements still open.
// An end tag for an outer element first closes the elements opened inside it, and an end tag
// matching no open element is removed. Elements left open at the end of the text stay open.
// BalanceTags(BalanceTags(s)) == BalanceTags(s).
func BalanceTags(xml string) string {
	matches := markup.FindAllStringSubmatchIndex(xml, -1)
	if len(matches) == 0 {
		return xml
	}

	var b strings.Builder
	b.Grow(len(xml))
	open := make([]string, 0, 8)
	last := 0
	for _, m := range matches {
		b.WriteString(xml[last:m[0]])
		last = m[1]

		switch {
		case m[2] >= 0:
			i := lastOpen(open, xml[m[2]:m[3]])
			if i < 0 {
				continue
			}
			for j := len(open) - 1; j >= i; j-- {
				b.WriteString("</" + open[j] + ">")
			}
			open = open[:i]

		case m[4] >= 0:
			b.WriteString(xml[m[0]:m[1]])
			if m[6] == m[7] {
				open = append(open, xml[m[4]:m[5]])
			}

		default:
			b.WriteString(xml[m[0]:m[1]])
		}
	}
	b.WriteString(xml[last:])
	return b.String()
}

func lastOpen(open []string, name string) int {
	for i := len(open) - 1; i >= 0; i-- {
		if strings.EqualFold(open[i], name) {
			return i
		}
	}
	return -1
}
