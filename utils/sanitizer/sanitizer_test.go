package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "no ampersand",
			in:   "<title>GBP/USD</title>",
			want: "<title>GBP/USD</title>",
		},
		{
			name: "bare ampersand",
			in:   "<title>Tom & Jerry</title>",
			want: "<title>Tom &amp; Jerry</title>",
		},
		{
			name: "predefined entities are kept",
			in:   "&amp; &lt; &gt; &quot; &apos;",
			want: "&amp; &lt; &gt; &quot; &apos;",
		},
		{
			name: "numeric references are kept",
			in:   "&#163; &#xA3; &#xa3;",
			want: "&#163; &#xA3; &#xa3;",
		},
		{
			name: "unknown named entity",
			in:   "&nbsp;",
			want: "&amp;nbsp;",
		},
		{
			name: "entity without semicolon",
			in:   "a &amp b",
			want: "a &amp;amp b",
		},
		{
			name: "trailing ampersand",
			in:   "query?a=1&",
			want: "query?a=1&amp;",
		},
		{
			name: "consecutive ampersands",
			in:   "&&amp;",
			want: "&amp;&amp;",
		},
		{
			name: "link with query string",
			in:   "<link>http://x/?a=1&b=2</link>",
			want: "<link>http://x/?a=1&amp;b=2</link>",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"&",
		"&&&",
		"Tom & Jerry",
		"&amp;amp;",
		"&#;&#x;&#12a;",
		"<a href=\"?x=1&y=2&amp;z=3\">&lt;&nbsp;&#x1F600;</a>",
		"& amp; &amp &AMP;",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}
