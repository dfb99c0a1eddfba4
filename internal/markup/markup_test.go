package markup

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdvice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want Document
	}{
		{
			name: "bold escape and newline",
			raw:  "**hi** <b>\nthere",
			want: Document{
				{Kind: Bold, Text: "hi"},
				{Kind: Text, Text: " <b>"},
				{Kind: LineBreak},
				{Kind: Text, Text: "there"},
			},
		},
		{
			name: "multiple bold spans",
			raw:  "**Listen** first, then **reflect**.",
			want: Document{
				{Kind: Bold, Text: "Listen"},
				{Kind: Text, Text: " first, then "},
				{Kind: Bold, Text: "reflect"},
				{Kind: Text, Text: "."},
			},
		},
		{
			name: "bold does not span lines",
			raw:  "**open\nclose**",
			want: Document{
				{Kind: Text, Text: "**open"},
				{Kind: LineBreak},
				{Kind: Text, Text: "close**"},
			},
		},
		{
			name: "empty bold markers stay literal",
			raw:  "****",
			want: Document{{Kind: Text, Text: "****"}},
		},
		{
			name: "blank lines",
			raw:  "a\n\nb",
			want: Document{
				{Kind: Text, Text: "a"},
				{Kind: LineBreak},
				{Kind: LineBreak},
				{Kind: Text, Text: "b"},
			},
		},
		{name: "empty", raw: "", want: nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, ParseAdvice(tt.raw)); diff != "" {
				t.Fatalf("ParseAdvice(%q) mismatch (-want +got):\n%s", tt.raw, diff)
			}
		})
	}
}

func TestAdviceHTML(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<strong>hi</strong> &lt;b&gt;<br/>there", AdviceHTML("**hi** <b>\nthere"))
	assert.Equal(t, "<strong>a &amp;&lt;b&gt;</strong>", AdviceHTML("**a &<b>**"))
	assert.Equal(t, "Tom &amp; Jerry", AdviceHTML("Tom & Jerry"))
	assert.Equal(t, "", AdviceHTML(""))
}

func TestAdviceHTMLNeverEmitsBackendTags(t *testing.T) {
	t.Parallel()

	out := AdviceHTML(`<script>alert("x")</script> **<img src=x onerror=y>**`)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "<strong>&lt;img src=x onerror=y&gt;</strong>")
}

func TestParseHitShortContent(t *testing.T) {
	t.Parallel()

	doc := ParseHit("See https://example.org/case?id=1 for details", false)
	want := Document{
		{Kind: Text, Text: "See "},
		{Kind: Link, Text: "https://example.org/case?id=1", Href: "https://example.org/case?id=1"},
		{Kind: Text, Text: " for details"},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("ParseHit mismatch (-want +got):\n%s", diff)
	}
	assert.False(t, HitTruncated("See https://example.org/case?id=1 for details"))
}

func TestParseHitTruncatesBeforeLinking(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("a", 390) + " http://example.com/very/long/path"
	require.True(t, HitTruncated(content))

	collapsed := ParseHit(content, false)
	plain := collapsed.PlainText()
	assert.True(t, strings.HasSuffix(plain, "..."), "collapsed text should end with an ellipsis: %q", plain)
	assert.Equal(t, HitPreviewLimit+len("..."), len([]rune(plain)))
	// The cut lands inside the URL, so the link stops at the cut.
	require.Equal(t, []string{"http://ex..."}, collapsed.Links())

	expanded := ParseHit(content, true)
	assert.Equal(t, content, expanded.PlainText())
	assert.Equal(t, []string{"http://example.com/very/long/path"}, expanded.Links())
}

func TestParseHitExactlyAtLimit(t *testing.T) {
	t.Parallel()

	content := strings.Repeat("é", HitPreviewLimit)
	assert.False(t, HitTruncated(content))
	assert.Equal(t, content, ParseHit(content, false).PlainText())
}

func TestKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "bold", Bold.String())
	assert.Equal(t, "br", LineBreak.String())
	assert.Equal(t, "unknown", Kind(42).String())
}
