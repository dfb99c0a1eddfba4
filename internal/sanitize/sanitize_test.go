package sanitize

import (
	"strings"
	"testing"
)

func TestInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "how do I help a grieving client?", "how do I help a grieving client?"},
		{"simple tag", "<b>bold</b> move", "bold move"},
		{"script", "hi<script>alert(1)</script>!", "hialert(1)!"},
		{"unterminated", "a < b and c", "a < b and c"},
		{"trailing open", "value <", "value <"},
		{"nested open", "x<<y>>z", "x>z"},
		{"multiline preserved", "line one\n  <i>line</i> two\t", "line one\n  line two\t"},
		{"entities kept", "fish &amp; chips", "fish &amp; chips"},
		{"span across lines", "a<div\nclass=x>b", "ab"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Input(tt.in); got != tt.want {
				t.Fatalf("Input(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestInputIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<<a>>",
		"a<b<c>d>e",
		"<p>hello</p> <",
		"> stray close <open",
		"<<<>>>",
		"x<y\n>z<",
	}
	for _, in := range inputs {
		once := Input(in)
		if twice := Input(once); twice != once {
			t.Fatalf("Input not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
		if tagSpan.MatchString(once) {
			t.Fatalf("Input(%q) = %q still contains a tag span", in, once)
		}
	}
}

func TestInputLeavesNoClosedSpan(t *testing.T) {
	t.Parallel()

	got := Input(strings.Repeat("<tag>text", 50))
	if strings.ContainsAny(got, "<>") {
		t.Fatalf("expected all tags stripped, got %q", got)
	}
	if got != strings.Repeat("text", 50) {
		t.Fatalf("unexpected content %q", got)
	}
}
