package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Line
	}{
		{
			name: "plain",
			in:   "Open the assembly",
			want: Line{{Text: "Open the assembly"}},
		},
		{
			name: "html bold",
			in:   "Open <b>Insert</b> menu",
			want: Line{{Text: "Open "}, {Text: "Insert", Style: Bold}, {Text: " menu"}},
		},
		{
			name: "markdown bold",
			in:   "1. Ensure you are in the **Assembly Tab**.",
			want: Line{{Text: "1. Ensure you are in the "}, {Text: "Assembly Tab", Style: Bold}, {Text: "."}},
		},
		{
			name: "nested emphasis",
			in:   "<strong>Click <em>Insert</em></strong>",
			want: Line{{Text: "Click ", Style: Bold}, {Text: "Insert", Style: Bold | Italic}},
		},
		{
			name: "markdown italic and code",
			in:   "Press `Enter` then *confirm* or _cancel_",
			want: Line{
				{Text: "Press "},
				{Text: "Enter", Style: Code},
				{Text: " then "},
				{Text: "confirm", Style: Italic},
				{Text: " or "},
				{Text: "cancel", Style: Italic},
			},
		},
		{
			name: "underscores inside words stay literal",
			in:   "select snake_case_part",
			want: Line{{Text: "select snake_case_part"}},
		},
		{
			name: "script dropped",
			in:   "Click<script>alert(1)</script> here",
			want: Line{{Text: "Click here"}},
		},
		{
			name: "unknown tags reduced to text",
			in:   `<div onclick="x()"><span style="color:red">Menu</span></div>`,
			want: Line{{Text: "Menu"}},
		},
		{
			name: "safe link kept",
			in:   `See <a href="https://cad.onshape.com/help">help</a>`,
			want: Line{{Text: "See "}, {Text: "help", Href: "https://cad.onshape.com/help"}},
		},
		{
			name: "javascript link dropped",
			in:   `<a href="javascript:alert(1)">help</a>`,
			want: Line{{Text: "help"}},
		},
		{
			name: "markdown link",
			in:   "Read [the **guide**](https://example.com/g)",
			want: Line{
				{Text: "Read "},
				{Text: "the ", Href: "https://example.com/g"},
				{Text: "guide", Style: Bold, Href: "https://example.com/g"},
			},
		},
		{
			name: "line break",
			in:   "first<br>second",
			want: Line{{Text: "first\nsecond"}},
		},
		{
			name: "entities decoded",
			in:   "Bolts &amp; Screws &lt;M8&gt;",
			want: Line{{Text: "Bolts & Screws <M8>"}},
		},
		{
			name: "control characters removed",
			in:   "Click \x1b[31mred\x1b[0m",
			want: Line{{Text: "Click [31mred[0m"}},
		},
		{
			name: "outer whitespace trimmed",
			in:   "   <b> Insert </b>  ",
			want: Line{{Text: "Insert", Style: Bold}},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestLinePlainAndMarkdown(t *testing.T) {
	line := Parse(`Click <b>Insert</b> and see <a href="https://x.io/h">help</a> for <code>M8</code>`)

	assert.Equal(t, "Click Insert and see help for M8", line.Plain())
	assert.Equal(t, "Click **Insert** and see [help](https://x.io/h) for `M8`", line.Markdown())
}

func TestStyleHas(t *testing.T) {
	s := Bold | Code
	assert.True(t, s.Has(Bold))
	assert.True(t, s.Has(Code))
	assert.False(t, s.Has(Italic))
}

func TestStripControl(t *testing.T) {
	assert.Equal(t, "a\tb\nc", StripControl("a\tb\nc\x07\u009b"))
}

func TestEscapeMarkdown(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"M8 [buy](https://evil.example) x_len_", `M8 \[buy\]\(https://evil.example\) x\_len\_`},
		{"**Grip Length** = 12mm", `\*\*Grip Length\*\* = 12mm`},
		{"# heading", `\# heading`},
		{"a|b <c> `d` ~e~ \\", "a\\|b \\<c\\> \\`d\\` \\~e\\~ \\\\"},
		{"- item", `\- item`},
		{"12. step", `12\. step`},
		{"3) step", `3\) step`},
		{"M8 x 65.0mm", "M8 x 65.0mm"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EscapeMarkdown(tt.in), tt.in)
	}
}

func TestLineMarkdownEscapesSpanText(t *testing.T) {
	line := Line{
		{Text: "Pick [x](https://evil.example) "},
		{Text: "*not italic*", Style: Bold},
		{Text: " "},
		{Text: "a`b", Style: Code},
		{Text: " "},
		{Text: "help", Href: "https://x.io/a(b)"},
	}
	assert.Equal(t,
		"Pick \\[x\\]\\(https://evil.example\\) **\\*not italic\\*** ``a`b`` [help](https://x.io/a%28b%29)",
		line.Markdown())
}

func TestSafeURL(t *testing.T) {
	got, ok := SafeURL("https://www.mcmaster.com/")
	assert.True(t, ok)
	assert.Equal(t, "https://www.mcmaster.com/", got)

	for _, bad := range []string{"javascript:alert(1)", "/relative", "", "ftp://x.io"} {
		_, ok := SafeURL(bad)
		assert.False(t, ok, bad)
	}
}
