// Package markup turns the rich text carried by navigation steps into a small
// set of styled spans. Only an allow-listed subset of HTML and inline
// markdown survives; everything else is reduced to its text.
package markup

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Style is a bit set of inline emphasis.
type Style uint8

const (
	Bold Style = 1 << iota
	Italic
	Code
)

func (s Style) Has(flag Style) bool {
	return s&flag != 0
}

// Span is a run of text sharing one style and, optionally, a link target.
type Span struct {
	Text  string
	Style Style
	Href  string
}

// Line is the parsed form of one navigation step.
type Line []Span

const maxDepth = 50

// Parse converts one step into spans. It never fails: input the HTML parser
// rejects is treated as plain text.
func Parse(raw string) Line {
	nodes, err := html.ParseFragment(strings.NewReader(raw), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return normalize(parseInline(raw, 0, ""))
	}

	var spans []Span
	for _, n := range nodes {
		spans = walk(n, 0, "", spans, 0)
	}
	return normalize(spans)
}

func walk(n *html.Node, style Style, href string, out []Span, depth int) []Span {
	if depth > maxDepth {
		return out
	}

	switch n.Type {
	case html.TextNode:
		return append(out, parseInline(n.Data, style, href)...)
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Iframe, atom.Noscript, atom.Template, atom.Object, atom.Embed:
			return out
		case atom.Br:
			return append(out, Span{Text: "\n", Style: style, Href: href})
		case atom.B, atom.Strong:
			style |= Bold
		case atom.I, atom.Em:
			style |= Italic
		case atom.Code, atom.Kbd:
			style |= Code
		case atom.A:
			if target := safeHref(attr(n, "href")); target != "" {
				href = target
			}
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = walk(c, style, href, out, depth+1)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// safeHref keeps absolute http(s) links only.
func safeHref(raw string) string {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ""
	}
	if parsed.Host == "" {
		return ""
	}
	return parsed.String()
}

// normalize merges neighbouring spans with identical formatting, drops empty
// ones and trims the outer whitespace of the line.
func normalize(spans []Span) Line {
	var line Line
	for _, s := range spans {
		s.Text = StripControl(s.Text)
		if s.Text == "" {
			continue
		}
		if n := len(line); n > 0 && line[n-1].Style == s.Style && line[n-1].Href == s.Href {
			line[n-1].Text += s.Text
			continue
		}
		line = append(line, s)
	}

	for len(line) > 0 {
		line[0].Text = strings.TrimLeft(line[0].Text, " \t\r\n")
		if line[0].Text != "" {
			break
		}
		line = line[1:]
	}
	for len(line) > 0 {
		last := len(line) - 1
		line[last].Text = strings.TrimRight(line[last].Text, " \t\r\n")
		if line[last].Text != "" {
			break
		}
		line = line[:last]
	}
	return line
}

// Plain returns the text of the line without formatting.
func (l Line) Plain() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Markdown renders the line back to inline markdown. Span text is escaped,
// so only the parsed styles and links carry markup.
func (l Line) Markdown() string {
	var b strings.Builder
	for _, s := range l {
		var text string
		if s.Style.Has(Code) {
			text = CodeSpan(s.Text)
		} else {
			text = EscapeMarkdown(s.Text)
		}
		if s.Style.Has(Italic) {
			text = "*" + text + "*"
		}
		if s.Style.Has(Bold) {
			text = "**" + text + "**"
		}
		if s.Href != "" {
			text = "[" + text + "](" + linkTarget(s.Href) + ")"
		}
		b.WriteString(text)
	}
	return b.String()
}

// StripControl removes terminal control characters, keeping newlines and
// tabs, so text from the service cannot drive the terminal.
func StripControl(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case r < 0x20, r == 0x7f, r >= 0x80 && r <= 0x9f:
			return -1
		}
		return r
	}, s)
}
