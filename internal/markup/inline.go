package markup

import "regexp"

// Alternatives are tried in order at each position: code first so its
// content is never reinterpreted, then links, bold, italic.
var inlinePattern = regexp.MustCompile("`([^`]+)`" +
	`|\[([^\]]+)\]\(([^)\s]+)\)` +
	`|\*\*([^*]+)\*\*` +
	`|\*([^*\s][^*]*)\*` +
	`|\b_([^_]+)_\b`)

// parseInline applies inline markdown to text that came out of a text node.
func parseInline(text string, style Style, href string) []Span {
	matches := inlinePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return []Span{{Text: text, Style: style, Href: href}}
	}

	var spans []Span
	last := 0
	for _, m := range matches {
		if m[0] > last {
			spans = append(spans, Span{Text: text[last:m[0]], Style: style, Href: href})
		}
		switch {
		case m[2] >= 0:
			spans = append(spans, Span{Text: text[m[2]:m[3]], Style: style | Code, Href: href})
		case m[4] >= 0:
			target := href
			if safe := safeHref(text[m[6]:m[7]]); safe != "" {
				target = safe
			}
			spans = append(spans, parseInline(text[m[4]:m[5]], style, target)...)
		case m[8] >= 0:
			spans = append(spans, parseInline(text[m[8]:m[9]], style|Bold, href)...)
		case m[10] >= 0:
			spans = append(spans, parseInline(text[m[10]:m[11]], style|Italic, href)...)
		case m[12] >= 0:
			spans = append(spans, parseInline(text[m[12]:m[13]], style|Italic, href)...)
		}
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:], Style: style, Href: href})
	}
	return spans
}
