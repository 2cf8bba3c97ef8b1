package markup

import "strings"

// markdownSpecial lists the characters that start or end inline markdown
// constructs. A backslash before any ASCII punctuation renders it literally.
const markdownSpecial = "\\`*_[]()#|<>~"

// EscapeMarkdown makes s render as literal text inside a markdown document.
// Leading characters that would open a list, heading or quote are escaped
// as well.
func EscapeMarkdown(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	digits := 0
	for i, r := range s {
		atStart := i == 0
		switch {
		case strings.ContainsRune(markdownSpecial, r):
			b.WriteByte('\\')
		case atStart && (r == '-' || r == '+' || r == '='):
			b.WriteByte('\\')
		case (r == '.' || r == ')') && digits == i && digits > 0:
			// "12." or "3)" at the start would begin an ordered list.
			b.WriteByte('\\')
		}
		if r >= '0' && r <= '9' && digits == i {
			digits++
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SafeURL returns raw as an absolute http(s) URL fit for a markdown link
// target, or false when it is not one.
func SafeURL(raw string) (string, bool) {
	target := safeHref(raw)
	if target == "" {
		return "", false
	}
	return linkTarget(target), true
}

func linkTarget(href string) string {
	return strings.NewReplacer(
		"(", "%28",
		")", "%29",
		"<", "%3C",
		">", "%3E",
		" ", "%20",
	).Replace(href)
}

// CodeSpan wraps text in a backtick fence longer than any backtick run it
// contains.
func CodeSpan(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		text = " " + text + " "
	}
	return fence + text + fence
}
