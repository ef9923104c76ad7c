package util

import (
	"html"
	"regexp"
	"strings"
)

// Booking notes and event descriptions may arrive as light HTML from the booking page
// editor: paragraphs, line breaks, lists and links.
var (
	breakRe     = regexp.MustCompile(`(?i)<br\s*/?>`)
	paragraphRe = regexp.MustCompile(`(?i)</?(?:p|div|h[1-6])(?:\s[^>]*)?>`)
	itemRe      = regexp.MustCompile(`(?i)<li(?:\s[^>]*)?>`)
	linkRe      = regexp.MustCompile(`(?is)<a\s[^>]*href\s*=\s*["']([^"']+)["'][^>]*>(.*?)</a\s*>`)
	anyTagRe    = regexp.MustCompile(`<[^>]*>`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
)

// NotesToText renders booking notes as plain terminal text. Links become OSC 8
// hyperlinks whose label is truncated to width (when width > 0).
func NotesToText(s string, width int) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")

	s = breakRe.ReplaceAllString(s, "\n")
	s = paragraphRe.ReplaceAllString(s, "\n\n")
	s = itemRe.ReplaceAllString(s, "\n  • ")
	s = linkRe.ReplaceAllStringFunc(s, func(match string) string {
		parts := linkRe.FindStringSubmatch(match)
		href := parts[1]
		label := strings.TrimSpace(anyTagRe.ReplaceAllString(parts[2], ""))
		if label == "" {
			label = href
		}
		return MakeHyperlink(href, TruncateText(label, width))
	})
	s = anyTagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " "), "• ") {
			lines[i] = "  " + strings.Join(strings.Fields(line), " ")
			continue
		}
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	s = blankRunRe.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(s)
}
