package services

import (
	"strings"

	"golang.org/x/net/html"
)

const maxPromptInputChars = 20000

var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"head":     true,
	"nav":      true,
	"footer":   true,
}

var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"tr": true, "section": true, "article": true,
}

func looksLikeHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "<html") ||
		strings.Contains(lower, "<body") ||
		strings.Contains(lower, "<div") ||
		strings.Contains(lower, "<p>") ||
		strings.Contains(lower, "<li>")
}

// CleanJobText reduces pasted HTML to its visible text and caps the length
// sent to the model. Plain text passes through unchanged apart from the cap.
func CleanJobText(s string) string {
	if looksLikeHTML(s) {
		if doc, err := html.Parse(strings.NewReader(s)); err == nil {
			var b strings.Builder
			collectText(doc, &b)
			s = collapseBlankLines(b.String())
		}
	}
	if len(s) > maxPromptInputChars {
		s = strings.ToValidUTF8(s[:maxPromptInputChars], "")
	}
	return s
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && skippedElements[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			b.WriteString(text)
			b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
	if n.Type == html.ElementNode && blockElements[n.Data] {
		b.WriteByte('\n')
	}
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
