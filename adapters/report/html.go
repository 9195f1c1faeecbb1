package report

import (
	"strings"

	"github.com/gomarkdown/markdown"
)

// HTML renders a text report as an HTML fragment: the first line becomes a
// heading and the remainder a preformatted block.
func HTML(text string) []byte {
	title, body, _ := strings.Cut(strings.TrimRight(text, "\n"), "\n")

	var md strings.Builder
	md.WriteString("## " + title + "\n\n")
	md.WriteString("```\n")
	md.WriteString(strings.Trim(body, "\n"))
	md.WriteString("\n```\n")
	return markdown.ToHTML([]byte(md.String()), nil, nil)
}
