package steps

import (
	"html"
	"strings"
)

// Markup renders steps into the HTML fragment embedded in the viewer
// document. Each expression becomes a display-math block \[ … \] which
// MathJax typesets client side. The final step is rendered without a title.
func Markup(steps []Step) string {
	var sb strings.Builder
	sb.WriteString("<div class=\"steps\">\n")
	for _, s := range steps {
		if s.Final {
			sb.WriteString("  <div class=\"final-result\">\n")
		} else {
			sb.WriteString("  <div class=\"step\">\n")
			sb.WriteString("    <div class=\"step-number\">")
			sb.WriteString(html.EscapeString(s.Heading()))
			sb.WriteString("</div>\n")
		}
		for _, e := range s.Expressions {
			sb.WriteString("    \\[")
			sb.WriteString(html.EscapeString(e.TeX))
			sb.WriteString("\\]\n")
		}
		sb.WriteString("  </div>\n")
	}
	sb.WriteString("</div>\n")
	return sb.String()
}

// PlainText renders steps as indented text, one heading per step.
func PlainText(steps []Step) string {
	var sb strings.Builder
	for i, s := range steps {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(s.Heading())
		sb.WriteString("\n")
		for _, e := range s.Expressions {
			sb.WriteString("  ")
			sb.WriteString(e.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
