// Package document wraps worksheet fragments into the standalone HTML page
// shown by the viewer. The page loads MathJax, which typesets the \[ … \]
// formulas in the browser.
package document

import (
	"bytes"
	"html/template"

	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/ui"
)

// DefaultMathJaxURL is the MathJax 3 bundle loaded when none is configured.
const DefaultMathJaxURL = "https://cdn.jsdelivr.net/npm/mathjax@3/es5/tex-mml-chtml.js"

// Options tune the generated page.
type Options struct {
	// MathJaxURL is the script loaded to typeset formulas.
	MathJaxURL string
	// Title is the page title.
	Title string
}

// DefaultOptions returns the options used by every front end unless overridden.
func DefaultOptions() Options {
	return Options{
		MathJaxURL: DefaultMathJaxURL,
		Title:      "Matrix Multiplication",
	}
}

var pageTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script id="MathJax-script" async src="{{.MathJaxURL}}"></script>
<style>
    body {
        background-color: {{.Palette.Background}};
        color: {{.Palette.Text}};
        font-family: 'Lucida Console', monospace;
        line-height: 1.6;
        padding: 20px;
    }
    hr {
        border: 0.5px solid {{.Palette.Text}}33;
        margin: 15px 0;
    }
    .step-number {
        font-weight: bold;
    }
</style>
</head>
<body>
{{.Content}}
<script>
    (function () {
        var key = "matsteps-scroll";
        var saved = sessionStorage.getItem(key);
        if (saved !== null) { window.scrollTo(0, parseInt(saved, 10)); }
        window.addEventListener("beforeunload", function () {
            sessionStorage.setItem(key, String(window.scrollY));
        });
    })();
</script>
</body>
</html>
`))

type pageData struct {
	Title      string
	MathJaxURL string
	Palette    ui.Palette
	Content    template.HTML
}

// Render wraps fragment in a full document colored by pal. The fragment is
// trusted markup produced by this program and is inserted verbatim.
func Render(fragment string, pal ui.Palette, opts Options) (string, error) {
	if opts.MathJaxURL == "" {
		opts.MathJaxURL = DefaultMathJaxURL
	}
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Title:      opts.Title,
		MathJaxURL: opts.MathJaxURL,
		Palette:    pal,
		Content:    template.HTML(fragment),
	})
	if err != nil {
		return "", apperrors.WrapError(err, "render document")
	}
	return buf.String(), nil
}

// WarningFragment returns the fixed markup shown instead of the worksheet
// when an entry is not a number.
func WarningFragment(pal ui.Palette) string {
	return `<div class="warning" style="color: ` + template.HTMLEscapeString(pal.Warning) + `">⚠️ ` +
		template.HTMLEscapeString(apperrors.WarningMessage) + `</div>`
}

// Empty renders the blank viewer shown before the first calculation.
func Empty(pal ui.Palette, opts Options) (string, error) {
	return Render("", pal, opts)
}
