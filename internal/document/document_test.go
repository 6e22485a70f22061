package document

import (
	"strings"
	"testing"

	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/ui"
)

func TestRender(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		palette ui.Palette
		want    []string
	}{
		{
			name:    "Dark",
			palette: ui.DarkPalette,
			want:    []string{"background-color: #0d1117;", "color: #c9d1d9;", "border: 0.5px solid #c9d1d933;"},
		},
		{
			name:    "Light",
			palette: ui.LightPalette,
			want:    []string{"background-color: #ffffff;", "color: #1f1f1f;"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc, err := Render(`<div class="steps">\[x\]</div>`, tt.palette, DefaultOptions())
			if err != nil {
				t.Fatalf("Render returned error: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(doc, w) {
					t.Errorf("document should contain %q", w)
				}
			}
			if !strings.Contains(doc, `<div class="steps">\[x\]</div>`) {
				t.Error("fragment should be embedded verbatim")
			}
			if !strings.Contains(doc, DefaultMathJaxURL) {
				t.Error("document should load MathJax")
			}
		})
	}
}

func TestRender_CustomMathJax(t *testing.T) {
	t.Parallel()
	opts := DefaultOptions()
	opts.MathJaxURL = "http://localhost:9000/mathjax/tex-mml-chtml.js"
	opts.Title = "Worksheet <1>"
	doc, err := Render("", ui.DarkPalette, opts)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(doc, opts.MathJaxURL) {
		t.Error("custom MathJax URL not used")
	}
	if !strings.Contains(doc, "Worksheet &lt;1&gt;") {
		t.Error("title should be escaped")
	}
}

func TestRender_EmptyURLFallsBack(t *testing.T) {
	t.Parallel()
	doc, err := Render("", ui.DarkPalette, Options{})
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}
	if !strings.Contains(doc, DefaultMathJaxURL) {
		t.Error("empty MathJax URL should fall back to the default")
	}
}

func TestWarningFragment(t *testing.T) {
	t.Parallel()
	dark := WarningFragment(ui.DarkPalette)
	light := WarningFragment(ui.LightPalette)
	if dark != light {
		t.Error("warning fragment should be fixed across themes")
	}
	if !strings.Contains(dark, "color: red") {
		t.Errorf("warning should be red, got %q", dark)
	}
	if !strings.Contains(dark, "All fields are required.") {
		t.Errorf("warning text missing: %q", dark)
	}
	if !strings.Contains(dark, "⚠️") {
		t.Error("warning sign missing")
	}
	if !strings.Contains(apperrors.WarningMessage, "numeric value") {
		t.Error("unexpected warning message")
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()
	doc, err := Empty(ui.LightPalette, DefaultOptions())
	if err != nil {
		t.Fatalf("Empty returned error: %v", err)
	}
	if !strings.Contains(doc, "background-color: #ffffff;") {
		t.Error("blank viewer should use the palette background")
	}
	if strings.Contains(doc, `class="steps"`) || strings.Contains(doc, `class="warning"`) {
		t.Error("blank viewer should have no content")
	}
}
