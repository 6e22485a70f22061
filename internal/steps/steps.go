// Package steps turns a 2×2 multiplication into the worked example shown to
// the user: an ordered list of labeled steps, each holding formula markup
// for the MathJax viewer and a plain rendition for terminals.
//
// Generation is pure. The palette only changes the color commands inside the
// markup; the numbers and the plain text are the same for every theme.
package steps

import (
	"fmt"
	"strings"

	"github.com/agbru/matsteps/internal/matrix"
	"github.com/agbru/matsteps/internal/ui"
)

// Count is the number of steps in a worksheet.
const Count = 6

// Step titles, in display order.
const (
	TitleDefine   = "Define Matrices"
	TitleMultiply = "Multiply Matrices"
	TitleExpand   = "Expand Multiplication"
	TitleProducts = "Calculate Products"
	TitleSums     = "Sum Results"
	TitleResult   = "Final Result"
)

// Step is one labeled stage of the worked example.
type Step struct {
	Number      int          `json:"number"`
	Title       string       `json:"title"`
	Final       bool         `json:"final,omitempty"`
	Expressions []Expression `json:"expressions"`
}

// Heading returns the label shown above the step, e.g. "Step 2: Multiply Matrices".
func (s Step) Heading() string {
	if s.Final {
		return s.Title
	}
	return fmt.Sprintf("Step %d: %s", s.Number, s.Title)
}

// Expression is a single displayed formula.
type Expression struct {
	// TeX is the colored formula markup, without display-math delimiters.
	TeX string `json:"tex"`
	// Text is the uncolored plain-text rendition.
	Text string `json:"text"`
}

// Generate builds the six steps for prod using the colors of pal.
func Generate(prod matrix.Product, pal ui.Palette) []Step {
	a := formatAll(prod.A.Entries())
	b := formatAll(prod.B.Entries())
	terms := termStrings(prod)
	sums := formatAll(prod.Result().Entries())

	expanded := [4]string{}
	for i, t := range terms {
		expanded[i] = "(" + t + ")"
	}

	return []Step{
		{
			Number: 1,
			Title:  TitleDefine,
			Expressions: []Expression{
				{
					TeX:  header(pal.Header, "Matrix A = ") + color(pal.Matrix) + vmatrix(a),
					Text: "Matrix A = " + grid(a),
				},
				{
					TeX:  header(pal.Header, "Matrix B = ") + color(pal.Matrix) + vmatrix(b),
					Text: "Matrix B = " + grid(b),
				},
			},
		},
		{
			Number: 2,
			Title:  TitleMultiply,
			Expressions: []Expression{{
				TeX: header(pal.Header, "A × B = ") + color(pal.Matrix) +
					`\left( ` + vmatrix(a) + ` \times ` + vmatrix(b) + ` \right)`,
				Text: "A × B = " + grid(a) + " × " + grid(b),
			}},
		},
		{
			Number: 3,
			Title:  TitleExpand,
			Expressions: []Expression{{
				TeX:  header(pal.Calculation, "A × B = ") + vmatrix(expanded),
				Text: "A × B = " + grid(expanded),
			}},
		},
		{
			Number: 4,
			Title:  TitleProducts,
			Expressions: []Expression{{
				TeX:  header(pal.Calculation, "Calculate Products:") + vmatrix(terms),
				Text: "Calculate Products: " + grid(terms),
			}},
		},
		{
			Number: 5,
			Title:  TitleSums,
			Expressions: []Expression{{
				TeX:  header(pal.Calculation, "Sum Results:") + vmatrix(sums),
				Text: "Sum Results: " + grid(sums),
			}},
		},
		{
			Number: 6,
			Title:  TitleResult,
			Final:  true,
			Expressions: []Expression{{
				TeX:  header(pal.Final, "A × B = ") + vmatrix(sums),
				Text: "A × B = " + grid(sums),
			}},
		},
	}
}

// termStrings returns "x×y + z×w" for every cell, row-major.
func termStrings(prod matrix.Product) [4]string {
	var out [4]string
	for i := range prod.Cells {
		for j := range prod.Cells[i] {
			t := prod.Cells[i][j].Terms
			out[i*matrix.Size+j] = term(t[0]) + " + " + term(t[1])
		}
	}
	return out
}

func term(t matrix.Term) string {
	return FormatNumber(t.Left) + "×" + FormatNumber(t.Right)
}

func color(c string) string {
	return `\color{` + c + `}`
}

func header(c, label string) string {
	return `\large` + color(c) + `\text{` + label + `}`
}

func vmatrix(v [4]string) string {
	return `\begin{vmatrix} ` + v[0] + ` & ` + v[1] + ` \\ ` + v[2] + ` & ` + v[3] + ` \end{vmatrix}`
}

func grid(v [4]string) string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(v[0] + ", " + v[1])
	sb.WriteString("; ")
	sb.WriteString(v[2] + ", " + v[3])
	sb.WriteString("]")
	return sb.String()
}
