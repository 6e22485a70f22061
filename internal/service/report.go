package service

import (
	"math"

	"github.com/agbru/matsteps/internal/matrix"
	"github.com/agbru/matsteps/internal/steps"
)

// Report is the JSON form of a worksheet shared by the CLI and the viewer API.
type Report struct {
	Theme  string        `json:"theme"`
	A      matrix.Matrix `json:"a"`
	B      matrix.Matrix `json:"b"`
	Result matrix.Matrix `json:"result"`
	// Terms holds the two product values of every result cell.
	Terms  [matrix.Size][matrix.Size][matrix.Size]float64 `json:"terms"`
	Steps  []steps.Step                                   `json:"steps"`
	Markup string                                         `json:"markup,omitempty"`
}

// Report builds the JSON form of w. The markup is included when withMarkup
// is set.
func (w *Worksheet) Report(withMarkup bool) Report {
	r := Report{
		Theme:  string(w.Mode),
		A:      w.Product.A,
		B:      w.Product.B,
		Result: w.Result(),
		Steps:  w.Steps,
	}
	for i, row := range w.Product.Cells {
		for j, c := range row {
			for k, t := range c.Terms {
				r.Terms[i][j][k] = t.Value()
			}
		}
	}
	if withMarkup {
		r.Markup = w.Fragment()
	}
	return r
}

// Finite reports whether every term and result entry is a finite number.
// Entries near the float64 limit can overflow to ±Inf or NaN.
func (w *Worksheet) Finite() bool {
	for _, row := range w.Product.Cells {
		for _, c := range row {
			if !finite(c.Sum) {
				return false
			}
			for _, t := range c.Terms {
				if !finite(t.Value()) {
					return false
				}
			}
		}
	}
	return true
}

func finite(x float64) bool { return !math.IsInf(x, 0) && !math.IsNaN(x) }
