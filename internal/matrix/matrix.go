// Package matrix holds the 2×2 arithmetic behind the worksheet: the input
// matrices, the per-cell product terms and the result.
package matrix

// Size is the fixed dimension of every matrix in this package.
const Size = 2

// Matrix is a 2×2 grid stored row-major.
type Matrix [Size][Size]float64

// FromRowMajor builds a matrix from four entries read left to right, top to bottom.
func FromRowMajor(v0, v1, v2, v3 float64) Matrix {
	return Matrix{{v0, v1}, {v2, v3}}
}

// Row returns row i.
func (m Matrix) Row(i int) [Size]float64 { return m[i] }

// Col returns column j.
func (m Matrix) Col(j int) [Size]float64 { return [Size]float64{m[0][j], m[1][j]} }

// Entries returns the four entries in row-major order.
func (m Matrix) Entries() [Size * Size]float64 {
	return [Size * Size]float64{m[0][0], m[0][1], m[1][0], m[1][1]}
}

// Pair is the operand couple A and B of one multiplication.
type Pair struct {
	A, B Matrix
}

// PairFromValues maps the eight entries a..h onto A = [[a,b],[c,d]] and
// B = [[e,f],[g,h]]. The columns of B are therefore (e,g) and (f,h).
func PairFromValues(v [2 * Size * Size]float64) Pair {
	return Pair{
		A: FromRowMajor(v[0], v[1], v[2], v[3]),
		B: FromRowMajor(v[4], v[5], v[6], v[7]),
	}
}

// Term is one product of a row entry of A with a column entry of B.
type Term struct {
	Left, Right float64
}

// Value returns Left*Right at full precision. The conversion keeps the
// product from being fused into the following addition.
func (t Term) Value() float64 { return float64(t.Left * t.Right) }

// Cell is one entry of the result along with the terms that produced it.
type Cell struct {
	Terms [Size]Term
	Sum   float64
}

// Product is a completed multiplication. It keeps the operands and every
// intermediate term so the worksheet can be re-rendered without recomputing.
type Product struct {
	Pair
	Cells [Size][Size]Cell
}

// Multiply computes A×B, recording the two terms of every cell:
//
//	C[i][j] = A[i][0]*B[0][j] + A[i][1]*B[1][j]
func Multiply(p Pair) Product {
	prod := Product{Pair: p}
	for i := 0; i < Size; i++ {
		row := p.A.Row(i)
		for j := 0; j < Size; j++ {
			col := p.B.Col(j)
			var cell Cell
			for k := 0; k < Size; k++ {
				cell.Terms[k] = Term{Left: row[k], Right: col[k]}
				cell.Sum += cell.Terms[k].Value()
			}
			prod.Cells[i][j] = cell
		}
	}
	return prod
}

// Result returns the product matrix.
func (p Product) Result() Matrix {
	var m Matrix
	for i := range p.Cells {
		for j := range p.Cells[i] {
			m[i][j] = p.Cells[i][j].Sum
		}
	}
	return m
}
