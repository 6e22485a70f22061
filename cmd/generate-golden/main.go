package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	Name     string       `json:"name"`
	Values   [8]float64   `json:"values"`
	Products [4]string    `json:"products"`
	Result   [2][2]string `json:"result"`
}

type target struct {
	name   string
	values [8]float64
}

func main() {
	outputDir := flag.String("out", "internal/steps/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "worksheet_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Cases cover whole numbers, two-decimal rounding of the display,
	// signs, zero operands and magnitudes past the int32 range.
	targets := []target{
		{"integers", [8]float64{1, 2, 3, 4, 5, 6, 7, 8}},
		{"decimals", [8]float64{1.5, 2, 0.5, -3, 2, 0.25, 4, 1}},
		{"thirds", [8]float64{1.0 / 3, 1, 0, 2.0 / 3, 3, 0.1, 0.2, 6}},
		{"negatives", [8]float64{-1, 0, 0, -1, -4, 2.5, -7, 9}},
		{"zeros", [8]float64{0, 0, 0, 0, 1, 2, 3, 4}},
		{"large", [8]float64{1e6, 250000, -3, 7, 1e6, 2, 4, 0.5}},
		{"rounding", [8]float64{0.005, 1.005, 2.675, 1, 1, 1, 1, 1}},
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, tc := range targets {
		data = append(data, oracle(tc))
		fmt.Printf("Generated %s\n", tc.name)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// oracle computes A×B with math/big at float64 precision, rounding after
// each product and after the sum, and formats every number on its own.
func oracle(tc target) GoldenData {
	v := tc.values
	a := [2][2]float64{{v[0], v[1]}, {v[2], v[3]}}
	b := [2][2]float64{{v[4], v[5]}, {v[6], v[7]}}

	out := GoldenData{Name: tc.name, Values: v}
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			left := mul(a[i][0], b[0][j])
			right := mul(a[i][1], b[1][j])
			sum := newFloat().Add(left, right)

			out.Products[i*2+j] = fmt.Sprintf("%s×%s + %s×%s",
				format(big.NewFloat(a[i][0])), format(big.NewFloat(b[0][j])),
				format(big.NewFloat(a[i][1])), format(big.NewFloat(b[1][j])))
			out.Result[i][j] = format(sum)
		}
	}
	return out
}

func newFloat() *big.Float {
	return new(big.Float).SetPrec(53).SetMode(big.ToNearestEven)
}

func mul(x, y float64) *big.Float {
	return newFloat().Mul(big.NewFloat(x), big.NewFloat(y))
}

// format prints whole numbers without decimals and everything else with
// exactly two.
func format(f *big.Float) string {
	if f.Sign() == 0 {
		return "0"
	}
	if f.IsInt() {
		return f.Text('f', 0)
	}
	return f.Text('f', 2)
}
