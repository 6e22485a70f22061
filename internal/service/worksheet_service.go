package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/matrix"
	"github.com/agbru/matsteps/internal/steps"
	"github.com/agbru/matsteps/internal/ui"
)

// FieldCount is the number of entries of one multiplication.
const FieldCount = 8

// DefaultMaxFieldLength bounds the raw text accepted for a single entry.
const DefaultMaxFieldLength = 64

// FieldNames are the entry names, row-major for A then row-major for B.
var FieldNames = [FieldCount]string{"a", "b", "c", "d", "e", "f", "g", "h"}

var (
	// ErrFieldTooLong is the cause of an InputError for oversized entries.
	ErrFieldTooLong = errors.New("field exceeds maximum length")
	// ErrNotFinite is the cause of an InputError for NaN or infinite entries.
	ErrNotFinite = errors.New("value is not finite")
)

// Fields holds the raw text of the eight entries.
type Fields [FieldCount]string

// Worksheet is a formatted multiplication: the computed product and the
// steps rendered with the palette of Mode.
type Worksheet struct {
	Mode    ui.Mode
	Product matrix.Product
	Steps   []steps.Step
}

// Result returns the product matrix.
func (w *Worksheet) Result() matrix.Matrix { return w.Product.Result() }

// Fragment returns the HTML markup of the steps.
func (w *Worksheet) Fragment() string { return steps.Markup(w.Steps) }

// Text returns the plain-text rendition of the steps.
func (w *Worksheet) Text() string { return steps.PlainText(w.Steps) }

// Service defines the interface for worksheet services.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Worksheet parses fields, multiplies and formats the steps.
	// It returns an InputError when any field is not a finite number.
	Worksheet(ctx context.Context, fields Fields, mode ui.Mode) (*Worksheet, error)
	// Restyle formats an already computed product for another mode.
	Restyle(prod matrix.Product, mode ui.Mode) *Worksheet
}

// WorksheetService parses raw entries and drives the step formatter.
// Implements the Service interface.
type WorksheetService struct {
	maxFieldLen int
}

var _ Service = (*WorksheetService)(nil)

// NewWorksheetService creates a new instance of WorksheetService.
//
// Parameters:
//   - maxFieldLen: The maximum raw length of one entry (0 for no limit).
func NewWorksheetService(maxFieldLen int) *WorksheetService {
	return &WorksheetService{maxFieldLen: maxFieldLen}
}

// Worksheet implements Service.
func (s *WorksheetService) Worksheet(ctx context.Context, fields Fields, mode ui.Mode) (*Worksheet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pair, err := s.Parse(fields)
	if err != nil {
		return nil, err
	}
	return s.Restyle(matrix.Multiply(pair), mode), nil
}

// Restyle implements Service. The arithmetic in prod is reused as is.
func (s *WorksheetService) Restyle(prod matrix.Product, mode ui.Mode) *Worksheet {
	return &Worksheet{
		Mode:    mode,
		Product: prod,
		Steps:   steps.Generate(prod, ui.PaletteFor(mode)),
	}
}

// Parse converts the raw entries into an operand pair. Surrounding white
// space is ignored. The first invalid entry is reported as an InputError.
func (s *WorksheetService) Parse(fields Fields) (matrix.Pair, error) {
	var values [FieldCount]float64
	for i, raw := range fields {
		name := FieldNames[i]
		if s.maxFieldLen > 0 && len(raw) > s.maxFieldLen {
			return matrix.Pair{}, apperrors.NewInputError(name, raw[:s.maxFieldLen], ErrFieldTooLong)
		}
		v, err := parseEntry(raw)
		if err != nil {
			return matrix.Pair{}, apperrors.NewInputError(name, strings.TrimSpace(raw), err)
		}
		values[i] = v
	}
	return matrix.PairFromValues(values), nil
}

// ParseInputs parses fields with the default length limit.
func ParseInputs(fields Fields) (matrix.Pair, error) {
	return NewWorksheetService(DefaultMaxFieldLength).Parse(fields)
}

func parseEntry(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// FieldsFromSlice copies exactly FieldCount values into Fields.
func FieldsFromSlice(values []string) (Fields, error) {
	var f Fields
	if len(values) != FieldCount {
		return f, apperrors.NewConfigError("expected %d matrix entries (a b c d e f g h), got %d", FieldCount, len(values))
	}
	copy(f[:], values)
	return f, nil
}
