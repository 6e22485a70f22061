package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agbru/matsteps/internal/config"
	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/service"
)

// OutputConfig holds configuration for worksheet output.
type OutputConfig struct {
	// Format is one of config.FormatText, config.FormatHTML, config.FormatJSON.
	Format string
	// OutputFile is the path to save the HTML document (empty for no file output).
	OutputFile string
	// Quiet mode prints only the result matrix.
	Quiet bool
}

// WriteDocumentToFile writes a rendered viewer document to path, creating
// parent directories as needed.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteDocumentToFile(path, doc string) error {
	if path == "" {
		return nil
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return nil
}

// WriteJSON encodes the worksheet report as indented JSON. Nothing is
// written when a term or result entry overflowed.
func WriteJSON(out io.Writer, ws *service.Worksheet) error {
	if !ws.Finite() {
		return apperrors.ErrNotFiniteResult
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(ws.Report(false)); err != nil {
		return err
	}
	_, err := buf.WriteTo(out)
	return err
}

// DisplayQuietResult outputs only the result matrix, suitable for scripting.
func DisplayQuietResult(out io.Writer, ws *service.Worksheet) {
	fmt.Fprintln(out, FormatMatrix(ws.Result()))
}

// DisplayWorksheetWithConfig displays a worksheet with the given output
// configuration. doc is the full viewer document for ws; it is printed in
// HTML format and saved when an output file is set.
//
// Returns:
//   - error: An error if encoding or file output fails.
func DisplayWorksheetWithConfig(out io.Writer, ws *service.Worksheet, doc string, cfg OutputConfig) error {
	switch {
	case cfg.Quiet:
		DisplayQuietResult(out, ws)
	case cfg.Format == config.FormatJSON:
		if err := WriteJSON(out, ws); err != nil {
			return fmt.Errorf("failed to encode worksheet: %w", err)
		}
	case cfg.Format == config.FormatHTML:
		fmt.Fprint(out, doc)
	default:
		DisplayWorksheet(out, ws.Steps)
	}

	if cfg.OutputFile != "" {
		if err := WriteDocumentToFile(cfg.OutputFile, doc); err != nil {
			return err
		}
		if !cfg.Quiet && cfg.Format == config.FormatText {
			fmt.Fprintf(out, "\n%s✓ Document saved to: %s%s%s\n",
				ColorGreen(), ColorCyan(), cfg.OutputFile, ColorReset())
		}
	}
	return nil
}
