package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/agbru/matsteps/internal/config"
	"github.com/agbru/matsteps/internal/document"
	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/ui"
)

// DocumentOptions builds the viewer document options from the configuration.
func DocumentOptions(cfg config.AppConfig) document.Options {
	opts := document.DefaultOptions()
	if cfg.MathJaxURL != "" {
		opts.MathJaxURL = cfg.MathJaxURL
	}
	return opts
}

// RunOnce formats the worksheet for the positional values of cfg and writes
// it to out. An InputError is returned untouched so the caller can print the
// warning and choose the exit code. HTML output and the document file then
// carry the warning in place of the worksheet.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - cfg: The application configuration.
//   - svc: The worksheet service.
//   - out: The writer for standard output.
func RunOnce(ctx context.Context, cfg config.AppConfig, svc service.Service, out io.Writer) error {
	fields, err := cfg.Fields()
	if err != nil {
		return err
	}
	mode := cfg.Mode()
	ws, err := svc.Worksheet(ctx, fields, mode)
	if errors.Is(err, apperrors.ErrInvalidInput) {
		if werr := writeWarningDocument(cfg, out); werr != nil {
			return werr
		}
		return err
	}
	if err != nil {
		return err
	}

	doc, err := document.Render(ws.Fragment(), ui.PaletteFor(mode), DocumentOptions(cfg))
	if err != nil {
		return err
	}

	if !cfg.Quiet && cfg.Format == config.FormatText {
		PrintExecutionConfig(cfg, out)
	}
	return DisplayWorksheetWithConfig(out, ws, doc, OutputConfig{
		Format:     cfg.Format,
		OutputFile: cfg.OutputFile,
		Quiet:      cfg.Quiet,
	})
}

// writeWarningDocument renders the warning viewer for invalid input. It is
// printed in HTML format and saved when an output file is set.
func writeWarningDocument(cfg config.AppConfig, out io.Writer) error {
	if cfg.Format != config.FormatHTML && cfg.OutputFile == "" {
		return nil
	}
	pal := ui.PaletteFor(cfg.Mode())
	doc, err := document.Render(document.WarningFragment(pal), pal, DocumentOptions(cfg))
	if err != nil {
		return err
	}
	if cfg.Format == config.FormatHTML && !cfg.Quiet {
		fmt.Fprint(out, doc)
	}
	return WriteDocumentToFile(cfg.OutputFile, doc)
}

// PrintExecutionConfig displays the matrices being multiplied and the theme.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	writeOut(out, "--- Matrix Multiplication ---\n")
	writeOut(out, "Entries: %s%v%s, theme %s%s%s.\n\n",
		ColorMagenta(), cfg.Values, ColorReset(), ColorYellow(), cfg.Mode(), ColorReset())
}

// writeOut writes a formatted string to the output writer.
func writeOut(out io.Writer, format string, a ...any) {
	fmt.Fprintf(out, format, a...)
}
