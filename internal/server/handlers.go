package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/logging"
	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/ui"
)

// handleIndex serves the shell page with the inputs and the embedded viewer.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		s.writeErrorResponse(w, http.StatusNotFound, "No such page")
		return
	}
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	page, err := renderShell(s.session.Mode(), s.session.Fields())
	if err != nil {
		s.logger.Error("shell render failed", err)
		s.writeErrorResponse(w, http.StatusInternalServerError, "Page could not be rendered")
		return
	}
	writeHTML(w, page)
}

// handleCalculate reads the eight entries from the query or form body,
// updates the viewer and redirects back to the shell page. Invalid input
// is not an HTTP error: the viewer shows the warning instead.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if err := r.ParseForm(); err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, "Malformed form data")
		return
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	if _, err := s.session.Calculate(ctx, fieldsFrom(r.Form)); err != nil && !errors.Is(err, apperrors.ErrInvalidInput) {
		s.logger.Error("calculation aborted", err)
		s.writeErrorResponse(w, http.StatusServiceUnavailable, "Calculation was aborted")
		return
	}
	s.metrics.ObserveRender(s.session.Outcome())

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleTheme switches the viewer theme and redirects back to the shell page.
func (s *Server) handleTheme(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	mode, err := ui.ParseMode(r.FormValue("mode"))
	if err != nil {
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	s.session.SetMode(mode)
	s.metrics.ObserveThemeSwitch(mode)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleView serves the current viewer document.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	writeHTML(w, s.session.Document())
}

// handleSteps formats the entries of the query without touching the viewer.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request with 'a'..'h' and an optional 'theme'.
func (s *Server) handleSteps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := r.URL.Query()
	mode := s.cfg.Mode()
	if theme := query.Get("theme"); theme != "" {
		parsed, err := ui.ParseMode(theme)
		if err != nil {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		mode = parsed
	}

	ctx, cancel := s.requestContext(r)
	defer cancel()

	ws, err := s.service.Worksheet(ctx, fieldsFrom(query), mode)
	if err != nil {
		var inputErr apperrors.InputError
		if errors.As(err, &inputErr) {
			s.writeJSONResponse(w, http.StatusUnprocessableEntity, ErrorResponse{
				Error:   http.StatusText(http.StatusUnprocessableEntity),
				Message: inputErr.Error(),
				Field:   inputErr.Field,
			})
			return
		}
		s.writeErrorResponse(w, http.StatusServiceUnavailable, "Calculation was aborted")
		return
	}

	if !ws.Finite() {
		s.writeJSONResponse(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   http.StatusText(http.StatusUnprocessableEntity),
			Message: apperrors.ErrNotFiniteResult.Error(),
		})
		return
	}

	s.writeJSONResponse(w, http.StatusOK, StepsResponse{
		Report: ws.Report(true),
		Text:   ws.Text(),
	})
}

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload describing the viewer state.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	s.writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Theme:   string(s.session.Mode()),
		Outcome: s.session.Outcome().String(),
	})
}

// fieldsFrom collects the entries 'a'..'h'. Missing entries are empty.
func fieldsFrom(values url.Values) service.Fields {
	var fields service.Fields
	for i, name := range service.FieldNames {
		fields[i] = values.Get(name)
	}
	return fields
}

func writeHTML(w http.ResponseWriter, page string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

// writeJSONResponse encodes data before the header goes out, so an encoding
// failure still becomes a 500.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(data); err != nil {
		s.logger.Error("encoding JSON response", err, logging.Int("status", statusCode))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = fmt.Fprintf(w, "{\"error\":%q}\n", http.StatusText(http.StatusInternalServerError))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = buf.WriteTo(w)
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
