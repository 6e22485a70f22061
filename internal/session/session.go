// Package session holds the state of a presentation shell: the active theme,
// the entries last submitted and the outcome last rendered. Theme switches
// re-render that outcome with the new palette and never recompute it.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/agbru/matsteps/internal/document"
	apperrors "github.com/agbru/matsteps/internal/errors"
	"github.com/agbru/matsteps/internal/logging"
	"github.com/agbru/matsteps/internal/service"
	"github.com/agbru/matsteps/internal/ui"
)

// Outcome describes what the viewer currently shows.
type Outcome int

const (
	// OutcomeEmpty is the blank viewer before the first calculation.
	OutcomeEmpty Outcome = iota
	// OutcomeWorksheet is a successful calculation.
	OutcomeWorksheet
	// OutcomeWarning is the invalid input warning.
	OutcomeWarning
)

// String returns the outcome name used in logs and metrics.
func (o Outcome) String() string {
	switch o {
	case OutcomeWorksheet:
		return "worksheet"
	case OutcomeWarning:
		return "warning"
	default:
		return "empty"
	}
}

// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	svc     service.Service
	opts    document.Options
	logger  logging.Logger
	mode    ui.Mode
	fields  service.Fields
	outcome Outcome
	last    *service.Worksheet
	doc     string
}

// Option configures a Session.
type Option func(*Session)

// WithService replaces the default worksheet service.
func WithService(svc service.Service) Option {
	return func(s *Session) {
		if svc != nil {
			s.svc = svc
		}
	}
}

// WithDocumentOptions sets the options used to wrap fragments.
func WithDocumentOptions(opts document.Options) Option {
	return func(s *Session) { s.opts = opts }
}

// WithLogger sets the logger used for render events.
func WithLogger(logger logging.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session showing the blank viewer in mode.
func New(mode ui.Mode, opts ...Option) *Session {
	s := &Session{
		svc:    service.NewWorksheetService(service.DefaultMaxFieldLength),
		opts:   document.DefaultOptions(),
		logger: logging.Nop(),
		mode:   mode,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.doc = s.render()
	return s
}

// Calculate parses fields, formats the steps and makes the result the
// current outcome. On invalid input the warning replaces the whole
// worksheet and the InputError is returned alongside the document.
func (s *Session) Calculate(ctx context.Context, fields service.Fields) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fields = fields
	ws, err := s.svc.Worksheet(ctx, fields, s.mode)
	switch {
	case err == nil:
		s.outcome, s.last = OutcomeWorksheet, ws
	case errors.Is(err, apperrors.ErrInvalidInput):
		s.outcome, s.last = OutcomeWarning, nil
		s.logger.Debug("invalid input", logging.String("error", err.Error()))
	default:
		return s.doc, err
	}
	s.doc = s.render()
	s.logger.Debug("rendered", logging.String("outcome", s.outcome.String()), logging.String("theme", string(s.mode)))
	return s.doc, err
}

// SetMode switches the theme and re-renders the current outcome.
func (s *Session) SetMode(mode ui.Mode) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = mode
	if s.last != nil {
		s.last = s.svc.Restyle(s.last.Product, mode)
	}
	s.doc = s.render()
	s.logger.Debug("theme switched", logging.String("theme", string(mode)), logging.String("outcome", s.outcome.String()))
	return s.doc
}

// Document returns the current viewer document.
func (s *Session) Document() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Mode returns the active theme.
func (s *Session) Mode() ui.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Fields returns the entries last submitted.
func (s *Session) Fields() service.Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

// Outcome returns what the viewer currently shows.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Last returns the current worksheet, or nil unless the outcome is
// OutcomeWorksheet.
func (s *Session) Last() *service.Worksheet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// render must be called with mu held.
func (s *Session) render() string {
	pal := ui.PaletteFor(s.mode)
	var (
		doc string
		err error
	)
	switch s.outcome {
	case OutcomeWorksheet:
		doc, err = document.Render(s.last.Fragment(), pal, s.opts)
	case OutcomeWarning:
		doc, err = document.Render(document.WarningFragment(pal), pal, s.opts)
	default:
		doc, err = document.Empty(pal, s.opts)
	}
	if err != nil {
		s.logger.Error("document render failed", err)
		return s.doc
	}
	return doc
}
