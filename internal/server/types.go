package server

import "github.com/agbru/matsteps/internal/service"

// StepsResponse is the body of a successful /api/steps request.
type StepsResponse struct {
	service.Report
	// Text is the plain-text rendition of the steps.
	Text string `json:"text"`
}

// ErrorResponse represents the standardized JSON response for an API error.
type ErrorResponse struct {
	// Error is the short error code or status text.
	Error string `json:"error"`
	// Message is a descriptive error message.
	Message string `json:"message,omitempty"`
	// Field names the offending matrix entry on invalid input.
	Field string `json:"field,omitempty"`
}

// HealthResponse is the body of /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Theme   string `json:"theme"`
	Outcome string `json:"outcome"`
}
