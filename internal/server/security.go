package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/agbru/matsteps/internal/service"
)

// SecurityConfig holds configuration for security headers.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers.
	EnableCORS bool
	// AllowedOrigins specifies allowed CORS origins. Use "*" for all origins.
	AllowedOrigins []string
	// AllowedMethods specifies allowed HTTP methods for CORS.
	AllowedMethods []string
	// ScriptOrigins are the external origins pages may load scripts and
	// fonts from. The MathJax CDN lives here.
	ScriptOrigins []string
	// MaxFieldLength is the maximum accepted length of a matrix entry.
	MaxFieldLength int
	// MaxBodyBytes caps form submissions.
	MaxBodyBytes int64
}

// DefaultSecurityConfig returns the default security configuration. The
// origin of mathJaxURL is allowed as a script source.
func DefaultSecurityConfig(mathJaxURL string) SecurityConfig {
	cfg := SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		MaxFieldLength: service.DefaultMaxFieldLength,
		MaxBodyBytes:   16 << 10,
	}
	if origin := scriptOrigin(mathJaxURL); origin != "" {
		cfg.ScriptOrigins = []string{origin}
	}
	return cfg
}

// scriptOrigin returns scheme://host of an absolute URL, or "" for relative
// or unparsable ones, which are covered by 'self'.
func scriptOrigin(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// ContentSecurityPolicy builds the policy for the shell page and the viewer.
// Both need inline styles and scripts; the viewer is framed by the shell.
func (c SecurityConfig) ContentSecurityPolicy() string {
	external := ""
	if len(c.ScriptOrigins) > 0 {
		external = " " + strings.Join(c.ScriptOrigins, " ")
	}
	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline'" + external,
		"style-src 'self' 'unsafe-inline'",
		"font-src 'self' data:" + external,
		"img-src 'self' data:",
		"frame-src 'self'",
		"frame-ancestors 'self'",
	}, "; ")
}

// SecurityMiddleware adds security headers to HTTP responses:
//   - Content Security Policy (CSP) allowing the MathJax origin
//   - X-Content-Type-Options
//   - X-Frame-Options (same-origin framing for the embedded viewer)
//   - Referrer-Policy
//   - CORS headers (if enabled)
//
// Parameters:
//   - config: The security configuration.
//   - next: The next handler in the chain.
//
// Returns:
//   - http.HandlerFunc: A new handler with security headers.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	csp := config.ContentSecurityPolicy()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "SAMEORIGIN")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Content-Security-Policy", csp)

		if config.EnableCORS {
			origin := r.Header.Get("Origin")
			allowedOrigin := ""

			for _, allowed := range config.AllowedOrigins {
				if allowed == "*" || allowed == origin {
					allowedOrigin = allowed
					break
				}
			}

			if allowedOrigin != "" {
				w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				w.Header().Set("Access-Control-Max-Age", "86400") // 24 hours
			}

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		if config.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes)
		}

		next(w, r)
	}
}
