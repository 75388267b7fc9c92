package pulumi

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAccessToken is returned when no access token is configured.
var ErrNoAccessToken = errors.New("no access token configured: set PULUMI_ACCESS_TOKEN")

// ErrNoOrganization is returned when an org-scoped call is made without an organization.
var ErrNoOrganization = errors.New("no organization specified")

// APIError is a non-2xx response from the Pulumi Cloud API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %d - %s", e.Status, e.Body)
}

// ParseError wraps a failure to decode an API response. Preview holds a
// truncated copy of the body for the logs.
type ParseError struct {
	What    string
	Preview string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s: %v", e.What, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Diagnostic is one entry of an environment open response's diagnostics array.
type Diagnostic struct {
	Summary string `json:"summary"`
	Path    string `json:"path"`
}

// DiagnosticsError is an environment open request rejected with diagnostics.
type DiagnosticsError struct {
	Diagnostics []Diagnostic
}

func (e *DiagnosticsError) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		if d.Path != "" {
			parts = append(parts, fmt.Sprintf("%s at %s", d.Summary, d.Path))
		} else {
			parts = append(parts, d.Summary)
		}
	}
	return "environment diagnostics: " + strings.Join(parts, "; ")
}

// truncate shortens s to max bytes for log previews.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
