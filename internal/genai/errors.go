package genai

import "fmt"

// ConfigError indicates the adapter cannot run with the current settings,
// e.g. no API key configured. It is raised before any network call so the
// presentation layer can show an actionable setup prompt.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "generation service not configured: " + e.Reason
}

// TransportError indicates the request to the generation service failed at
// the network or auth level. These are surfaced to the caller with the
// underlying message and never retried automatically.
type TransportError struct {
	StatusCode int // 0 when the request never reached the service
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("generation request failed (status %d): %s", e.StatusCode, e.Message)
	}
	return "generation request failed: " + e.Message
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
