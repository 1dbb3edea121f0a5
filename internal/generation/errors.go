package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package
var (
	// ErrInvalidConfig is returned when the generation configuration fails validation
	ErrInvalidConfig = errors.New("invalid generation configuration")

	// ErrInvalidResponse is returned when the provider reply carries no usable text
	ErrInvalidResponse = errors.New("invalid response from AI provider")

	// ErrProviderUnavailable is returned when no provider is configured
	ErrProviderUnavailable = errors.New("AI provider not configured")
)

// Kind is the stable classification of a generation failure.
type Kind string

// Failure kinds. The string values are part of the HTTP contract.
const (
	KindAuth          Kind = "AUTH"
	KindRateLimit     Kind = "RATE_LIMIT"
	KindQuota         Kind = "QUOTA"
	KindTimeout       Kind = "TIMEOUT"
	KindNetwork       Kind = "NETWORK"
	KindModel         Kind = "MODEL"
	KindContentPolicy Kind = "CONTENT_POLICY"
	KindParse         Kind = "PARSE_ERROR"
	KindConfigInvalid Kind = "CONFIG_INVALID"
	KindUnknown       Kind = "UNKNOWN"
)

// Fixed user-facing messages, one per kind.
var kindMessages = map[Kind]string{
	KindAuth:          "Invalid AI provider API key. Please check your configuration.",
	KindRateLimit:     "AI provider rate limit exceeded. Please try again later.",
	KindQuota:         "AI provider quota exceeded. Please check your billing.",
	KindTimeout:       "Request timed out. Please try again.",
	KindNetwork:       "Network error. Please check your internet connection.",
	KindModel:         "Specified AI model not found. Please check your configuration.",
	KindContentPolicy: "Content violates AI provider usage policies.",
	KindParse:         "Invalid response format from AI provider.",
	KindConfigInvalid: "AI service is not configured correctly.",
	KindUnknown:       "Failed to generate ideas. Please try again.",
}

// MessageFor returns the user-facing message for kind.
func MessageFor(kind Kind) string {
	if msg, ok := kindMessages[kind]; ok {
		return msg
	}
	return kindMessages[KindUnknown]
}

// ProviderError is a classified failure. Error returns only the stable
// user message; raw provider details are kept in RawStatus, RawCode and Cause
// for logging.
type ProviderError struct {
	Kind      Kind
	Retryable bool
	RawStatus int
	RawCode   string
	Message   string
	Cause     error
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Detail returns a diagnostic description including the raw provider
// signal. It may contain provider text and must be redacted before logging.
func (e *ProviderError) Detail() string {
	detail := fmt.Sprintf("kind=%s retryable=%t", e.Kind, e.Retryable)
	if e.RawStatus != 0 {
		detail += fmt.Sprintf(" status=%d", e.RawStatus)
	}
	if e.RawCode != "" {
		detail += " code=" + e.RawCode
	}
	if e.Cause != nil {
		detail += " cause=" + e.Cause.Error()
	}
	return detail
}

// NewProviderError builds a ProviderError of the given kind with its fixed
// message. Retryability follows the kind.
func NewProviderError(kind Kind, cause error) *ProviderError {
	return &ProviderError{
		Kind:      kind,
		Retryable: retryableKinds[kind],
		Message:   MessageFor(kind),
		Cause:     cause,
	}
}

var retryableKinds = map[Kind]bool{
	KindRateLimit: true,
	KindTimeout:   true,
	KindNetwork:   true,
	KindUnknown:   true,
}

// KindOf returns the kind of err if it is, or wraps, a ProviderError.
func KindOf(err error) (Kind, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return "", false
}

// Failure describes a failed provider call in transport-neutral terms.
// Transports return it (possibly wrapped) so that Classify can see the HTTP
// status and the provider's error code.
type Failure struct {
	Status  int
	Code    string
	Name    string
	Message string
	Err     error
}

// Error implements the error interface
func (f *Failure) Error() string {
	msg := f.Message
	if msg == "" && f.Err != nil {
		msg = f.Err.Error()
	}
	switch {
	case f.Status != 0 && f.Code != "":
		return fmt.Sprintf("provider error (status %d, code %s): %s", f.Status, f.Code, msg)
	case f.Status != 0:
		return fmt.Sprintf("provider error (status %d): %s", f.Status, msg)
	case f.Code != "":
		return fmt.Sprintf("provider error (code %s): %s", f.Code, msg)
	default:
		return "provider error: " + msg
	}
}

// Unwrap returns the underlying error
func (f *Failure) Unwrap() error {
	return f.Err
}
