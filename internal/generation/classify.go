package generation

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"
)

// Provider error codes recognised by the classifier.
const (
	CodeInvalidAPIKey     = "invalid_api_key"
	CodeInsufficientQuota = "insufficient_quota"
	CodeModelNotFound     = "model_not_found"
	CodeContentFilter     = "content_filter"
	CodeConnAborted       = "ECONNABORTED"
	CodeNotFound          = "ENOTFOUND"
	CodeConnRefused       = "ECONNREFUSED"
	NameAbortError        = "AbortError"
)

// signals is everything the classifier looks at, extracted once from an
// error chain.
type signals struct {
	status  int
	code    string
	name    string
	timeout bool
	network bool
}

type classifyRule struct {
	kind  Kind
	match func(s signals) bool
}

// classifyRules is evaluated top to bottom; the first match wins. Provider
// codes precede bare statuses because they are the more specific signal.
var classifyRules = []classifyRule{
	{KindAuth, func(s signals) bool {
		return s.status == http.StatusUnauthorized || s.code == CodeInvalidAPIKey
	}},
	{KindQuota, func(s signals) bool { return s.code == CodeInsufficientQuota }},
	{KindModel, func(s signals) bool { return s.code == CodeModelNotFound }},
	{KindContentPolicy, func(s signals) bool { return s.code == CodeContentFilter }},
	{KindRateLimit, func(s signals) bool { return s.status == http.StatusTooManyRequests }},
	{KindTimeout, func(s signals) bool { return s.timeout }},
	{KindNetwork, func(s signals) bool { return s.network }},
}

// Classify maps err onto the failure taxonomy. An error that already is a
// ProviderError is returned unchanged. Classify returns nil for a nil error.
func Classify(err error) *ProviderError {
	if err == nil {
		return nil
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe
	}

	s := extractSignals(err)
	kind := KindUnknown
	for _, rule := range classifyRules {
		if rule.match(s) {
			kind = rule.kind
			break
		}
	}

	classified := NewProviderError(kind, err)
	classified.RawStatus = s.status
	classified.RawCode = s.code
	return classified
}

func extractSignals(err error) signals {
	var s signals

	var f *Failure
	if errors.As(err, &f) {
		s.status = f.Status
		s.code = f.Code
		s.name = f.Name
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) ||
		s.name == NameAbortError ||
		s.code == CodeConnAborted {
		s.timeout = true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		s.timeout = true
	}

	var dnsErr *net.DNSError
	var opErr *net.OpError
	if errors.As(err, &dnsErr) ||
		errors.As(err, &opErr) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		s.code == CodeNotFound ||
		s.code == CodeConnRefused {
		s.network = true
	}

	return s
}
