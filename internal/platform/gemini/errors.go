package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/ideaforge-api/internal/generation"
	"google.golang.org/genai"
)

// Google RPC status names carried in genai.APIError.Status.
const (
	statusResourceExhausted = "RESOURCE_EXHAUSTED"
	statusUnauthenticated   = "UNAUTHENTICATED"
	statusPermissionDenied  = "PERMISSION_DENIED"
	statusInvalidArgument   = "INVALID_ARGUMENT"
	statusNotFound          = "NOT_FOUND"
)

// toFailure maps genai errors onto generation.Failure. The Gemini API
// reports most failures as a status name with a free-text message, so the
// error code is inferred from both.
func toFailure(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("gemini: %w", err)
	}

	failure := &generation.Failure{
		Status:  apiErr.Code,
		Message: apiErr.Message,
		Err:     err,
	}

	msg := strings.ToLower(apiErr.Message)
	switch apiErr.Status {
	case statusUnauthenticated:
		failure.Status = http.StatusUnauthorized
		failure.Code = generation.CodeInvalidAPIKey
	case statusPermissionDenied, statusInvalidArgument:
		if strings.Contains(msg, "api key") {
			failure.Code = generation.CodeInvalidAPIKey
		}
	case statusResourceExhausted:
		failure.Status = http.StatusTooManyRequests
		if strings.Contains(msg, "billing account") {
			failure.Code = generation.CodeInsufficientQuota
		}
	case statusNotFound:
		if strings.Contains(msg, "model") {
			failure.Code = generation.CodeModelNotFound
		}
	}

	return failure
}
