package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/ideaforge-api/internal/api/shared"
	"github.com/phrazzld/ideaforge-api/internal/generation"
	"github.com/phrazzld/ideaforge-api/internal/service/auth"
	"github.com/phrazzld/ideaforge-api/internal/store"
)

// kindStatus maps generation failure kinds to HTTP status codes.
var kindStatus = map[generation.Kind]int{
	generation.KindConfigInvalid: http.StatusServiceUnavailable,
	generation.KindAuth:          http.StatusBadGateway,
	generation.KindRateLimit:     http.StatusTooManyRequests,
	generation.KindQuota:         http.StatusServiceUnavailable,
	generation.KindTimeout:       http.StatusGatewayTimeout,
	generation.KindNetwork:       http.StatusBadGateway,
	generation.KindModel:         http.StatusBadGateway,
	generation.KindContentPolicy: http.StatusUnprocessableEntity,
	generation.KindParse:         http.StatusBadGateway,
	generation.KindUnknown:       http.StatusInternalServerError,
}

// StatusForKind returns the HTTP status for a generation failure kind.
func StatusForKind(kind generation.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	if kind, ok := generation.KindOf(err); ok {
		return StatusForKind(kind)
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	case errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrCategoryNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrCategoryNameExists):
		return http.StatusConflict

	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, shared.ErrEmptyBody):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var pe *generation.ProviderError
	if errors.As(err, &pe) {
		return pe.Message
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid token"

	case errors.Is(err, store.ErrCategoryNotFound),
		errors.Is(err, store.ErrNotFound):
		return "Category not found"

	case errors.Is(err, store.ErrCategoryNameExists),
		errors.Is(err, store.ErrDuplicate):
		return "Category already exists"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, shared.ErrEmptyBody):
		return "Request body is required"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and safe message for err. A
// non-empty fallback replaces the generic message for unmapped errors.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if fallback != "" && status == http.StatusInternalServerError {
		if _, ok := generation.KindOf(err); !ok {
			message = fallback
		}
	}

	var opts []shared.ResponseOption
	if kind, ok := generation.KindOf(err); ok {
		opts = append(opts, shared.WithKind(string(kind)))
	}
	shared.RespondWithErrorAndLog(w, r, status, message, errorWithDetail(err), opts...)
}

// errorWithDetail swaps a ProviderError for its diagnostic detail so the
// raw provider signal reaches the (redacted) log line.
func errorWithDetail(err error) error {
	var pe *generation.ProviderError
	if errors.As(err, &pe) {
		return errors.New(pe.Detail())
	}
	return err
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	if err == nil {
		return "Validation error"
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", jsonFieldName(fe.Namespace()), getValidationTagMessage(fe.Tag()))
	}

	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return reqErr.message
	}

	return "Validation error"
}

// jsonFieldName drops the request type from a validator namespace such as
// "GenerateIdeasRequest.options.creativity_level".
func jsonFieldName(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid ID format"
	default:
		return "validation failed"
	}
}
