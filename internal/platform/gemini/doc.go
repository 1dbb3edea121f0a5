// Package gemini provides an implementation of the generation.Provider
// interface backed by Google's Gemini API.
//
// This package is an infrastructure adapter. It translates a transport-neutral
// generation.Completion into a genai GenerateContent call and maps the reply
// back into a generation.ProviderResponse, without exposing genai types to the
// rest of the application.
//
// Key components:
//
// 1. Provider:
//   - Implements the generation.Provider interface
//   - Sends a single GenerateContent request per call
//   - Skips "thought" parts when assembling the reply text
//
// 2. Error Mapping:
//   - Converts genai.APIError values into generation.Failure
//   - Maps Google status names (RESOURCE_EXHAUSTED, NOT_FOUND, ...) onto the
//     status codes and error codes the classifier understands
//   - Reports safety blocks as content filter failures
//
// Retries, per-attempt timeouts and classification are the responsibility of
// generation.ResilientClient; this package performs exactly one request.
package gemini
