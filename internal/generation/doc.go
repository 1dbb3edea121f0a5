// Package generation implements the idea-generation request pipeline that sits
// between the HTTP boundary and an external AI provider.
//
// The pipeline is assembled from small pieces, leaves first:
//
//   - Config.Validate reports every problem with a generation configuration
//     without failing fast.
//   - BuildPrompt turns a user prompt, its categories and its options into the
//     single text prompt sent to the provider.
//   - Classify maps any provider or transport failure onto a fixed Kind
//     taxonomy with a retry decision and a stable user-facing message.
//   - ResilientClient executes a prompt against a Provider with a per-attempt
//     deadline and exponential backoff between retryable failures.
//   - ParseResponse extracts the generated text and metadata from the
//     provider reply.
//   - Service ties them together behind Generate.
//
// Provider transports (OpenAI, Gemini) live under internal/platform and only
// have to implement the Provider interface.
package generation
