package gemini_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/ideaforge-api/internal/generation"
	"github.com/phrazzld/ideaforge-api/internal/platform/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *gemini.Provider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := gemini.NewProvider(context.Background(), gemini.Options{
		APIKey:     "AIza-test",
		BaseURL:    srv.URL + "/",
		HTTPClient: srv.Client(),
	}, discardLogger())
	require.NoError(t, err)
	return p
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func completion() generation.Completion {
	return generation.Completion{
		Model:       "gemini-2.0-flash",
		Prompt:      "Generate ideas",
		MaxTokens:   256,
		Temperature: 0.7,
	}
}

func TestNewProvider_Validation(t *testing.T) {
	t.Parallel()

	_, err := gemini.NewProvider(context.Background(), gemini.Options{}, discardLogger())
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = gemini.NewProvider(context.Background(), gemini.Options{APIKey: "k"}, nil)
	assert.Error(t, err)
}

func TestComplete_Success(t *testing.T) {
	t.Parallel()

	var body map[string]any
	var path, apiKey string

	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		apiKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, `{
			"candidates": [{
				"content": {"role": "model", "parts": [
					{"text": "planning...", "thought": true},
					{"text": "1. Solar kiosks"},
					{"text": "\n2. Rain gardens"}
				]},
				"finishReason": "STOP"
			}],
			"usageMetadata": {"promptTokenCount": 12, "candidatesTokenCount": 30, "totalTokenCount": 42},
			"modelVersion": "gemini-2.0-flash-001",
			"responseId": "resp-gem-1"
		}`)
	})

	resp, err := p.Complete(context.Background(), completion())

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "gemini-2.0-flash:generateContent"), path)
	assert.Equal(t, "AIza-test", apiKey)

	genConfig, ok := body["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 256, genConfig["maxOutputTokens"])
	assert.InDelta(t, 0.7, genConfig["temperature"], 0.0001)

	assert.Equal(t, "resp-gem-1", resp.ID)
	assert.Equal(t, "gemini-2.0-flash-001", resp.Model)
	require.Len(t, resp.Choices, 1)
	assert.Equal(t, "1. Solar kiosks\n2. Rain gardens", resp.Choices[0].Text)
	assert.Equal(t, "STOP", resp.Choices[0].FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 12, resp.Usage.PromptTokens)
	assert.Equal(t, 30, resp.Usage.CompletionTokens)
	assert.Equal(t, 42, resp.Usage.TotalTokens)
}

func TestComplete_ModelFallbackAndNoUsage(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	})

	resp, err := p.Complete(context.Background(), completion())

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.0-flash", resp.Model)
	assert.Nil(t, resp.Usage)
}

func TestComplete_SafetyBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "candidate blocked",
			body: `{"candidates":[{"content":{"parts":[]},"finishReason":"SAFETY"}]}`,
		},
		{
			name: "prompt blocked",
			body: `{"promptFeedback":{"blockReason":"SAFETY"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusOK, tt.body)
			})

			_, err := p.Complete(context.Background(), completion())

			require.Error(t, err)
			assert.Equal(t, generation.KindContentPolicy, generation.Classify(err).Kind)
		})
	}
}

func TestComplete_ErrorsClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		wantKind generation.Kind
	}{
		{
			name:     "invalid key",
			status:   http.StatusBadRequest,
			body:     `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`,
			wantKind: generation.KindAuth,
		},
		{
			name:     "unauthenticated",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"code":401,"message":"Request had invalid authentication credentials.","status":"UNAUTHENTICATED"}}`,
			wantKind: generation.KindAuth,
		},
		{
			name:     "resource exhausted",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota).","status":"RESOURCE_EXHAUSTED"}}`,
			wantKind: generation.KindRateLimit,
		},
		{
			name:     "billing",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"code":429,"message":"Enable a billing account to continue.","status":"RESOURCE_EXHAUSTED"}}`,
			wantKind: generation.KindQuota,
		},
		{
			name:     "model not found",
			status:   http.StatusNotFound,
			body:     `{"error":{"code":404,"message":"models/gemini-9 is not found for API version v1beta","status":"NOT_FOUND"}}`,
			wantKind: generation.KindModel,
		},
		{
			name:     "server error",
			status:   http.StatusInternalServerError,
			body:     `{"error":{"code":500,"message":"Internal error","status":"INTERNAL"}}`,
			wantKind: generation.KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, tt.status, tt.body)
			})

			_, err := p.Complete(context.Background(), completion())

			require.Error(t, err)
			var failure *generation.Failure
			require.ErrorAs(t, err, &failure)
			assert.Equal(t, tt.wantKind, generation.Classify(err).Kind)
		})
	}
}

func TestComplete_ConnectionRefused(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p, err := gemini.NewProvider(context.Background(), gemini.Options{APIKey: "k", BaseURL: url + "/"}, discardLogger())
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), completion())

	require.Error(t, err)
	assert.Equal(t, generation.KindNetwork, generation.Classify(err).Kind)
}

func TestName(t *testing.T) {
	t.Parallel()

	p := newTestProvider(t, func(http.ResponseWriter, *http.Request) {})
	assert.Equal(t, "gemini", p.Name())
}
