package generation_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"

	"github.com/phrazzld/ideaforge-api/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		err           error
		wantKind      generation.Kind
		wantRetryable bool
	}{
		{
			name:     "status 401",
			err:      &generation.Failure{Status: 401, Message: "bad key"},
			wantKind: generation.KindAuth,
		},
		{
			name:     "invalid api key code",
			err:      &generation.Failure{Status: 400, Code: "invalid_api_key"},
			wantKind: generation.KindAuth,
		},
		{
			name:          "status 429",
			err:           &generation.Failure{Status: 429, Code: "rate_limit_exceeded"},
			wantKind:      generation.KindRateLimit,
			wantRetryable: true,
		},
		{
			name:     "quota code wins over 429",
			err:      &generation.Failure{Status: 429, Code: "insufficient_quota"},
			wantKind: generation.KindQuota,
		},
		{
			name:     "model not found",
			err:      &generation.Failure{Status: 404, Code: "model_not_found"},
			wantKind: generation.KindModel,
		},
		{
			name:     "content filter",
			err:      &generation.Failure{Status: 400, Code: "content_filter"},
			wantKind: generation.KindContentPolicy,
		},
		{
			name:          "deadline exceeded",
			err:           fmt.Errorf("post: %w", context.DeadlineExceeded),
			wantKind:      generation.KindTimeout,
			wantRetryable: true,
		},
		{
			name:          "canceled",
			err:           context.Canceled,
			wantKind:      generation.KindTimeout,
			wantRetryable: true,
		},
		{
			name:          "abort error name",
			err:           &generation.Failure{Name: "AbortError"},
			wantKind:      generation.KindTimeout,
			wantRetryable: true,
		},
		{
			name:          "connection aborted code",
			err:           &generation.Failure{Code: "ECONNABORTED"},
			wantKind:      generation.KindTimeout,
			wantRetryable: true,
		},
		{
			name:          "net timeout",
			err:           &net.OpError{Op: "read", Net: "tcp", Err: os.ErrDeadlineExceeded},
			wantKind:      generation.KindTimeout,
			wantRetryable: true,
		},
		{
			name:          "dns failure",
			err:           &net.DNSError{Err: "no such host", Name: "api.example.test", IsNotFound: true},
			wantKind:      generation.KindNetwork,
			wantRetryable: true,
		},
		{
			name:          "connection refused",
			err:           &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			wantKind:      generation.KindNetwork,
			wantRetryable: true,
		},
		{
			name:          "bare ECONNREFUSED",
			err:           fmt.Errorf("dial: %w", syscall.ECONNREFUSED),
			wantKind:      generation.KindNetwork,
			wantRetryable: true,
		},
		{
			name:          "not found code",
			err:           &generation.Failure{Code: "ENOTFOUND"},
			wantKind:      generation.KindNetwork,
			wantRetryable: true,
		},
		{
			name:          "server error",
			err:           &generation.Failure{Status: 500, Message: "internal"},
			wantKind:      generation.KindUnknown,
			wantRetryable: true,
		},
		{
			name:          "plain error",
			err:           errors.New("something odd"),
			wantKind:      generation.KindUnknown,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := generation.Classify(tt.err)

			require.NotNil(t, got)
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantRetryable, got.Retryable)
			assert.Equal(t, generation.MessageFor(tt.wantKind), got.Error())
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestClassify_IsPure(t *testing.T) {
	t.Parallel()

	inputs := []error{
		&generation.Failure{Status: 429},
		&generation.Failure{Status: 401},
		&generation.Failure{Status: 429, Code: "insufficient_quota"},
		context.DeadlineExceeded,
		errors.New("boom"),
	}

	for _, in := range inputs {
		first := generation.Classify(in)
		for i := 0; i < 5; i++ {
			again := generation.Classify(in)
			assert.Equal(t, first.Kind, again.Kind)
			assert.Equal(t, first.Retryable, again.Retryable)
		}
	}
}

func TestClassify_RawSignalsPreserved(t *testing.T) {
	t.Parallel()

	got := generation.Classify(fmt.Errorf("call: %w",
		&generation.Failure{Status: 429, Code: "rate_limit_exceeded", Message: "slow down"}))

	assert.Equal(t, 429, got.RawStatus)
	assert.Equal(t, "rate_limit_exceeded", got.RawCode)
	assert.Contains(t, got.Detail(), "status=429")
	assert.NotContains(t, got.Error(), "slow down")
}

func TestClassify_PassThrough(t *testing.T) {
	t.Parallel()

	original := generation.NewProviderError(generation.KindQuota, errors.New("billing"))

	assert.Same(t, original, generation.Classify(original))
	assert.Same(t, original, generation.Classify(fmt.Errorf("wrapped: %w", original)))
	assert.Nil(t, generation.Classify(nil))
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	kind, ok := generation.KindOf(fmt.Errorf("x: %w", generation.NewProviderError(generation.KindModel, nil)))
	assert.True(t, ok)
	assert.Equal(t, generation.KindModel, kind)

	_, ok = generation.KindOf(errors.New("plain"))
	assert.False(t, ok)
}
