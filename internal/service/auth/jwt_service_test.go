package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/ideaforge-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-secret-that-is-long-enough-for-testing"
	wrongSecret = "wrong-secret-that-is-long-enough-for-testing"
	testSubject = "client-42"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	_, err := NewJWTService(config.AuthConfig{JWTSecret: "short", TokenLifetimeMinutes: 60})
	assert.Error(t, err)

	_, err = NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 0})
	assert.Error(t, err)

	svc, err := NewJWTService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	lifetime := 60 * time.Minute
	svc := newHMACJWTService(testSecret, lifetime, fixedClock(fixedTime))

	token, err := svc.GenerateToken(context.Background(), testSubject)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, testSubject, claims.Subject)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, fixedTime.Add(lifetime).Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)

	_, err = svc.GenerateToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptySubject)
}

func TestValidateToken(t *testing.T) {
	t.Parallel()

	lifetime := 60 * time.Minute
	issue := func(secret string, now time.Time) string {
		token, err := newHMACJWTService(secret, lifetime, fixedClock(now)).
			GenerateToken(context.Background(), testSubject)
		require.NoError(t, err)
		return token
	}

	foreignType := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtCustomClaims{
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   testSubject,
			ExpiresAt: jwt.NewNumericDate(fixedTime.Add(time.Hour)),
		},
	})
	foreignTypeToken, err := foreignType.SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		now     time.Time
		secret  string
		wantErr error
	}{
		{
			name:   "valid token",
			token:  issue(testSecret, fixedTime),
			now:    fixedTime,
			secret: testSecret,
		},
		{
			name:   "within clock skew",
			token:  issue(testSecret, fixedTime),
			now:    fixedTime.Add(lifetime + time.Minute),
			secret: testSecret,
		},
		{
			name:    "expired token",
			token:   issue(testSecret, fixedTime),
			now:     fixedTime.Add(lifetime + time.Hour),
			secret:  testSecret,
			wantErr: ErrExpiredToken,
		},
		{
			name:    "invalid signature",
			token:   issue(testSecret, fixedTime),
			now:     fixedTime,
			secret:  wrongSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "malformed token",
			token:   "this.is.not.a.valid.jwt.token",
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrInvalidToken,
		},
		{
			name:    "empty token",
			token:   "",
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrMissingToken,
		},
		{
			name:    "wrong token type",
			token:   foreignTypeToken,
			now:     fixedTime,
			secret:  testSecret,
			wantErr: ErrWrongTokenType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := newHMACJWTService(tt.secret, lifetime, fixedClock(tt.now))
			claims, err := svc.ValidateToken(context.Background(), tt.token)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testSubject, claims.Subject)
		})
	}
}
