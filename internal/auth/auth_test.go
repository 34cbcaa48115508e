package auth_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pharmacast/workforce-api/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVerifier() *auth.Verifier {
	return auth.NewVerifier("test-api-key", "test-secret-0123456789", "workforce-api", zap.NewNop())
}

func TestAuthenticate_APIKey(t *testing.T) {
	v := newVerifier()

	req := httptest.NewRequest("POST", "/api/v1/imports", nil)
	req.Header.Set("x-api-key", "test-api-key")
	assert.NoError(t, v.Authenticate(req))

	req.Header.Set("x-api-key", "wrong-key")
	assert.Error(t, v.Authenticate(req))

	req.Header.Del("x-api-key")
	assert.Error(t, v.Authenticate(req))
}

func TestAuthenticate_ServiceToken(t *testing.T) {
	v := newVerifier()

	token, err := v.IssueServiceToken("scheduler", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/imports", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.NoError(t, v.Authenticate(req))

	claims, err := v.VerifyServiceToken(token)
	require.NoError(t, err)
	assert.Equal(t, "scheduler", claims.Service)
	assert.Equal(t, "workforce-api", claims.Issuer)
}

func TestVerifyServiceToken_Expired(t *testing.T) {
	v := newVerifier()

	token, err := v.IssueServiceToken("scheduler", -time.Minute)
	require.NoError(t, err)

	_, err = v.VerifyServiceToken(token)
	assert.Error(t, err)
}

func TestVerifyServiceToken_WrongSecret(t *testing.T) {
	other := auth.NewVerifier("", "a-different-secret", "workforce-api", zap.NewNop())
	token, err := other.IssueServiceToken("scheduler", time.Minute)
	require.NoError(t, err)

	_, err = newVerifier().VerifyServiceToken(token)
	assert.Error(t, err)
}
