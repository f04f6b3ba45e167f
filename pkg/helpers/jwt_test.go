package helpers

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyHS256(t *testing.T) {
	v, err := NewTokenVerifier("secret", "", "https://idp.test", "careerconnect")
	require.NoError(t, err)

	raw, err := IssueDevToken("secret", "user-1", "u@example.com", "https://idp.test", "careerconnect", time.Hour)
	require.NoError(t, err)
	id, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", id.Subject)
	assert.Equal(t, "u@example.com", id.Email)
}

func TestVerifyRejects(t *testing.T) {
	v, err := NewTokenVerifier("secret", "", "https://idp.test", "")
	require.NoError(t, err)
	ctx := context.Background()

	cases := map[string]func() (string, error){
		"wrong secret": func() (string, error) {
			return IssueDevToken("other", "u", "", "https://idp.test", "", time.Hour)
		},
		"expired": func() (string, error) {
			return IssueDevToken("secret", "u", "", "https://idp.test", "", -time.Minute)
		},
		"wrong issuer": func() (string, error) {
			return IssueDevToken("secret", "u", "", "https://evil.test", "", time.Hour)
		},
		"no subject": func() (string, error) {
			return IssueDevToken("secret", "", "", "https://idp.test", "", time.Hour)
		},
		"no expiry": func() (string, error) {
			return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u", "iss": "https://idp.test"}).SignedString([]byte("secret"))
		},
		"garbage": func() (string, error) { return "not.a.token", nil },
	}
	for name, mk := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := mk()
			require.NoError(t, err)
			_, err = v.Verify(ctx, raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestVerifyLegacySubjectClaims(t *testing.T) {
	v, err := NewTokenVerifier("secret", "", "", "")
	require.NoError(t, err)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": "legacy-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	id, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "legacy-7", id.Subject)
}

func TestVerifyRS256(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	file := filepath.Join(t.TempDir(), "idp.pem")
	require.NoError(t, os.WriteFile(file, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), 0o600))

	v, err := NewTokenVerifier("", file, "", "")
	require.NoError(t, err)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "rs-user",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(key)
	require.NoError(t, err)
	id, err := v.Verify(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "rs-user", id.Subject)

	// an HS256 token must not pass an RS256 verifier
	hs, err := IssueDevToken("anything", "rs-user", "", "", "", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(context.Background(), hs)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewTokenVerifierNeedsKey(t *testing.T) {
	_, err := NewTokenVerifier("", "", "", "")
	assert.Error(t, err)
}
