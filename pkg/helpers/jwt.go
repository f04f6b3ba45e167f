package helpers

import (
	"context"
	"crypto/rsa"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Identity is what a verified identity provider token tells us about the caller.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// IdPClaims accepts the subject under "sub" and the older "uid"/"user_id" keys.
type IdPClaims struct {
	UID    string `json:"uid,omitempty"`
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (c *IdPClaims) subject() string {
	switch {
	case c.Subject != "":
		return c.Subject
	case c.UID != "":
		return c.UID
	}
	return c.UserID
}

// TokenVerifier checks bearer tokens issued by the hosted identity provider.
// RS256 is used when a public key is configured, HS256 otherwise.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	secret    []byte
	issuer    string
	audience  string
}

func NewTokenVerifier(secret, publicKeyFile, issuer, audience string) (*TokenVerifier, error) {
	v := &TokenVerifier{secret: []byte(secret), issuer: issuer, audience: audience}
	if publicKeyFile != "" {
		pem, err := os.ReadFile(publicKeyFile)
		if err != nil {
			return nil, err
		}
		key, err := jwt.ParseRSAPublicKeyFromPEM(pem)
		if err != nil {
			return nil, err
		}
		v.publicKey = key
	}
	if v.publicKey == nil && len(v.secret) == 0 {
		return nil, errors.New("token verifier needs IDP_PUBLIC_KEY_FILE or IDP_JWT_SECRET")
	}
	return v, nil
}

// Verify validates signature, expiry and the optional issuer/audience pins.
func (v *TokenVerifier) Verify(_ context.Context, raw string) (*Identity, error) {
	opts := []jwt.ParserOption{jwt.WithExpirationRequired()}
	if v.publicKey != nil {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &IdPClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if v.publicKey != nil {
			return v.publicKey, nil
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return nil, ErrInvalidToken
	}
	sub := claims.subject()
	if sub == "" {
		return nil, errors.Join(ErrInvalidToken, errors.New("missing subject"))
	}
	return &Identity{Subject: sub, Email: claims.Email, Name: claims.Name}, nil
}

// IssueDevToken signs an HS256 token the verifier accepts when it runs with a
// shared secret. Used by the seed command and tests.
func IssueDevToken(secret, subject, email, issuer, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &IdPClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if audience != "" {
		claims.Audience = jwt.ClaimStrings{audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
