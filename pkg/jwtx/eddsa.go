package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a signed session token and returns its claims.
type Verifier interface {
	Verify(tokenStr string) (*Claims, error)
}

// EdDSAKeypair signs and verifies session tokens with a single Ed25519 key.
// The platform verifies its own cookies in-process, so one keypair per boot
// is all that is needed; restarting the service invalidates old sessions.
type EdDSAKeypair struct {
	kid    string
	key    ed25519.PrivateKey
	pub    ed25519.PublicKey
	issuer string
}

// NewEphemeralKeypair generates a fresh Ed25519 keypair for session signing.
func NewEphemeralKeypair(kid, issuer string) (*EdDSAKeypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate ed25519 key: %w", err)
	}

	return &EdDSAKeypair{kid: kid, key: priv, pub: pub, issuer: issuer}, nil
}

func (k *EdDSAKeypair) KID() string { return k.kid }

func (k *EdDSAKeypair) Issuer() string { return k.issuer }

// Sign turns claims into a signed JWT string.
func (k *EdDSAKeypair) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = k.kid
	return t.SignedString(k.key)
}

// Verify validates the JWT string against this keypair and the configured
// issuer, and returns the parsed Claims.
func (k *EdDSAKeypair) Verify(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if kid, _ := t.Header["kid"].(string); kid != k.kid {
			return nil, fmt.Errorf("jwtx: unknown kid %q", kid)
		}
		return k.pub, nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("jwtx: invalid token claims")
	}

	if err := claims.ValidateIssuer(k.issuer); err != nil {
		return nil, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return nil, err
	}

	return claims, nil
}
