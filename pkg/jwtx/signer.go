package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints EdDSA-signed JWTs. The production token issuer lives outside
// this service; the signer exists for the seed tooling and for tests that
// need valid bearer tokens.
type Signer struct {
	kid string
	key ed25519.PrivateKey
	pub ed25519.PublicKey
}

// NewSigner wraps an existing Ed25519 private key.
func NewSigner(kid string, key ed25519.PrivateKey) *Signer {
	return &Signer{
		kid: kid,
		key: key,
		pub: key.Public().(ed25519.PublicKey),
	}
}

// NewSignerFromPEM loads a PKCS8-encoded Ed25519 private key.
func NewSignerFromPEM(kid string, pemKey []byte) (*Signer, error) {
	block, _ := pem.Decode(pemKey)
	if block == nil {
		return nil, errors.New("jwtx: invalid PEM for Ed25519 key")
	}
	if block.Type != "PRIVATE KEY" {
		return nil, fmt.Errorf("jwtx: expected PRIVATE KEY, got %q", block.Type)
	}

	priv, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}

	key, ok := priv.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("jwtx: not an Ed25519 private key")
	}

	return NewSigner(kid, key), nil
}

// GenerateSigner creates a signer with a fresh Ed25519 keypair.
func GenerateSigner(kid string) (*Signer, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: generate Ed25519 key: %w", err)
	}
	return NewSigner(kid, key), nil
}

func (s *Signer) KID() string               { return s.kid }
func (s *Signer) Public() ed25519.PublicKey { return s.pub }

// Sign turns claims into a signed JWT string with the kid header set.
func (s *Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}
