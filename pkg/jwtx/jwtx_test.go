package jwtx

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner("test-key-001")
	require.NoError(t, err)

	keys := NewKeySet()
	keys.AddSigner(signer)
	verifier := NewVerifier(keys, "huddle-id")

	claims := NewAccessClaims(
		"01HZXCZ3A8Y6K9QWERTY012345",
		"alice@example.com",
		"Alice",
		"huddle-id",
		nil,
		time.Minute,
		time.Now(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01HZXCZ3A8Y6K9QWERTY012345", got.Subject)
	require.Equal(t, "alice@example.com", got.Email)
	require.Equal(t, "Alice", got.Name)
}

func TestVerifyRejectsUnknownKid(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner("unknown-key")
	require.NoError(t, err)

	verifier := NewVerifier(NewKeySet(), "")

	token, err := signer.Sign(NewAccessClaims("u1", "a@b.c", "A", "", nil, time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner("k1")
	require.NoError(t, err)

	keys := NewKeySet()
	keys.AddSigner(signer)
	verifier := NewVerifier(keys, "expected-issuer")

	token, err := signer.Sign(NewAccessClaims("u1", "a@b.c", "A", "other-issuer", nil, time.Minute, time.Now()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSigner("k1")
	require.NoError(t, err)

	keys := NewKeySet()
	keys.AddSigner(signer)
	verifier := NewVerifier(keys, "")

	claims := NewAccessClaims("u1", "a@b.c", "A", "", nil, time.Minute, time.Now().Add(-time.Hour))
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestValidateExpiryNotBefore(t *testing.T) {
	t.Parallel()

	c := Claims{RegisteredClaims: jwt.RegisteredClaims{
		NotBefore: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	require.ErrorIs(t, c.ValidateExpiry(), ErrNotYetValid)
}
