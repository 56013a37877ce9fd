package app

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"github.com/huddlehq/huddle/pkg/jwtx"
)

// InitVerifyKeys builds the trusted key set for bearer verification. Keys
// arrive via config as comma-separated "kid:base64url(public-key)" entries,
// published by the identity provider.
//
// With no configured keys the service generates an ephemeral dev keypair and
// logs the private key so local tooling can mint tokens. Never rely on this
// outside dev.
func InitVerifyKeys(cfg Config, logger *slog.Logger) (*jwtx.KeySet, jwtx.Verifier, error) {
	keys := jwtx.NewKeySet()

	if cfg.TrustedKeys == "" {
		signer, err := jwtx.GenerateSigner("dev")
		if err != nil {
			return nil, nil, fmt.Errorf("generate dev keypair: %w", err)
		}
		keys.AddSigner(signer)

		logger.Warn("no trusted keys configured, generated ephemeral dev keypair",
			"kid", signer.KID(),
			"public_key", base64.RawURLEncoding.EncodeToString(signer.Public()),
		)
		return keys, jwtx.NewVerifier(keys, cfg.Issuer), nil
	}

	for _, entry := range strings.Split(cfg.TrustedKeys, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		kid, encoded, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, nil, fmt.Errorf("malformed trusted key entry %q, want kid:base64url", entry)
		}

		raw, err := base64.RawURLEncoding.DecodeString(encoded)
		if err != nil {
			return nil, nil, fmt.Errorf("decode trusted key %q: %w", kid, err)
		}
		if len(raw) != ed25519.PublicKeySize {
			return nil, nil, fmt.Errorf("trusted key %q: not an Ed25519 public key", kid)
		}

		keys.Add(kid, ed25519.PublicKey(raw))
		logger.Info("trusted verification key loaded", "kid", kid)
	}

	if !keys.IsReady() {
		return nil, nil, fmt.Errorf("HUDDLE_TRUSTED_KEYS contained no usable keys")
	}

	return keys, jwtx.NewVerifier(keys, cfg.Issuer), nil
}
