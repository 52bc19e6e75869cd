// Package signature authenticates GitHub webhook deliveries.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const prefix = "sha256="

// Verify checks an X-Hub-Signature-256 value against the raw request body.
// The comparison is constant time. Malformed signatures (missing prefix,
// wrong length) return false rather than an error.
func Verify(payload []byte, sig, secret string) bool {
	if secret == "" || !strings.HasPrefix(sig, prefix) {
		return false
	}
	sig = strings.TrimPrefix(sig, prefix)

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(sig), []byte(expected))
}

// Sign computes the signature header value for a payload. Used by the
// import tooling and tests; the live verifier never exposes the secret.
func Sign(payload []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return prefix + hex.EncodeToString(mac.Sum(nil))
}
