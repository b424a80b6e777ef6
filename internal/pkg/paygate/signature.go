package paygate

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// Sign returns the hex-encoded HMAC-SHA256 of payload under the secret.
// The gateway signs webhook bodies the same way.
func Sign(secret string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a received hex signature against the expected one
// in constant time.
func VerifySignature(secret string, payload []byte, receivedHex string) bool {
	expected := Sign(secret, payload)
	received := strings.ToLower(strings.TrimSpace(receivedHex))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(received)) == 1
}
